// Package pet implements the virtual pet simulation: five decaying stats,
// timed activities with cooldowns, levels, coins and one-time achievements.
// All timing runs through a core.Scheduler so a Sim can be driven by wall
// clock or by tests.
package pet

import (
	"time"

	"github.com/google/uuid"
)

// Species is the kind of animal adopted.
type Species string

const (
	SpeciesCat    Species = "cat"
	SpeciesDog    Species = "dog"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
)

// ParseSpecies validates a species name.
func ParseSpecies(s string) (Species, bool) {
	switch sp := Species(s); sp {
	case SpeciesCat, SpeciesDog, SpeciesBird, SpeciesRabbit:
		return sp, true
	default:
		return "", false
	}
}

// Mood is derived from the stats on every read; it is never stored.
type Mood string

const (
	MoodNeutral Mood = "neutral" // no pet
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodTired   Mood = "tired"
	MoodHungry  Mood = "hungry"
	MoodSick    Mood = "sick"
	MoodDirty   Mood = "dirty"
	MoodBored   Mood = "bored"
)

// Pet is the persisted state of one pet. Stats are kept in [0, 100].
type Pet struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Species Species   `json:"species"`

	Happiness   float64 `json:"happiness"`
	Hunger      float64 `json:"hunger"` // 100 means fully fed
	Energy      float64 `json:"energy"`
	Cleanliness float64 `json:"cleanliness"`
	Health      float64 `json:"health"`

	Level      int     `json:"level"`
	Experience int     `json:"experience"`
	Coins      int     `json:"coins"`
	Age        float64 `json:"age"` // days

	LastFed     time.Time `json:"lastFed"`
	LastPlayed  time.Time `json:"lastPlayed"`
	LastCleaned time.Time `json:"lastCleaned"`
	LastSlept   time.Time `json:"lastSlept"`

	Items        []string `json:"items"`
	Achievements []string `json:"achievements"`

	Created   time.Time `json:"created"`
	LastSaved time.Time `json:"lastSaved,omitzero"`

	BathCount  int       `json:"bathCount"`
	HappySince time.Time `json:"happySince,omitzero"` // start of the current happiness > 80 streak
}

func (p *Pet) clone() *Pet {
	if p == nil {
		return nil
	}
	c := *p
	c.Items = append([]string(nil), p.Items...)
	c.Achievements = append([]string(nil), p.Achievements...)
	return &c
}

// HasAchievement reports whether the achievement was already earned.
func (p *Pet) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Effects are the deltas an activity applies on completion.
type Effects struct {
	Happiness   float64
	Hunger      float64
	Energy      float64
	Cleanliness float64
	Health      float64
	Experience  int
	Coins       int
}

// Activity is a timed action with a cost and a cooldown.
type Activity struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Duration    time.Duration
	Effects     Effects
	Cost        int
	Cooldown    time.Duration
	LastUsed    time.Time // zero until first completion
}

// Achievement is a one-time reward.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Reward      int
}

// Cooldown describes how long until an activity can be used again.
type Cooldown struct {
	Remaining time.Duration
	Total     time.Duration
	CanUse    bool
}

// Notification is a short-lived message shown to the player.
type Notification struct {
	ID      uint64
	Text    string
	Created time.Time
}
