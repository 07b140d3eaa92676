package pet

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tetropet/internal/config"
	"github.com/vovakirdan/tetropet/internal/core"
)

// Options configures a Sim. The zero value is usable: no persistence,
// discarded logs and the default timings.
type Options struct {
	Persister Persister
	Logger    *log.Logger
	Config    *config.PetConfig
}

// Sim owns one pet and everything that happens to it over time.
// A Sim is not safe for concurrent use; drive it from one goroutine.
type Sim struct {
	sched  core.Scheduler
	store  Persister
	logger *log.Logger
	cfg    config.PetConfig

	pet        *Pet
	activities []Activity

	current        int // index into activities, -1 when idle
	progress       int
	activityHandle core.Handle

	notifications []Notification
	noteHandles   map[uint64]core.Handle
	nextNoteID    uint64

	saveHandle  core.Handle
	decayHandle core.Handle
	lastDecay   time.Time
}

// NewSim creates a simulation without a pet.
func NewSim(sched core.Scheduler, opts Options) *Sim {
	cfg := config.DefaultPetConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sim{
		sched:       sched,
		store:       opts.Persister,
		logger:      logger,
		cfg:         cfg,
		activities:  DefaultActivities(),
		current:     -1,
		noteHandles: make(map[uint64]core.Handle),
	}
}

// Pet returns a copy of the pet, or nil.
func (s *Sim) Pet() *Pet {
	return s.pet.clone()
}

// HasPet reports whether a pet is adopted.
func (s *Sim) HasPet() bool {
	return s.pet != nil
}

// Activities returns a copy of this Sim's activity catalog.
func (s *Sim) Activities() []Activity {
	return append([]Activity(nil), s.activities...)
}

// CurrentActivity returns the activity in progress.
func (s *Sim) CurrentActivity() (Activity, bool) {
	if s.current < 0 {
		return Activity{}, false
	}
	return s.activities[s.current], true
}

// Progress returns the in-progress activity completion, 0-100.
func (s *Sim) Progress() int {
	return s.progress
}

// Mood derives the pet's mood from its stats. The first matching rule wins.
func (s *Sim) Mood() Mood {
	p := s.pet
	switch {
	case p == nil:
		return MoodNeutral
	case p.Health < 30:
		return MoodSick
	case p.Cleanliness < 30:
		return MoodDirty
	case p.Hunger < 20:
		return MoodHungry
	case p.Energy < 20:
		return MoodTired
	case p.Happiness < 30:
		return MoodSad
	case p.Happiness > happyThreshold:
		return MoodHappy
	default:
		return MoodBored
	}
}

// Emoji returns the mood face for a sick pet and the species face otherwise.
func (s *Sim) Emoji() string {
	if s.pet == nil {
		return "🐾"
	}
	if s.pet.Health < 30 {
		return moodEmoji[s.Mood()]
	}
	if e, ok := speciesEmoji[s.pet.Species]; ok {
		return e
	}
	return "🐾"
}

// ExperienceToNextLevel returns the experience still needed for a level up.
func (s *Sim) ExperienceToNextLevel() int {
	if s.pet == nil {
		return 0
	}
	return s.pet.Level*100 - s.pet.Experience
}

// CreatePet adopts a new pet, replacing any existing one, and starts the
// decay and autosave loops.
func (s *Sim) CreatePet(name string, species Species) {
	now := s.sched.Now()
	s.cancelActivity()
	s.activities = DefaultActivities()
	s.pet = &Pet{
		ID:           uuid.New(),
		Name:         name,
		Species:      species,
		Happiness:    initHappiness,
		Hunger:       initHunger,
		Energy:       initEnergy,
		Cleanliness:  initCleanliness,
		Health:       initHealth,
		Level:        1,
		Coins:        initCoins,
		LastFed:      now,
		LastPlayed:   now,
		LastCleaned:  now,
		LastSlept:    now,
		Items:        []string{},
		Achievements: []string{},
		Created:      now,
	}
	s.logger.Info("pet adopted", "name", name, "species", species, "id", s.pet.ID)

	s.notify(fmt.Sprintf("%s has been adopted! 🎉", name))
	s.startLoops()
	s.autosave()
}

// CanUseActivity reports whether the activity can start now.
func (s *Sim) CanUseActivity(id string) bool {
	if s.pet == nil || s.current >= 0 {
		return false
	}
	i := s.activityIndex(id)
	if i < 0 {
		return false
	}
	a := s.activities[i]
	if s.cooldownRemaining(a) > 0 {
		return false
	}
	return s.pet.Coins >= a.Cost
}

// PerformActivity starts an activity. Progress advances by 5 every
// duration/20 and the effects are applied when it reaches 100.
func (s *Sim) PerformActivity(id string) bool {
	if !s.CanUseActivity(id) {
		return false
	}
	idx := s.activityIndex(id)
	s.current = idx
	s.progress = 0

	interval := s.activities[idx].Duration / 20
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.activityHandle = s.sched.ScheduleRepeating(interval, func() {
		s.progress += 5
		if s.progress >= 100 {
			s.sched.Cancel(s.activityHandle)
			s.activityHandle = 0
			s.completeActivity(idx)
		}
	})
	return true
}

func (s *Sim) completeActivity(idx int) {
	if s.pet == nil {
		return
	}
	now := s.sched.Now()
	a := s.activities[idx]
	p := s.pet
	e := a.Effects

	p.Happiness = core.ClampF(p.Happiness+e.Happiness, 0, 100)
	p.Hunger = core.ClampF(p.Hunger+e.Hunger, 0, 100)
	p.Energy = core.ClampF(p.Energy+e.Energy, 0, 100)
	p.Cleanliness = core.ClampF(p.Cleanliness+e.Cleanliness, 0, 100)
	p.Health = core.ClampF(p.Health+e.Health, 0, 100)
	p.Experience = max(0, p.Experience+e.Experience)
	p.Coins = max(0, p.Coins+e.Coins)

	if a.Cost > 0 {
		p.Coins = max(0, p.Coins-a.Cost)
	}

	s.activities[idx].LastUsed = now
	switch a.ID {
	case ActivityFeed:
		p.LastFed = now
	case ActivityPlay, ActivityExercise:
		p.LastPlayed = now
	case ActivityBath:
		p.LastCleaned = now
		p.BathCount++
	case ActivitySleep:
		p.LastSlept = now
	}
	s.trackHappiness(now)

	s.CheckLevelUp()
	s.checkAchievements(a.ID, now)

	s.notify(fmt.Sprintf("%s completed! %s", a.Name, a.Icon))
	s.current = -1
	s.progress = 0
	s.autosave()
}

// CheckLevelUp converts experience into levels. Each level costs
// level×100 experience and pays (new level)×20 coins.
func (s *Sim) CheckLevelUp() {
	if s.pet == nil {
		return
	}
	p := s.pet
	for p.Experience >= p.Level*100 {
		required := p.Level * 100
		p.Level++
		p.Experience -= required
		p.Coins += p.Level * 20
		s.logger.Info("level up", "name", p.Name, "level", p.Level)
		s.notify(fmt.Sprintf("Level up! Now level %d! 🌟", p.Level))
	}
}

func (s *Sim) checkAchievements(activityID string, now time.Time) {
	p := s.pet
	for _, a := range achievementCatalog {
		if p.HasAchievement(a.ID) {
			continue
		}

		earned := false
		switch a.ID {
		case AchievementFirstFeed:
			earned = activityID == ActivityFeed
		case AchievementLevel5:
			earned = p.Level >= 5
		case AchievementLevel10:
			earned = p.Level >= 10
		case AchievementHappyWeek:
			earned = !p.HappySince.IsZero() && now.Sub(p.HappySince) >= happyWeek
		case AchievementRichPet:
			earned = p.Coins >= richCoins
		case AchievementCleanFreak:
			earned = p.BathCount >= cleanFreakBath
		}

		if earned {
			p.Achievements = append(p.Achievements, a.ID)
			p.Coins += a.Reward
			s.logger.Info("achievement", "name", p.Name, "id", a.ID)
			s.notify(fmt.Sprintf("Achievement unlocked: %s! +%d coins 🏆", a.Name, a.Reward))
		}
	}
}

// trackHappiness maintains the start of the current happy streak.
func (s *Sim) trackHappiness(now time.Time) {
	p := s.pet
	switch {
	case p.Happiness <= happyThreshold:
		p.HappySince = time.Time{}
	case p.HappySince.IsZero():
		p.HappySince = now
	}
}

// DecayStats applies the stat loss since the previous decay. It does
// nothing without a pet or while an activity is running.
func (s *Sim) DecayStats() {
	if s.pet == nil || s.current >= 0 {
		return
	}
	now := s.sched.Now()
	hours := now.Sub(s.lastDecay).Hours()
	if hours < 0 {
		hours = 0
	}
	p := s.pet

	p.Hunger = math.Max(0, p.Hunger-hours*2)
	p.Happiness = math.Max(0, p.Happiness-hours*1.5)
	p.Energy = math.Max(0, p.Energy-hours*1)
	p.Cleanliness = math.Max(0, p.Cleanliness-hours*0.5)

	if p.Hunger < 20 || p.Happiness < 20 {
		p.Health = math.Max(0, p.Health-hours*3)
	}

	p.Age += hours / 24
	s.lastDecay = now

	s.trackHappiness(now)
	s.checkUrgentNeeds()
	s.checkAchievements("", now)
}

func (s *Sim) checkUrgentNeeds() {
	p := s.pet
	if p.Hunger < 20 {
		s.notify(fmt.Sprintf("%s is very hungry! 🍖", p.Name))
	}
	if p.Happiness < 20 {
		s.notify(fmt.Sprintf("%s is feeling sad! 😢", p.Name))
	}
	if p.Health < 30 {
		s.notify(fmt.Sprintf("%s is feeling sick! 🤒", p.Name))
	}
}

// HandleOfflineTime applies the decay for time spent away since the last
// save. Absences shorter than the offline threshold are ignored.
func (s *Sim) HandleOfflineTime() {
	if s.pet == nil {
		return
	}
	p := s.pet
	since := p.LastSaved
	if since.IsZero() {
		since = p.Created
	}
	offline := s.sched.Now().Sub(since)
	if offline <= s.cfg.Timers.OfflineThreshold {
		return
	}

	hours := offline.Hours()
	p.Hunger = math.Max(0, p.Hunger-hours*5)
	p.Happiness = math.Max(0, p.Happiness-hours*3)
	p.Cleanliness = math.Max(0, p.Cleanliness-hours*2)
	s.trackHappiness(s.sched.Now())

	s.logger.Debug("offline catch-up", "name", p.Name, "hours", hours)
	s.notify(fmt.Sprintf("Welcome back! %s missed you for %d hours", p.Name, int(math.Floor(hours))))
}

// BuyItem spends coins on an item.
func (s *Sim) BuyItem(itemID string, cost int) bool {
	if s.pet == nil || cost < 0 || s.pet.Coins < cost {
		return false
	}
	s.pet.Coins -= cost
	s.pet.Items = append(s.pet.Items, itemID)
	s.notify(fmt.Sprintf("Purchased %s! 💰", itemID))
	s.autosave()
	return true
}

// ResetPet releases the pet, stops every timer and clears the saved slot.
func (s *Sim) ResetPet(ctx context.Context) error {
	s.pet = nil
	s.stopLoops()
	s.cancelActivity()
	s.clearNotifications()
	s.activities = DefaultActivities()

	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("pet: clear: %w", err)
	}
	return nil
}

// ActivityCooldowns reports the cooldown state of every activity.
func (s *Sim) ActivityCooldowns() map[string]Cooldown {
	out := make(map[string]Cooldown, len(s.activities))
	for _, a := range s.activities {
		rem := s.cooldownRemaining(a)
		out[a.ID] = Cooldown{
			Remaining: rem,
			Total:     a.Cooldown,
			CanUse:    rem == 0,
		}
	}
	return out
}

// Close saves the pet and stops all timers.
func (s *Sim) Close(ctx context.Context) error {
	err := s.Save(ctx)
	s.stopLoops()
	s.cancelActivity()
	s.clearNotifications()
	return err
}

func (s *Sim) cooldownRemaining(a Activity) time.Duration {
	if a.LastUsed.IsZero() {
		return 0
	}
	rem := a.LastUsed.Add(a.Cooldown).Sub(s.sched.Now())
	if rem < 0 {
		return 0
	}
	return rem
}

func (s *Sim) activityIndex(id string) int {
	for i := range s.activities {
		if s.activities[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Sim) cancelActivity() {
	if s.activityHandle != 0 {
		s.sched.Cancel(s.activityHandle)
		s.activityHandle = 0
	}
	s.current = -1
	s.progress = 0
}

// startLoops (re)starts the autosave and decay loops as a pair.
func (s *Sim) startLoops() {
	s.stopLoops()
	s.lastDecay = s.sched.Now()
	s.saveHandle = s.sched.ScheduleRepeating(s.cfg.Timers.Autosave, s.autosave)
	s.decayHandle = s.sched.ScheduleRepeating(s.cfg.Timers.Decay, s.DecayStats)
}

func (s *Sim) stopLoops() {
	if s.saveHandle != 0 {
		s.sched.Cancel(s.saveHandle)
		s.saveHandle = 0
	}
	if s.decayHandle != 0 {
		s.sched.Cancel(s.decayHandle)
		s.decayHandle = 0
	}
}

// LoopsRunning reports whether the autosave and decay loops are scheduled.
func (s *Sim) LoopsRunning() bool {
	return s.saveHandle != 0 && s.decayHandle != 0
}

// autosave runs from timer callbacks, so failures are logged, not returned.
func (s *Sim) autosave() {
	if err := s.Save(context.Background()); err != nil {
		s.logger.Error("autosave failed", "err", err)
	}
}
