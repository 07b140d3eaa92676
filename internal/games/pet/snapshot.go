package pet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const snapshotVersion = 1

// Snapshot is the persisted form of a Sim: the pet plus per-activity
// cooldown stamps.
type Snapshot struct {
	Version  int                  `json:"version"`
	Pet      Pet                  `json:"pet"`
	LastUsed map[string]time.Time `json:"lastUsed,omitempty"`
}

// MarshalSnapshot encodes the current pet. It fails when there is no pet.
func (s *Sim) MarshalSnapshot() ([]byte, error) {
	if s.pet == nil {
		return nil, ErrNoPet
	}
	snap := Snapshot{
		Version:  snapshotVersion,
		Pet:      *s.pet,
		LastUsed: make(map[string]time.Time),
	}
	for _, a := range s.activities {
		if !a.LastUsed.IsZero() {
			snap.LastUsed[a.ID] = a.LastUsed
		}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("pet: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot without touching any Sim.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("pet: decode snapshot: %w", err)
	}
	if snap.Version > snapshotVersion {
		return snap, fmt.Errorf("pet: snapshot version %d not supported", snap.Version)
	}
	if snap.Pet.Items == nil {
		snap.Pet.Items = []string{}
	}
	if snap.Pet.Achievements == nil {
		snap.Pet.Achievements = []string{}
	}
	return snap, nil
}

// Save stamps LastSaved and writes the pet to the persister. Without a
// pet or a persister it only stamps.
func (s *Sim) Save(ctx context.Context) error {
	if s.pet == nil {
		return nil
	}
	s.pet.LastSaved = s.sched.Now()
	if s.store == nil {
		return nil
	}
	data, err := s.MarshalSnapshot()
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("pet: save: %w", err)
	}
	s.logger.Debug("pet saved", "name", s.pet.Name)
	return nil
}

// Load restores the saved pet, applies the offline catch-up and restarts
// the loops. It returns ErrNoPet when the slot is empty.
func (s *Sim) Load(ctx context.Context) error {
	if s.store == nil {
		return ErrNoPet
	}
	data, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoPet) {
			return err
		}
		return fmt.Errorf("pet: load: %w", err)
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	s.Restore(snap)
	return nil
}

// Restore replaces the Sim state with a snapshot, then runs the offline
// catch-up and starts the loops.
func (s *Sim) Restore(snap Snapshot) {
	s.cancelActivity()
	s.clearNotifications()

	p := snap.Pet
	s.pet = p.clone()
	s.activities = DefaultActivities()
	for i := range s.activities {
		if t, ok := snap.LastUsed[s.activities[i].ID]; ok {
			s.activities[i].LastUsed = t
		}
	}
	s.logger.Info("pet loaded", "name", p.Name, "level", p.Level)

	s.HandleOfflineTime()
	s.startLoops()
}
