package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tetropet/internal/games/pet"
)

// PetRecord summarizes a saved pet without decoding the whole snapshot.
type PetRecord struct {
	Slot      string
	PetID     string
	Name      string
	Species   string
	Level     int
	UpdatedAt time.Time
}

// SavePet stores a pet snapshot in a slot, replacing what was there.
// Slots are free-form keys: "local" for the terminal, the user name for SSH.
func (s *Store) SavePet(ctx context.Context, slot string, data []byte) error {
	snap, err := pet.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("storage: cannot save pet: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pets (slot, pet_id, name, species, level, data, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
			pet_id = excluded.pet_id,
			name = excluded.name,
			species = excluded.species,
			level = excluded.level,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		slot, snap.Pet.ID.String(), snap.Pet.Name, string(snap.Pet.Species), snap.Pet.Level, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save pet: %w", err)
	}
	return nil
}

// LoadPet returns the snapshot in a slot, or pet.ErrNoPet.
func (s *Store) LoadPet(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM pets WHERE slot = ?", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pet.ErrNoPet
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load pet: %w", err)
	}
	return data, nil
}

// DeletePet empties a slot. Deleting an empty slot is not an error.
func (s *Store) DeletePet(ctx context.Context, slot string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pets WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete pet: %w", err)
	}
	return nil
}

// ListPets returns every saved pet, most recently saved first.
func (s *Store) ListPets(ctx context.Context) ([]PetRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, pet_id, name, species, level, updated_at
		 FROM pets
		 ORDER BY updated_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pets: %w", err)
	}
	defer rows.Close()

	var records []PetRecord
	for rows.Next() {
		var r PetRecord
		var updatedAt any
		if err := rows.Scan(&r.Slot, &r.PetID, &r.Name, &r.Species, &r.Level, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan pet row: %w", err)
		}
		r.UpdatedAt = parseTimestamp(updatedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// PetSlot binds a slot name to a Store so it can be handed to a pet.Sim.
type PetSlot struct {
	store *Store
	slot  string
}

// NewPetSlot returns a persister for one slot.
func NewPetSlot(store *Store, slot string) *PetSlot {
	return &PetSlot{store: store, slot: slot}
}

// Save implements pet.Persister.
func (p *PetSlot) Save(ctx context.Context, data []byte) error {
	return p.store.SavePet(ctx, p.slot, data)
}

// Load implements pet.Persister.
func (p *PetSlot) Load(ctx context.Context) ([]byte, error) {
	return p.store.LoadPet(ctx, p.slot)
}

// Clear implements pet.Persister.
func (p *PetSlot) Clear(ctx context.Context) error {
	return p.store.DeletePet(ctx, p.slot)
}

var _ pet.Persister = (*PetSlot)(nil)
