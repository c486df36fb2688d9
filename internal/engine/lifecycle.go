package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/pet"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
)

// Hatch creates the owner's pet and snapshots every current stat
// definition at its default value. Exactly-once per owner: a second call
// returns ErrPetExists and changes nothing.
func (s *Service) Hatch(ctx context.Context, ownerID string) error {
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		existing, err := st.GetPet(ctx, ownerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrPetExists
		}

		p := pet.Pet{
			OwnerID: ownerID,
			Name:    pet.DefaultName,
			BornAt:  s.now(),
			// Zero time keeps the very first prize claim free.
			LastPrizeAt: time.Time{},
		}
		if err := st.InsertPet(ctx, p); err != nil {
			return err
		}

		defs, err := st.ListDefinitions(ctx)
		if err != nil {
			return err
		}
		for _, def := range defs {
			if err := st.InsertStatInstance(ctx, ownerID, def.ID, def.DefaultValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Event("HATCH", ownerID, "pet hatched")
	return nil
}

// Rename gives the pet a new display name.
func (s *Service) Rename(ctx context.Context, ownerID, newName string) error {
	if !pet.ValidName(newName) {
		return ErrInvalidName
	}

	renamed, err := s.store.UpdatePetName(ctx, ownerID, newName)
	if err != nil {
		return err
	}
	if !renamed {
		return ErrNoPet
	}

	s.logger.Event("RENAME", ownerID, "pet renamed to "+newName)
	return nil
}

// RemovePet deletes the pet, its stat instances and its inventory as one
// logical unit. Removing an absent pet is a no-op.
func (s *Service) RemovePet(ctx context.Context, ownerID string) error {
	return s.store.WithTx(ctx, func(st *storage.Store) error {
		return st.DeletePet(ctx, ownerID)
	})
}

// StatusReport is a read-only snapshot of one pet for presentation.
type StatusReport struct {
	Name  string          `json:"name"`
	Age   time.Duration   `json:"age"`
	Mood  pet.Mood        `json:"mood"`
	Stats []pet.StatValue `json:"stats"`
}

// Status assembles the pet's current condition.
func (s *Service) Status(ctx context.Context, ownerID string) (*StatusReport, error) {
	p, err := s.store.GetPet(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNoPet
	}

	stats, err := s.store.ListStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("status for %s: %w", ownerID, err)
	}

	byName := make(map[string]int, len(stats))
	for _, sv := range stats {
		byName[sv.Name] = sv.Value
	}

	return &StatusReport{
		Name: p.Name,
		Age:  p.Age(s.now()),
		Mood: pet.DeriveMood(
			statOrFull(byName, StatHunger),
			statOrFull(byName, StatHappiness),
			statOrFull(byName, StatCleanliness),
			statOrFull(byName, s.vitalityStat),
		),
		Stats: stats,
	}, nil
}

// statOrFull treats a missing care stat as perfectly satisfied so a
// deleted definition never drags the mood down.
func statOrFull(byName map[string]int, name string) int {
	if v, ok := byName[name]; ok {
		return v
	}
	return 100
}
