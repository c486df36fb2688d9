package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/pet"
)

// GetPet retrieves one owner's pet. Returns nil when the owner has none.
func (s *Store) GetPet(ctx context.Context, ownerID string) (*pet.Pet, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT owner_id, name, born_at, last_prize_at FROM pets WHERE owner_id = ?`, ownerID)

	var p pet.Pet
	err := row.Scan(&p.OwnerID, &p.Name, &p.BornAt, &p.LastPrizeAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pet for %s: %w", ownerID, err)
	}
	return &p, nil
}

// InsertPet creates the pet row. Fails if the owner already has one.
func (s *Store) InsertPet(ctx context.Context, p pet.Pet) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO pets (owner_id, name, born_at, last_prize_at) VALUES (?, ?, ?, ?)`,
		p.OwnerID, p.Name, p.BornAt, p.LastPrizeAt,
	)
	if err != nil {
		return fmt.Errorf("insert pet for %s: %w", p.OwnerID, err)
	}
	return nil
}

// UpdatePetName renames a pet. Returns false when the owner has no pet.
func (s *Store) UpdatePetName(ctx context.Context, ownerID, name string) (bool, error) {
	res, err := s.q.ExecContext(ctx, `UPDATE pets SET name = ? WHERE owner_id = ?`, name, ownerID)
	if err != nil {
		return false, fmt.Errorf("rename pet for %s: %w", ownerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rename pet for %s: %w", ownerID, err)
	}
	return n > 0, nil
}

// DeletePet removes the pet, its stat instances and its inventory entries.
// Run inside a transaction so removal is one logical unit.
func (s *Store) DeletePet(ctx context.Context, ownerID string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM pets WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("delete pet for %s: %w", ownerID, err)
	}
	if _, err := s.q.ExecContext(ctx, `DELETE FROM pet_stats WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("delete pet stats for %s: %w", ownerID, err)
	}
	if _, err := s.q.ExecContext(ctx, `DELETE FROM inventory WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("delete inventory for %s: %w", ownerID, err)
	}
	return nil
}

// StampPrize records the moment of a successful prize claim.
func (s *Store) StampPrize(ctx context.Context, ownerID string, at time.Time) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE pets SET last_prize_at = ? WHERE owner_id = ?`, at, ownerID)
	if err != nil {
		return fmt.Errorf("stamp prize for %s: %w", ownerID, err)
	}
	return nil
}
