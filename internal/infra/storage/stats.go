package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/domain/pet"
	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
)

// StatInstance is one (owner, definition) pair joined with its schema,
// everything the mutation engine needs in a single read.
type StatInstance struct {
	OwnerID     string
	Value       int
	LastUpdated *time.Time
	Def         stat.Definition
}

// RemovalCandidate identifies a pet whose vitality stat has bottomed out.
type RemovalCandidate struct {
	OwnerID string
	PetName string
}

// LeaderboardRow is one line of the top-N ranking for a stat.
type LeaderboardRow struct {
	OwnerID string `json:"owner_id"`
	PetName string `json:"pet_name"`
	Value   int    `json:"value"`
}

// GetStatInstance reads one stat's current value joined with its definition.
// Returns nil when the owner has no instance of that stat.
func (s *Store) GetStatInstance(ctx context.Context, ownerID, statName string) (*StatInstance, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT ps.owner_id, ps.stat_value, ps.last_updated,
		       sd.def_id, sd.stat_name, sd.default_value, sd.cap, sd.cooldown_seconds, sd.decay_amount, sd.display_name
		FROM pet_stats ps
		JOIN stat_definitions sd ON ps.def_id = sd.def_id
		WHERE ps.owner_id = ? AND sd.stat_name = ?`,
		ownerID, statName,
	)

	var inst StatInstance
	var last sql.NullTime
	var cap, cooldown sql.NullInt64
	err := row.Scan(
		&inst.OwnerID, &inst.Value, &last,
		&inst.Def.ID, &inst.Def.Name, &inst.Def.DefaultValue, &cap, &cooldown, &inst.Def.DecayAmount, &inst.Def.DisplayName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stat %s for %s: %w", statName, ownerID, err)
	}
	inst.LastUpdated = timePtr(last)
	inst.Def.Cap = intPtr(cap)
	inst.Def.CooldownSeconds = intPtr(cooldown)
	return &inst, nil
}

// InsertStatInstance snapshots one definition's default onto an owner.
func (s *Store) InsertStatInstance(ctx context.Context, ownerID string, defID int64, value int) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO pet_stats (owner_id, def_id, stat_value) VALUES (?, ?, ?)`,
		ownerID, defID, value,
	)
	if err != nil {
		return fmt.Errorf("insert stat instance for %s: %w", ownerID, err)
	}
	return nil
}

// UpdateStatValue persists a mutated value. When stamp is non-nil the
// last_updated column is set too; decrements pass nil so the cooldown
// clock is untouched.
func (s *Store) UpdateStatValue(ctx context.Context, ownerID string, defID int64, value int, stamp *time.Time) error {
	var err error
	if stamp != nil {
		_, err = s.q.ExecContext(ctx,
			`UPDATE pet_stats SET stat_value = ?, last_updated = ? WHERE owner_id = ? AND def_id = ?`,
			value, *stamp, ownerID, defID)
	} else {
		_, err = s.q.ExecContext(ctx,
			`UPDATE pet_stats SET stat_value = ? WHERE owner_id = ? AND def_id = ?`,
			value, ownerID, defID)
	}
	if err != nil {
		return fmt.Errorf("update stat value for %s: %w", ownerID, err)
	}
	return nil
}

// BackfillStat creates an instance at the given default for every pet that
// lacks one, used when a definition is created after pets already exist.
// Returns how many instances were created.
func (s *Store) BackfillStat(ctx context.Context, defID int64, defaultValue int) (int, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO pet_stats (owner_id, def_id, stat_value)
		SELECT p.owner_id, ?, ?
		FROM pets p
		WHERE NOT EXISTS (
			SELECT 1 FROM pet_stats ps WHERE ps.owner_id = p.owner_id AND ps.def_id = ?
		)`,
		defID, defaultValue, defID,
	)
	if err != nil {
		return 0, fmt.Errorf("backfill stat %d: %w", defID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("backfill stat %d: %w", defID, err)
	}
	return int(n), nil
}

// BulkDecay lowers every instance of one definition by amount, floored at 0.
// Cooldowns and last_updated are deliberately untouched: decay only ever lowers.
// Returns how many instances actually changed.
func (s *Store) BulkDecay(ctx context.Context, defID int64, amount int) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`UPDATE pet_stats SET stat_value = MAX(0, stat_value - ?) WHERE def_id = ? AND stat_value > 0`,
		amount, defID,
	)
	if err != nil {
		return 0, fmt.Errorf("bulk decay def %d: %w", defID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk decay def %d: %w", defID, err)
	}
	return n, nil
}

// PenalizeNeglected lowers the vitality stat by penalty (floored at 0) for
// every owner who has any decaying stat sitting at 0. Returns how many
// owners were penalized.
func (s *Store) PenalizeNeglected(ctx context.Context, vitalityDefID int64, penalty int) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE pet_stats
		SET stat_value = MAX(0, stat_value - ?)
		WHERE def_id = ? AND stat_value > 0 AND owner_id IN (
			SELECT ps.owner_id
			FROM pet_stats ps
			JOIN stat_definitions sd ON ps.def_id = sd.def_id
			WHERE ps.stat_value <= 0 AND sd.decay_amount > 0
		)`,
		penalty, vitalityDefID,
	)
	if err != nil {
		return 0, fmt.Errorf("penalize neglected: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("penalize neglected: %w", err)
	}
	return n, nil
}

// RemovalCandidates finds every owner whose vitality stat has reached 0.
func (s *Store) RemovalCandidates(ctx context.Context, vitalityDefID int64) ([]RemovalCandidate, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT ps.owner_id, p.name
		FROM pet_stats ps
		JOIN pets p ON ps.owner_id = p.owner_id
		WHERE ps.def_id = ? AND ps.stat_value <= 0`,
		vitalityDefID,
	)
	if err != nil {
		return nil, fmt.Errorf("removal candidates: %w", err)
	}
	defer rows.Close()

	var candidates []RemovalCandidate
	for rows.Next() {
		var c RemovalCandidate
		if err := rows.Scan(&c.OwnerID, &c.PetName); err != nil {
			return nil, fmt.Errorf("scan removal candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// ListStats returns every stat of one owner joined with display metadata.
func (s *Store) ListStats(ctx context.Context, ownerID string) ([]pet.StatValue, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT sd.stat_name, ps.stat_value, sd.cap, sd.display_name, ps.last_updated
		FROM pet_stats ps
		JOIN stat_definitions sd ON ps.def_id = sd.def_id
		WHERE ps.owner_id = ?
		ORDER BY sd.def_id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stats for %s: %w", ownerID, err)
	}
	defer rows.Close()

	var stats []pet.StatValue
	for rows.Next() {
		var sv pet.StatValue
		var cap sql.NullInt64
		var last sql.NullTime
		if err := rows.Scan(&sv.Name, &sv.Value, &cap, &sv.DisplayName, &last); err != nil {
			return nil, fmt.Errorf("scan stat for %s: %w", ownerID, err)
		}
		sv.Cap = intPtr(cap)
		sv.LastUpdated = timePtr(last)
		stats = append(stats, sv)
	}
	return stats, rows.Err()
}

// TopByStat ranks owners by one stat's value, highest first.
func (s *Store) TopByStat(ctx context.Context, statName string, limit int) ([]LeaderboardRow, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT ps.owner_id, p.name, ps.stat_value
		FROM pet_stats ps
		JOIN stat_definitions sd ON ps.def_id = sd.def_id
		JOIN pets p ON ps.owner_id = p.owner_id
		WHERE sd.stat_name = ?
		ORDER BY ps.stat_value DESC
		LIMIT ?`,
		statName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top by %s: %w", statName, err)
	}
	defer rows.Close()

	var top []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.OwnerID, &r.PetName, &r.Value); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		top = append(top, r)
	}
	return top, rows.Err()
}
