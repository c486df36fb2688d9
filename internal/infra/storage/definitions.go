package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
)

// UpsertDefinition inserts or replaces a stat definition by name.
// Replacing keeps the def_id stable so existing stat instances stay attached.
// Returns whether the name was newly created and the definition's id.
func (s *Store) UpsertDefinition(ctx context.Context, def stat.Definition) (created bool, defID int64, err error) {
	row := s.q.QueryRowContext(ctx, `SELECT def_id FROM stat_definitions WHERE stat_name = ?`, def.Name)
	err = row.Scan(&defID)
	switch {
	case err == sql.ErrNoRows:
		res, err := s.q.ExecContext(ctx, `
			INSERT INTO stat_definitions (stat_name, default_value, cap, cooldown_seconds, decay_amount, display_name)
			VALUES (?, ?, ?, ?, ?, ?)`,
			def.Name, def.DefaultValue, nullInt(def.Cap), nullInt(def.CooldownSeconds), def.DecayAmount, def.DisplayName,
		)
		if err != nil {
			return false, 0, fmt.Errorf("insert definition %s: %w", def.Name, err)
		}
		defID, err = res.LastInsertId()
		if err != nil {
			return false, 0, fmt.Errorf("definition id for %s: %w", def.Name, err)
		}
		return true, defID, nil
	case err != nil:
		return false, 0, fmt.Errorf("lookup definition %s: %w", def.Name, err)
	}

	_, err = s.q.ExecContext(ctx, `
		UPDATE stat_definitions
		SET default_value = ?, cap = ?, cooldown_seconds = ?, decay_amount = ?, display_name = ?
		WHERE def_id = ?`,
		def.DefaultValue, nullInt(def.Cap), nullInt(def.CooldownSeconds), def.DecayAmount, def.DisplayName, defID,
	)
	if err != nil {
		return false, 0, fmt.Errorf("update definition %s: %w", def.Name, err)
	}
	return false, defID, nil
}

const definitionColumns = `def_id, stat_name, default_value, cap, cooldown_seconds, decay_amount, display_name`

func scanDefinition(row interface{ Scan(...interface{}) error }) (stat.Definition, error) {
	var d stat.Definition
	var cap, cooldown sql.NullInt64
	err := row.Scan(&d.ID, &d.Name, &d.DefaultValue, &cap, &cooldown, &d.DecayAmount, &d.DisplayName)
	if err != nil {
		return stat.Definition{}, err
	}
	d.Cap = intPtr(cap)
	d.CooldownSeconds = intPtr(cooldown)
	return d, nil
}

// GetDefinition retrieves one definition by stat name. Returns nil when absent.
func (s *Store) GetDefinition(ctx context.Context, name string) (*stat.Definition, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+definitionColumns+` FROM stat_definitions WHERE stat_name = ?`, name)
	d, err := scanDefinition(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get definition %s: %w", name, err)
	}
	return &d, nil
}

// ListDefinitions retrieves every stat definition.
func (s *Store) ListDefinitions(ctx context.Context) ([]stat.Definition, error) {
	return s.queryDefinitions(ctx,
		`SELECT `+definitionColumns+` FROM stat_definitions ORDER BY def_id`)
}

// ListDecayingDefinitions retrieves only the definitions the sweep ages.
func (s *Store) ListDecayingDefinitions(ctx context.Context) ([]stat.Definition, error) {
	return s.queryDefinitions(ctx,
		`SELECT `+definitionColumns+` FROM stat_definitions WHERE decay_amount > 0 ORDER BY def_id`)
}

func (s *Store) queryDefinitions(ctx context.Context, query string) ([]stat.Definition, error) {
	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	var defs []stat.Definition
	for rows.Next() {
		d, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// DeleteDefinition removes a definition row. Stat instances referencing it are
// removed by the schema's ON DELETE CASCADE; cascading catalog items is the
// engine's job since it crosses aggregates. Returns false when the name did not exist.
func (s *Store) DeleteDefinition(ctx context.Context, name string) (bool, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM stat_definitions WHERE stat_name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete definition %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete definition %s: %w", name, err)
	}
	return n > 0, nil
}
