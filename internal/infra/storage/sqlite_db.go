// Package storage provides the persistence layer for the pet server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite initializes the local SQLite database and creates the necessary
// schemas for stat definitions, pets, stat instances, catalog and inventory.
//
// The pool is limited to a single connection: SQLite serializes writers anyway,
// and a single connection makes every transaction a true critical section, which
// the cooldown check-and-apply path relies on.
func InitSQLite(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS stat_definitions (
			def_id INTEGER PRIMARY KEY AUTOINCREMENT,
			stat_name TEXT UNIQUE NOT NULL,
			default_value INTEGER NOT NULL,
			cap INTEGER,
			cooldown_seconds INTEGER,
			decay_amount INTEGER NOT NULL DEFAULT 0,
			display_name TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS pets (
			owner_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			born_at DATETIME NOT NULL,
			last_prize_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS pet_stats (
			owner_id TEXT NOT NULL,
			def_id INTEGER NOT NULL,
			stat_value INTEGER NOT NULL,
			last_updated DATETIME,
			PRIMARY KEY (owner_id, def_id),
			FOREIGN KEY (def_id) REFERENCES stat_definitions(def_id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS catalog_items (
			item_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price INTEGER NOT NULL,
			description TEXT NOT NULL,
			effect_stat TEXT NOT NULL,
			effect_value INTEGER NOT NULL,
			is_visible INTEGER NOT NULL DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			entry_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			FOREIGN KEY (item_id) REFERENCES catalog_items(item_id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_pet_stats_owner ON pet_stats(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_owner_item ON inventory(owner_id, item_id);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
