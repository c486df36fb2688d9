package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jinxed-vi/pawder-bot/internal/domain/item"
)

// UpsertItem inserts or replaces a catalog item definition.
func (s *Store) UpsertItem(ctx context.Context, it item.CatalogItem) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO catalog_items (item_id, name, price, description, effect_stat, effect_value, is_visible)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			description = excluded.description,
			effect_stat = excluded.effect_stat,
			effect_value = excluded.effect_value,
			is_visible = excluded.is_visible`,
		it.ID, it.Name, it.Price, it.Description, it.Effect.Stat, it.Effect.Value, it.Visible,
	)
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", it.ID, err)
	}
	return nil
}

// GetItem retrieves one catalog item. Returns nil when absent.
func (s *Store) GetItem(ctx context.Context, itemID string) (*item.CatalogItem, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT item_id, name, price, description, effect_stat, effect_value, is_visible
		FROM catalog_items WHERE item_id = ?`, itemID)

	var it item.CatalogItem
	err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Description, &it.Effect.Stat, &it.Effect.Value, &it.Visible)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", itemID, err)
	}
	return &it, nil
}

// ListItems retrieves catalog items ordered by price. When includeHidden is
// false only shop-visible items are returned; prize draws pass true.
func (s *Store) ListItems(ctx context.Context, includeHidden bool) ([]item.CatalogItem, error) {
	query := `
		SELECT item_id, name, price, description, effect_stat, effect_value, is_visible
		FROM catalog_items`
	if !includeHidden {
		query += ` WHERE is_visible = 1`
	}
	query += ` ORDER BY price ASC`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []item.CatalogItem
	for rows.Next() {
		var it item.CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Description, &it.Effect.Stat, &it.Effect.Value, &it.Visible); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteItem removes one catalog item; its inventory entries go with it
// via ON DELETE CASCADE. Returns false when the item did not exist.
func (s *Store) DeleteItem(ctx context.Context, itemID string) (bool, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM catalog_items WHERE item_id = ?`, itemID)
	if err != nil {
		return false, fmt.Errorf("delete item %s: %w", itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete item %s: %w", itemID, err)
	}
	return n > 0, nil
}

// DeleteItemsByEffectStat removes every catalog item whose effect references
// the named stat, cascading their inventory entries. Used when a stat
// definition is deleted.
func (s *Store) DeleteItemsByEffectStat(ctx context.Context, statName string) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM catalog_items WHERE effect_stat = ?`, statName)
	if err != nil {
		return 0, fmt.Errorf("delete items for stat %s: %w", statName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete items for stat %s: %w", statName, err)
	}
	return n, nil
}
