package storage

import (
	"context"
	"fmt"

	"github.com/jinxed-vi/pawder-bot/internal/domain/item"
)

// InsertEntry adds one physical unit of one item to an owner's inventory.
func (s *Store) InsertEntry(ctx context.Context, e item.InventoryEntry) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO inventory (entry_id, owner_id, item_id) VALUES (?, ?, ?)`,
		e.EntryID, e.OwnerID, e.ItemID,
	)
	if err != nil {
		return fmt.Errorf("insert inventory entry for %s: %w", e.OwnerID, err)
	}
	return nil
}

// ConsumeEntry deletes exactly one entry matching (owner, item). Entries are
// fungible, so an arbitrary one goes. Returns false when the owner holds none.
func (s *Store) ConsumeEntry(ctx context.Context, ownerID, itemID string) (bool, error) {
	res, err := s.q.ExecContext(ctx, `
		DELETE FROM inventory
		WHERE entry_id = (SELECT entry_id FROM inventory WHERE owner_id = ? AND item_id = ? LIMIT 1)`,
		ownerID, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("consume %s for %s: %w", itemID, ownerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("consume %s for %s: %w", itemID, ownerID, err)
	}
	return n > 0, nil
}

// CountEntries returns how many units of one item an owner holds.
func (s *Store) CountEntries(ctx context.Context, ownerID, itemID string) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE owner_id = ? AND item_id = ?`,
		ownerID, itemID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s for %s: %w", itemID, ownerID, err)
	}
	return n, nil
}

// DeleteEntries removes up to n entries of one item from an owner's
// inventory and returns how many were actually removed.
func (s *Store) DeleteEntries(ctx context.Context, ownerID, itemID string, n int) (int, error) {
	res, err := s.q.ExecContext(ctx, `
		DELETE FROM inventory
		WHERE entry_id IN (SELECT entry_id FROM inventory WHERE owner_id = ? AND item_id = ? LIMIT ?)`,
		ownerID, itemID, n,
	)
	if err != nil {
		return 0, fmt.Errorf("remove %s for %s: %w", itemID, ownerID, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove %s for %s: %w", itemID, ownerID, err)
	}
	return int(removed), nil
}

// ListStacks groups an owner's inventory entries by item.
func (s *Store) ListStacks(ctx context.Context, ownerID string) ([]item.Stack, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT item_id, COUNT(*) FROM inventory WHERE owner_id = ? GROUP BY item_id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory for %s: %w", ownerID, err)
	}
	defer rows.Close()

	var stacks []item.Stack
	for rows.Next() {
		var st item.Stack
		if err := rows.Scan(&st.ItemID, &st.Quantity); err != nil {
			return nil, fmt.Errorf("scan inventory stack: %w", err)
		}
		stacks = append(stacks, st)
	}
	return stacks, rows.Err()
}
