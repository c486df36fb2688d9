package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jinxed-vi/pawder-bot/internal/domain/item"
	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
)

// Purchase debits the item's price from the owner's money and grants one
// inventory entry, atomically. The funds check is explicit: the mutation
// path clamps at 0 instead of rejecting, so a blind debit would silently
// sell items below price.
func (s *Service) Purchase(ctx context.Context, ownerID, itemID string) error {
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		it, err := st.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return ErrNotFound
		}

		money, err := st.GetStatInstance(ctx, ownerID, StatMoney)
		if err != nil {
			return err
		}
		if money == nil {
			return ErrNoPet
		}
		if money.Value < it.Price {
			return ErrInsufficientFunds
		}

		if _, err := s.modifyStatTx(ctx, st, ownerID, StatMoney, -it.Price, stat.ModeAdd); err != nil {
			return err
		}
		return st.InsertEntry(ctx, item.InventoryEntry{
			EntryID: uuid.NewString(),
			OwnerID: ownerID,
			ItemID:  it.ID,
		})
	})
	if err != nil {
		return err
	}

	s.logger.Event("PURCHASE", ownerID, "bought "+itemID)
	return nil
}

// ClaimPrize grants one random item from the full catalog (hidden items
// included) at most once per prize cooldown. The claim timestamp lives on
// the pet itself, separate from the per-stat cooldown mechanism, and
// defaults to the zero time so the first claim always succeeds.
func (s *Service) ClaimPrize(ctx context.Context, ownerID string) (*item.CatalogItem, error) {
	var won item.CatalogItem
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		p, err := st.GetPet(ctx, ownerID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrNoPet
		}

		if since := s.now().Sub(p.LastPrizeAt); since < s.prizeCooldown {
			return &CooldownError{Remaining: s.prizeCooldown - since}
		}

		items, err := st.ListItems(ctx, true)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCatalog
		}

		won = items[s.rand.Intn(len(items))]
		if err := st.InsertEntry(ctx, item.InventoryEntry{
			EntryID: uuid.NewString(),
			OwnerID: ownerID,
			ItemID:  won.ID,
		}); err != nil {
			return err
		}
		return st.StampPrize(ctx, ownerID, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Event("PRIZE", ownerID, "won "+won.ID)
	return &won, nil
}

// UseItem consumes one unit of the item from the owner's inventory and
// applies its effect through the mutation path, plus a small vitality
// bonus for the attention.
func (s *Service) UseItem(ctx context.Context, ownerID, itemID string) (int, error) {
	var newValue int
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		it, err := st.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return ErrNotFound
		}

		consumed, err := st.ConsumeEntry(ctx, ownerID, itemID)
		if err != nil {
			return err
		}
		if !consumed {
			return ErrNotOwned
		}

		newValue, err = s.modifyStatTx(ctx, st, ownerID, it.Effect.Stat, it.Effect.Value, stat.ModeAdd)
		if err != nil {
			return err
		}

		if _, err := s.modifyStatTx(ctx, st, ownerID, s.vitalityStat, useWillpowerBonus, stat.ModeAdd); err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("vitality bonus: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Event("USE_ITEM", ownerID, "used "+itemID)
	return newValue, nil
}

// ListInventory groups the owner's inventory entries by item id.
func (s *Service) ListInventory(ctx context.Context, ownerID string) (map[string]int, error) {
	stacks, err := s.store.ListStacks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(stacks))
	for _, st := range stacks {
		counts[st.ItemID] = st.Quantity
	}
	return counts, nil
}

// Shop lists the catalog items visible for purchase.
func (s *Service) Shop(ctx context.Context) ([]item.CatalogItem, error) {
	return s.store.ListItems(ctx, false)
}

// Leaderboard ranks the richest owners.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]storage.LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.TopByStat(ctx, StatMoney, limit)
}

// DefineItem inserts or replaces a catalog item. The effect stat must be
// a defined stat; items never reference stats the engine doesn't know.
func (s *Service) DefineItem(ctx context.Context, it item.CatalogItem) error {
	if it.ID == "" || it.Price < 0 {
		return fmt.Errorf("invalid item definition: %w", ErrNotFound)
	}

	return s.store.WithTx(ctx, func(st *storage.Store) error {
		def, err := st.GetDefinition(ctx, it.Effect.Stat)
		if err != nil {
			return err
		}
		if def == nil {
			return ErrNotFound
		}
		return st.UpsertItem(ctx, it)
	})
}

// DeleteItem removes a catalog item and, via cascade, every inventory
// entry referencing it. Returns false when the item did not exist.
func (s *Service) DeleteItem(ctx context.Context, itemID string) (bool, error) {
	return s.store.DeleteItem(ctx, itemID)
}

// GrantItems adds quantity units of an item to an owner's inventory,
// bypassing the shop. Admin surface.
func (s *Service) GrantItems(ctx context.Context, ownerID, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return s.store.WithTx(ctx, func(st *storage.Store) error {
		it, err := st.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return ErrNotFound
		}
		for i := 0; i < quantity; i++ {
			if err := st.InsertEntry(ctx, item.InventoryEntry{
				EntryID: uuid.NewString(),
				OwnerID: ownerID,
				ItemID:  itemID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// RevokeItems removes quantity units of an item from an owner's inventory.
// Fails without changes when the owner holds fewer than quantity.
func (s *Service) RevokeItems(ctx context.Context, ownerID, itemID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return s.store.WithTx(ctx, func(st *storage.Store) error {
		held, err := st.CountEntries(ctx, ownerID, itemID)
		if err != nil {
			return err
		}
		if held < quantity {
			return ErrNotOwned
		}
		_, err = st.DeleteEntries(ctx, ownerID, itemID, quantity)
		return err
	})
}
