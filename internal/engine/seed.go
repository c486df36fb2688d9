package engine

import (
	"context"
	"fmt"

	"github.com/jinxed-vi/pawder-bot/internal/domain/item"
	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
)

// defaultDefinitions is the starter schema: three decaying care stats, the
// vitality stat, and an uncapped currency.
var defaultDefinitions = []stat.Definition{
	{Name: StatHunger, DefaultValue: 100, Cap: stat.IntPtr(100), CooldownSeconds: stat.IntPtr(1800), DecayAmount: 2, DisplayName: "Hunger"},
	{Name: StatHappiness, DefaultValue: 100, Cap: stat.IntPtr(100), CooldownSeconds: stat.IntPtr(300), DecayAmount: 1, DisplayName: "Happiness"},
	{Name: StatCleanliness, DefaultValue: 100, Cap: stat.IntPtr(100), CooldownSeconds: stat.IntPtr(3600), DecayAmount: 3, DisplayName: "Cleanliness"},
	{Name: StatWillpower, DefaultValue: 100, Cap: stat.IntPtr(100), DecayAmount: 0, DisplayName: "Willpower"},
	{Name: StatMoney, DefaultValue: 10, DecayAmount: 0, DisplayName: "Coins"},
}

// defaultItems stocks the shop on first run.
var defaultItems = []item.CatalogItem{
	{ID: "apple", Name: "Apple", Price: 10, Description: "Restores 25 hunger.", Effect: item.Effect{Stat: StatHunger, Value: 25}, Visible: true},
	{ID: "bread", Name: "Bread", Price: 20, Description: "Restores 40 hunger.", Effect: item.Effect{Stat: StatHunger, Value: 40}, Visible: true},
	{ID: "toy", Name: "Squeaky Toy", Price: 30, Description: "Restores 35 happiness.", Effect: item.Effect{Stat: StatHappiness, Value: 35}, Visible: true},
	{ID: "soap", Name: "Soap Bar", Price: 15, Description: "Restores 50 cleanliness.", Effect: item.Effect{Stat: StatCleanliness, Value: 50}, Visible: true},
}

// SeedDefaults populates stat definitions and the catalog on an empty
// database. Existing data is never touched; admins own the schema after
// first boot.
func (s *Service) SeedDefaults(ctx context.Context) error {
	return s.store.WithTx(ctx, func(st *storage.Store) error {
		defs, err := st.ListDefinitions(ctx)
		if err != nil {
			return err
		}
		if len(defs) == 0 {
			s.logger.Info("empty schema, seeding default stat definitions")
			for _, def := range defaultDefinitions {
				if _, _, err := st.UpsertDefinition(ctx, def); err != nil {
					return fmt.Errorf("seed definition %s: %w", def.Name, err)
				}
			}
		}

		items, err := st.ListItems(ctx, true)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			s.logger.Info("empty catalog, seeding starter items")
			for _, it := range defaultItems {
				if err := st.UpsertItem(ctx, it); err != nil {
					return fmt.Errorf("seed item %s: %w", it.ID, err)
				}
			}
		}
		return nil
	})
}
