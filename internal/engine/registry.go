package engine

import (
	"context"
	"fmt"

	"github.com/jinxed-vi/pawder-bot/internal/domain/stat"
	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
)

// DefineStat inserts or replaces a stat definition by name. Replacing keeps
// the def_id (and therefore every existing instance) intact. On creation,
// every existing pet is backfilled with an instance at the default value;
// the count of backfilled pets is returned.
func (s *Service) DefineStat(ctx context.Context, def stat.Definition) (backfilled int, err error) {
	if def.Name == "" {
		return 0, ErrNotFound
	}
	if def.DecayAmount < 0 {
		return 0, fmt.Errorf("decay amount must be >= 0, got %d", def.DecayAmount)
	}

	err = s.store.WithTx(ctx, func(st *storage.Store) error {
		created, defID, err := st.UpsertDefinition(ctx, def)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		backfilled, err = st.BackfillStat(ctx, defID, def.DefaultValue)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Event("DEFINE_STAT", "", fmt.Sprintf("stat %q defined, %d pets backfilled", def.Name, backfilled))
	return backfilled, nil
}

// DeleteStat removes a definition and cascades: every pet's instance of the
// stat goes (schema cascade), and so does every catalog item whose effect
// references it, along with that item's inventory entries. Cascade-delete is
// the chosen contract for dangling references; orphaned rows are never left
// behind. Returns false when the name did not exist.
func (s *Service) DeleteStat(ctx context.Context, name string) (bool, error) {
	var removed bool
	err := s.store.WithTx(ctx, func(st *storage.Store) error {
		var err error
		removed, err = st.DeleteDefinition(ctx, name)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		_, err = st.DeleteItemsByEffectStat(ctx, name)
		return err
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Event("DELETE_STAT", "", fmt.Sprintf("stat %q and its dependents removed", name))
	}
	return removed, nil
}

// GetDefinition looks a definition up by stat name, used to validate stat
// names supplied elsewhere. Returns nil when absent.
func (s *Service) GetDefinition(ctx context.Context, name string) (*stat.Definition, error) {
	return s.store.GetDefinition(ctx, name)
}
