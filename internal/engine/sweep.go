package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
	"github.com/jinxed-vi/pawder-bot/internal/platform/logger"
)

// Notifier delivers out-of-band notices to owners. Delivery is best-effort:
// a false return means the owner was unreachable, never that the triggering
// state change failed.
type Notifier interface {
	Notify(ownerID, message string) bool
}

// SweepSummary is the only report a sweep produces; it has no caller to
// answer to beyond the log and metrics.
type SweepSummary struct {
	StatsDecayed  int64
	PetsPenalized int64
	PetsRemoved   int64
	NotifyFailed  int64
}

// Sweeper drives the periodic decay/neglect pass. It is the system's only
// autonomous state transition; everything else is user-triggered.
type Sweeper struct {
	svc           *Service
	notifier      Notifier
	logger        *logger.Logger
	cron          *cron.Cron
	notifyTimeout time.Duration
}

// NewSweeper wires the sweep to the engine and the notification collaborator.
func NewSweeper(svc *Service, notifier Notifier, log *logger.Logger, notifyTimeout time.Duration) *Sweeper {
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &Sweeper{
		svc:           svc,
		notifier:      notifier,
		logger:        log,
		notifyTimeout: notifyTimeout,
	}
}

// Start schedules the sweep on the given cron spec (e.g. "@every 45m").
func (sw *Sweeper) Start(schedule string) error {
	sw.cron = cron.New()
	_, err := sw.cron.AddFunc(schedule, func() {
		if _, err := sw.Run(context.Background()); err != nil {
			sw.logger.Errorf("sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule sweep %q: %w", schedule, err)
	}
	sw.cron.Start()
	sw.logger.Info("decay sweep scheduled: " + schedule)
	return nil
}

// Stop halts the schedule. A sweep already in flight finishes.
func (sw *Sweeper) Stop() {
	if sw.cron != nil {
		sw.cron.Stop()
	}
}

// Run executes one full sweep pass:
//
//  1. every decaying stat is lowered for the whole population (floored at 0);
//  2. owners with any decaying stat at 0 lose vitality (the neglect penalty);
//  3. owners whose vitality reached 0 are identified;
//
// steps 1-3 run in one transaction so a partial decay is never visible.
// Step 4 removes each identified pet and notifies the owner as independent
// units of work: one owner's slow or failed notification never blocks or
// rolls back the others, and deletion is final regardless of delivery.
func (sw *Sweeper) Run(ctx context.Context) (SweepSummary, error) {
	var summary SweepSummary
	var candidates []storage.RemovalCandidate

	err := sw.svc.store.WithTx(ctx, func(st *storage.Store) error {
		vitality, err := st.GetDefinition(ctx, sw.svc.vitalityStat)
		if err != nil {
			return err
		}
		if vitality == nil {
			return fmt.Errorf("vitality stat %q is not defined", sw.svc.vitalityStat)
		}

		defs, err := st.ListDecayingDefinitions(ctx)
		if err != nil {
			return err
		}
		for _, def := range defs {
			n, err := st.BulkDecay(ctx, def.ID, def.DecayAmount)
			if err != nil {
				return err
			}
			summary.StatsDecayed += n
		}

		penalized, err := st.PenalizeNeglected(ctx, vitality.ID, sw.svc.neglectPenalty)
		if err != nil {
			return err
		}
		summary.PetsPenalized = penalized

		candidates, err = st.RemovalCandidates(ctx, vitality.ID)
		return err
	})
	if err != nil {
		return summary, fmt.Errorf("sweep decay pass: %w", err)
	}

	for _, c := range candidates {
		if err := sw.svc.RemovePet(ctx, c.OwnerID); err != nil {
			sw.logger.Errorf("sweep: removing pet for %s: %v", c.OwnerID, err)
			continue
		}
		summary.PetsRemoved++
		sw.svc.logger.Event("REMOVED", c.OwnerID, "pet "+c.PetName+" lost all its will and ran away")

		if !sw.notify(c.OwnerID, fmt.Sprintf("Your pet %s was neglected for too long and has run away.", c.PetName)) {
			summary.NotifyFailed++
			sw.svc.metrics.RecordNotifyFailure()
			sw.logger.Warnf("sweep: owner %s unreachable for removal notice", c.OwnerID)
		}
	}

	sw.svc.metrics.RecordSweep(summary.StatsDecayed, summary.PetsPenalized, summary.PetsRemoved)
	sw.logger.Infof("sweep done: %d stats decayed, %d pets penalized, %d removed, %d notices undelivered",
		summary.StatsDecayed, summary.PetsPenalized, summary.PetsRemoved, summary.NotifyFailed)
	return summary, nil
}

// notify bounds the collaborator call so a stalled delivery cannot wedge
// the sweep.
func (sw *Sweeper) notify(ownerID, message string) bool {
	if sw.notifier == nil {
		return false
	}

	done := make(chan bool, 1)
	go func() {
		done <- sw.notifier.Notify(ownerID, message)
	}()

	select {
	case ok := <-done:
		return ok
	case <-time.After(sw.notifyTimeout):
		return false
	}
}
