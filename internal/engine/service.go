// Package engine contains the stat engine: the mutation choke-point,
// entity lifecycle, the definition registry, the economy, and the
// decay/neglect sweep.
//
// ARCHITECTURAL RULE: nothing outside this package writes a stat value.
// Every care action, item effect, penalty and decay flows through the
// mutation path here, which is where clamping lives.
package engine

import (
	"math/rand"
	"time"

	"github.com/jinxed-vi/pawder-bot/internal/infra/storage"
	"github.com/jinxed-vi/pawder-bot/internal/platform/logger"
	"github.com/jinxed-vi/pawder-bot/internal/platform/metrics"
)

// Well-known stat names. The engine is generic over definitions; these
// constants only anchor the convenience care actions and the economy.
const (
	StatHunger      = "hunger"
	StatHappiness   = "happiness"
	StatCleanliness = "cleanliness"
	StatWillpower   = "willpower"
	StatMoney       = "money"
)

// Care action tuning, carried over from the original balance.
const (
	feedRestore  = 15
	playRestore  = 20
	cleanRestore = 100

	careWillpowerBonus = 1
	useWillpowerBonus  = 2

	playRewardMin = 5
	playRewardMax = 15

	defaultNeglectPenalty = 5
	defaultPrizeCooldown  = 24 * time.Hour
)

// Config tunes the engine. Zero values fall back to the defaults above.
type Config struct {
	// VitalityStat names the stat whose collapse removes a pet.
	VitalityStat   string
	NeglectPenalty int
	PrizeCooldown  time.Duration
}

// Service is the stat engine facade. All state lives in the Store; the
// Service is safe for concurrent use because the store serializes
// transactions on a single connection.
type Service struct {
	store   *storage.Store
	logger  *logger.Logger
	metrics *metrics.Collector

	vitalityStat   string
	neglectPenalty int
	prizeCooldown  time.Duration

	// now is injected so cooldown behavior is testable.
	now  func() time.Time
	rand *rand.Rand
}

// NewService wires the engine to its store and logger.
func NewService(store *storage.Store, log *logger.Logger, cfg Config) *Service {
	if cfg.VitalityStat == "" {
		cfg.VitalityStat = StatWillpower
	}
	if cfg.NeglectPenalty == 0 {
		cfg.NeglectPenalty = defaultNeglectPenalty
	}
	if cfg.PrizeCooldown == 0 {
		cfg.PrizeCooldown = defaultPrizeCooldown
	}

	return &Service{
		store:          store,
		logger:         log,
		metrics:        metrics.Get(),
		vitalityStat:   cfg.VitalityStat,
		neglectPenalty: cfg.NeglectPenalty,
		prizeCooldown:  cfg.PrizeCooldown,
		now:            time.Now,
		rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetClock overrides the engine's time source. Tests use this to step
// through cooldown windows deterministically.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
