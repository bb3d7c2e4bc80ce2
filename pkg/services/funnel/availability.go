package funnel

import (
	"context"
	"sync"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/api"
	"github.com/rs/zerolog"
)

// State is the tri-state feature gate result. A failed gate fetch renders the
// same as a genuinely disabled feature, but the states stay distinct so the
// checker can retry sooner after transport failures.
type State string

const (
	StateUnknown     State = "unknown"
	StateAvailable   State = "available"
	StateUnavailable State = "unavailable"
)

type gateBackend interface {
	QuestionSets(ctx context.Context) ([]api.QuestionSet, error)
}

// AvailabilityChecker resolves whether the premium funnel is switched on by
// looking for the gate code among the backend's question sets. Results are
// cached; availability failures are never surfaced as errors.
type AvailabilityChecker struct {
	backend  gateBackend
	gateCode string
	ttl      time.Duration
	errTTL   time.Duration

	mu           sync.Mutex
	state        State
	checkedAt    time.Time
	lastWasError bool
}

func NewAvailabilityChecker(backend gateBackend, gateCode string, ttl time.Duration) *AvailabilityChecker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityChecker{
		backend:  backend,
		gateCode: gateCode,
		ttl:      ttl,
		errTTL:   30 * time.Second,
		state:    StateUnknown,
	}
}

// Check returns the current gate state, refreshing the cache when stale.
func (c *AvailabilityChecker) Check(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.ttl
	if c.state == StateUnknown {
		ttl = 0
	} else if c.lastWasError {
		ttl = c.errTTL
	}
	if !c.checkedAt.IsZero() && time.Since(c.checkedAt) < ttl {
		return c.state
	}

	sets, err := c.backend.QuestionSets(ctx)
	c.checkedAt = time.Now()
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("feature gate fetch failed")
		c.state = StateUnavailable
		c.lastWasError = true
		return c.state
	}

	c.lastWasError = false
	c.state = StateUnavailable
	for _, s := range sets {
		if s.Code == c.gateCode {
			c.state = StateAvailable
			break
		}
	}
	return c.state
}
