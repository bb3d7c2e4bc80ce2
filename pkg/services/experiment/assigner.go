package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/relasi-app/relasi-core/pkg/store/session"
)

// Assigner hands out session-stable experiment variants. The first call for
// a (session, surface) pair draws a weighted arm and persists it; every later
// call returns the stored arm, including calls racing from other instances.
type Assigner struct {
	registry Registry
	store    session.Store
	ttl      time.Duration
	pick     func(n int) int
}

// NewAssigner creates an assigner. ttl bounds the session lifetime of an
// assignment; zero means no expiry.
func NewAssigner(registry Registry, store session.Store, ttl time.Duration) *Assigner {
	return &Assigner{
		registry: registry,
		store:    store,
		ttl:      ttl,
		pick:     rand.Intn,
	}
}

func assignmentKey(sessionID string, surface domain.SurfaceID) string {
	return fmt.Sprintf("variant:%s:%s", sessionID, surface)
}

// Assign returns the session's variant for a surface, drawing one if needed.
func (a *Assigner) Assign(ctx context.Context, sessionID string, surface domain.SurfaceID) (domain.Variant, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session id cannot be empty")
	}

	arms, err := a.registry.Arms(surface)
	if err != nil {
		return "", err
	}

	drawn := a.draw(arms)
	winner, err := a.store.PutIfAbsent(ctx, assignmentKey(sessionID, surface), string(drawn), a.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to persist assignment: %w", err)
	}
	return domain.Variant(winner), nil
}

// Clear drops a stored assignment. QA use only.
func (a *Assigner) Clear(ctx context.Context, sessionID string, surface domain.SurfaceID) error {
	return a.store.Delete(ctx, assignmentKey(sessionID, surface))
}

func (a *Assigner) draw(arms []Arm) domain.Variant {
	total := 0
	for _, arm := range arms {
		total += arm.Weight
	}
	n := a.pick(total)
	for _, arm := range arms {
		n -= arm.Weight
		if n < 0 {
			return arm.Variant
		}
	}
	return arms[len(arms)-1].Variant
}
