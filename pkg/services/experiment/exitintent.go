package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/relasi-app/relasi-core/pkg/store/session"
)

// ExitIntentDetector fires exactly once per session, the first time the
// pointer crosses above the viewport top edge before conversion. The
// once-flag lives in the session store, so repeated crossings and parallel
// tabs stay silent after the first hit.
type ExitIntentDetector struct {
	store session.Store
	ttl   time.Duration
}

func NewExitIntentDetector(store session.Store, ttl time.Duration) *ExitIntentDetector {
	return &ExitIntentDetector{store: store, ttl: ttl}
}

// Detect reports whether the exit prompt should fire for this crossing.
func (d *ExitIntentDetector) Detect(ctx context.Context, sessionID string, pointerY float64, converted bool) (bool, error) {
	if sessionID == "" {
		return false, fmt.Errorf("session id cannot be empty")
	}
	if pointerY > 0 || converted {
		return false, nil
	}

	first, err := d.store.SetFlag(ctx, "exit_intent:"+sessionID, d.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to mark exit intent: %w", err)
	}
	return first, nil
}
