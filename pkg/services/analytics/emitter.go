// Package analytics emits behavioral events to the external collector.
// Instrumentation is strictly fire-and-forget: no error leaves this package
// and nothing here may slow down or break a user flow.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/relasi-app/relasi-core/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Emitter queues events and posts them from a background worker. A full
// queue drops the event; delivery order is best effort and consumers must
// not rely on it.
type Emitter struct {
	collectorURL string
	client       *http.Client
	queue        chan domain.AnalyticsEvent
	done         chan struct{}
	logger       zerolog.Logger
	now          func() time.Time

	mu     sync.Mutex
	closed bool
}

type Config struct {
	CollectorURL string
	QueueSize    int
	Timeout      time.Duration
}

func NewEmitter(logger zerolog.Logger, cfg Config) *Emitter {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	e := &Emitter{
		collectorURL: cfg.CollectorURL,
		client:       &http.Client{Timeout: cfg.Timeout},
		queue:        make(chan domain.AnalyticsEvent, cfg.QueueSize),
		done:         make(chan struct{}),
		logger:       logger,
		now:          time.Now,
	}
	go e.run()
	return e
}

// Record enqueues an event. Never blocks, never returns an error; calls that
// race shutdown drop the event.
func (e *Emitter) Record(name string, properties map[string]any) {
	ev := domain.AnalyticsEvent{
		ID:         uuid.NewString(),
		Name:       name,
		Properties: properties,
		Timestamp:  e.now(),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		e.logger.Debug().Str("event", name).Msg("emitter closed, event dropped")
		return
	}

	select {
	case e.queue <- ev:
	default:
		e.logger.Debug().Str("event", name).Msg("analytics queue full, event dropped")
	}
}

// Close stops the worker. Pending events are abandoned; they are advisory by
// contract. Idempotent.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	<-e.done
}

func (e *Emitter) run() {
	defer close(e.done)
	for ev := range e.queue {
		e.post(ev)
	}
}

func (e *Emitter) post(ev domain.AnalyticsEvent) {
	if e.collectorURL == "" {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		e.logger.Debug().Err(err).Str("event", ev.Name).Msg("failed to encode analytics event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.collectorURL, bytes.NewReader(body))
	if err != nil {
		e.logger.Debug().Err(err).Str("event", ev.Name).Msg("failed to build analytics request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Debug().Err(err).Str("event", ev.Name).Msg("analytics delivery failed")
		return
	}
	_ = resp.Body.Close()
}
