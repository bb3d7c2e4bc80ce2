package experiment

import (
	"sync"
	"time"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
)

// State is the hesitation surface lifecycle for one page view.
type State int

const (
	StateIdle State = iota
	StateArmed
	StateTriggered
	StateCooldown
	StateConverted
)

// TriggerEvent is one hesitation message ready to show.
type TriggerEvent struct {
	Kind    domain.TriggerKind
	Message string
}

// SchedulerConfig tunes the trigger timing.
type SchedulerConfig struct {
	TimeDelay time.Duration // delay before the time_delay trigger arms
	Cooldown  time.Duration // quiet period after a dismissal
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TimeDelay: 25 * time.Second,
		Cooldown:  40 * time.Second,
	}
}

// Scheduler owns the timers and signal intake for one hesitation surface.
// Exactly one message is in flight at a time: triggers firing while one is
// visible are dropped, not queued. Close tears down every timer, so nothing
// fires against a surface that is gone.
type Scheduler struct {
	mu      sync.Mutex
	state   State
	cfg     SchedulerConfig
	copy    *Microcopy
	profile domain.UserPsychProfile
	locale  domain.Locale
	events  chan TriggerEvent
	timers  []*time.Timer
	nextIdx map[domain.TriggerKind]int
	closed  bool
}

func NewScheduler(cfg SchedulerConfig, copy *Microcopy, profile domain.UserPsychProfile, locale domain.Locale) *Scheduler {
	return &Scheduler{
		state:   StateIdle,
		cfg:     cfg,
		copy:    copy,
		profile: profile,
		locale:  locale,
		events:  make(chan TriggerEvent, 1),
		nextIdx: make(map[domain.TriggerKind]int),
	}
}

// Events is the single stream the surface consumes.
func (s *Scheduler) Events() <-chan TriggerEvent {
	return s.events
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Arm transitions Idle to Armed and registers the time-delay timer.
func (s *Scheduler) Arm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle || s.closed {
		return
	}
	s.state = StateArmed

	t := time.AfterFunc(s.cfg.TimeDelay, func() {
		s.fire(domain.TriggerTimeDelay)
	})
	s.timers = append(s.timers, t)
}

// ObserveScrollBack reports an upward scroll past previously read content.
func (s *Scheduler) ObserveScrollBack() {
	s.fire(domain.TriggerScrollBack)
}

// ObserveHover reports a lingering hover over the locked content area.
func (s *Scheduler) ObserveHover() {
	s.fire(domain.TriggerHover)
}

// ObserveSecondVisit reports that the visit counter crossed two.
func (s *Scheduler) ObserveSecondVisit() {
	s.fire(domain.TriggerSecondVisit)
}

func (s *Scheduler) fire(kind domain.TriggerKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateArmed || s.closed {
		return
	}

	msgs := s.copy.Messages(kind, s.profile, s.locale)
	if len(msgs) == 0 {
		return
	}
	idx := s.nextIdx[kind] % len(msgs)
	s.nextIdx[kind]++

	s.state = StateTriggered
	select {
	case s.events <- TriggerEvent{Kind: kind, Message: msgs[idx]}:
	default:
		// consumer lagging; drop rather than queue
		s.state = StateArmed
	}
}

// Dismiss acknowledges the visible message and starts the cooldown, after
// which the surface re-arms for the next trigger.
func (s *Scheduler) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateTriggered || s.closed {
		return
	}
	s.state = StateCooldown

	t := time.AfterFunc(s.cfg.Cooldown, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state == StateCooldown && !s.closed {
			s.state = StateArmed
		}
	})
	s.timers = append(s.timers, t)
}

// Convert marks the funnel as converted and suppresses everything else.
func (s *Scheduler) Convert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = StateConverted
}

// Close stops all timers and closes the event stream. Idempotent.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	s.timers = nil
	close(s.events)
}
