package domain

import "time"

// AnalyticsEvent is a fire-and-forget behavioral signal. Properties hold
// scalar values only; nothing downstream may depend on delivery or ordering.
type AnalyticsEvent struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}
