// Package adapter defines the notification boundary of the tool layer.
//
// Adapters publish a summary when an event-stream traversal (and optional
// training run) finishes, so downstream jobs can pick up the result.
// The caller owns adapter lifecycle; users provide configuration only.
package adapter

import (
	"context"
	"time"

	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/types"
)

// EventTypeTraversalCompleted is the event_type of every notification.
const EventTypeTraversalCompleted = "traversal_completed"

// Traversal outcomes.
const (
	OutcomeSuccess            = "success"
	OutcomeSourceError        = "source_error"
	OutcomeEncodingError      = "encoding_error"
	OutcomeConfigurationError = "configuration_error"
	OutcomeError              = "error"
)

// TraversalCompletedEvent is the payload published when a traversal ends.
type TraversalCompletedEvent struct {
	Version        string           `json:"version"`
	EventType      string           `json:"event_type"` // always "traversal_completed"
	RunID          string           `json:"run_id"`
	Corpus         string           `json:"corpus"`
	Generator      string           `json:"generator"`
	Stage          string           `json:"stage,omitempty"`
	Outcome        string           `json:"outcome"` // success, source_error, etc.
	Error          string           `json:"error,omitempty"`
	Timestamp      string           `json:"timestamp"` // ISO 8601
	Samples        int64            `json:"samples"`
	Events         int64            `json:"events"`
	AdaptiveResets int64            `json:"adaptive_resets"`
	Outcomes       map[string]int64 `json:"outcomes,omitempty"`
	DurationMs     int64            `json:"duration_ms"`
}

// OutcomeFor classifies a traversal error.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case types.IsSourceError(err):
		return OutcomeSourceError
	case types.IsEncodingError(err):
		return OutcomeEncodingError
	case types.IsConfigurationError(err):
		return OutcomeConfigurationError
	default:
		return OutcomeError
	}
}

// NewTraversalCompletedEvent builds the payload from a metrics snapshot.
func NewTraversalCompletedEvent(snap metrics.Snapshot, stage string, err error, duration time.Duration, now time.Time) *TraversalCompletedEvent {
	ev := &TraversalCompletedEvent{
		Version:        types.Version,
		EventType:      EventTypeTraversalCompleted,
		RunID:          snap.RunID,
		Corpus:         snap.Corpus,
		Generator:      snap.Generator,
		Stage:          stage,
		Outcome:        OutcomeFor(err),
		Timestamp:      now.UTC().Format(time.RFC3339),
		Samples:        snap.SamplesEncoded,
		Events:         snap.EventsEmitted,
		AdaptiveResets: snap.AdaptiveResets,
		Outcomes:       snap.Outcomes,
		DurationMs:     duration.Milliseconds(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

// Adapter publishes traversal completion events to a downstream system.
// Implementations must be safe for single-use per run.
type Adapter interface {
	// Publish sends a completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *TraversalCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}
