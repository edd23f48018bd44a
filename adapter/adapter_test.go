package adapter

import (
	"errors"
	"testing"
	"time"

	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/types"
)

func TestOutcomeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, OutcomeSuccess},
		{"source", types.NewSourceReadError("read", errors.New("x")), OutcomeSourceError},
		{"encoding", &types.SampleEncodingError{Sample: 2, Stage: types.StageOutcomes, Err: errors.New("x")}, OutcomeEncodingError},
		{"span", &types.InvalidSpanError{Span: types.NewSpan(0, 9, ""), Length: 2, Reason: "end past sentence"}, OutcomeEncodingError},
		{"configuration", &types.InvalidTrainingConfigurationError{Group: "build", Key: "Cutoff", Reason: "x"}, OutcomeConfigurationError},
		{"other", errors.New("x"), OutcomeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeFor(tt.err); got != tt.want {
				t.Errorf("OutcomeFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTraversalCompletedEvent(t *testing.T) {
	c := metrics.NewCollector("run-1", "train.txt", "default")
	c.IncSamplesRead()
	c.RecordSample(1, []string{"person-start", "other"})

	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	ev := NewTraversalCompletedEvent(c.Snapshot(), "tagger", nil, 1500*time.Millisecond, now)

	if ev.EventType != EventTypeTraversalCompleted {
		t.Errorf("EventType = %q", ev.EventType)
	}
	if ev.RunID != "run-1" || ev.Corpus != "train.txt" || ev.Generator != "default" {
		t.Errorf("dimensions = %q/%q/%q", ev.RunID, ev.Corpus, ev.Generator)
	}
	if ev.Samples != 1 || ev.Events != 2 {
		t.Errorf("Samples/Events = %d/%d, want 1/2", ev.Samples, ev.Events)
	}
	if ev.Outcome != OutcomeSuccess || ev.Error != "" {
		t.Errorf("Outcome/Error = %q/%q", ev.Outcome, ev.Error)
	}
	if ev.Timestamp != "2026-02-07T12:00:00Z" {
		t.Errorf("Timestamp = %q", ev.Timestamp)
	}
	if ev.DurationMs != 1500 {
		t.Errorf("DurationMs = %d, want 1500", ev.DurationMs)
	}

	failed := NewTraversalCompletedEvent(c.Snapshot(), "", errors.New("boom"), 0, now)
	if failed.Outcome != OutcomeError || failed.Error != "boom" {
		t.Errorf("failed Outcome/Error = %q/%q", failed.Outcome, failed.Error)
	}
}
