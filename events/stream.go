package events

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/pithecene-io/tagstream/featuregen"
	"github.com/pithecene-io/tagstream/log"
	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/samples"
	"github.com/pithecene-io/tagstream/types"
)

var (
	// ErrNotResettable is returned by Reset when the source cannot restart.
	ErrNotResettable = errors.New("sample source is not resettable")
	// ErrClosed is returned by Next after Close.
	ErrClosed = errors.New("event stream closed")
)

// Stream flattens the events of a sample source into one lazy sequence.
//
// A Stream owns exactly one Builder, and so one context generator, for its
// whole traversal. Adaptive state is cleared before the first sample, on
// samples flagged ClearAdaptiveData, and on Reset; never otherwise. Only the
// current sample's events are buffered.
//
// Errors are sticky: once Next fails, every later call returns the same
// error. Source errors are returned unchanged.
type Stream struct {
	source    samples.Source
	builder   *Builder
	logger    *log.Logger
	collector *metrics.Collector

	before, after int
	overrideType  string

	pending   []types.Event
	pos       int
	samples   int
	started   bool
	restarted bool
	err       error
}

// Option configures a Stream.
type Option func(*Stream)

// WithLogger sets the stream logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Stream) { s.logger = l }
}

// WithCollector sets the metrics collector.
func WithCollector(c *metrics.Collector) Option {
	return func(s *Stream) { s.collector = c }
}

// WithOverrideType sets the type used for untyped spans.
func WithOverrideType(typ string) Option {
	return func(s *Stream) { s.overrideType = typ }
}

// WithWindow sets the auxiliary-context window radius.
func WithWindow(before, after int) Option {
	return func(s *Stream) { s.before, s.after = before, after }
}

// NewStream creates a stream pulling from source. The generator is wrapped
// in a featuregen.WindowDecorator so per-sample additional context reaches
// it; by default the window spans featuregen.DefaultAdditionalWindow tokens
// each way. A generator that already implements
// featuregen.AdditionalContextSetter is used as is and WithWindow is ignored.
func NewStream(source samples.Source, generator featuregen.ContextGenerator, opts ...Option) *Stream {
	s := &Stream{
		source: source,
		logger: log.NewNop(),
		before: featuregen.DefaultAdditionalWindow,
		after:  featuregen.DefaultAdditionalWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := generator.(featuregen.AdditionalContextSetter); !ok {
		generator = featuregen.NewWindowDecorator(generator, s.before, s.after)
	}
	s.builder = NewBuilder(generator, s.overrideType)
	return s
}

// Builder returns the stream's event builder.
func (s *Stream) Builder() *Builder {
	return s.builder
}

// Samples returns the number of samples encoded so far in this traversal.
func (s *Stream) Samples() int {
	return s.samples
}

// Next returns the next event, or io.EOF when the source is exhausted.
func (s *Stream) Next(ctx context.Context) (types.Event, error) {
	for s.pos >= len(s.pending) {
		if s.err != nil {
			return types.Event{}, s.err
		}
		if err := s.advance(ctx); err != nil {
			s.err = err
			s.pending, s.pos = nil, 0
			return types.Event{}, err
		}
	}
	ev := s.pending[s.pos]
	s.pos++
	return ev, nil
}

// advance reads and encodes the next sample into the pending buffer.
func (s *Stream) advance(ctx context.Context) error {
	if !s.started {
		s.builder.Generator().ClearAdaptiveData()
		s.started = true
		if s.restarted {
			s.restarted = false
			s.collector.IncAdaptiveResets()
			s.logger.Debug("adaptive data cleared", map[string]any{"sample": 0, "reason": "reset"})
		}
	}

	sample, err := s.source.Read(ctx)
	if errors.Is(err, io.EOF) {
		s.logger.Debug("sample source exhausted", map[string]any{"samples": s.samples})
		return io.EOF
	}
	if err != nil {
		s.collector.IncSourceErrors()
		s.logger.Error("sample source failed", map[string]any{
			"sample": s.samples,
			"error":  err.Error(),
		})
		return err
	}
	s.collector.IncSamplesRead()

	if sample != nil && sample.ClearAdaptiveData {
		s.collector.IncAdaptiveResets()
		s.logger.Debug("adaptive data cleared", map[string]any{"sample": s.samples})
	}

	events, err := s.builder.build(sample, s.samples)
	if err != nil {
		s.collector.IncSampleErrors()
		s.logger.Error("sample encoding failed", map[string]any{
			"sample": s.samples,
			"error":  err.Error(),
		})
		return err
	}
	s.samples++

	outcomes := make([]string, len(events))
	for i, ev := range events {
		outcomes[i] = ev.Outcome
	}
	s.collector.RecordSample(len(sample.Spans), outcomes)

	s.pending, s.pos = events, 0
	return nil
}

// All returns an iterator over the remaining events. Iteration stops after
// the first error, which is yielded with a zero Event. Exhaustion ends the
// sequence without an error.
func (s *Stream) All(ctx context.Context) iter.Seq2[types.Event, error] {
	return func(yield func(types.Event, error) bool) {
		for {
			ev, err := s.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(types.Event{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// Reset restarts the traversal from the source's reset point. Adaptive
// state is cleared, and counted as an adaptive reset, before the first
// sample of the new traversal.
func (s *Stream) Reset() error {
	if errors.Is(s.err, ErrClosed) {
		return ErrClosed
	}
	r, ok := s.source.(samples.Resetter)
	if !ok {
		return ErrNotResettable
	}
	if err := r.Reset(); err != nil {
		return err
	}
	s.pending, s.pos = nil, 0
	s.samples = 0
	s.started = false
	s.restarted = true
	s.err = nil
	s.logger.Debug("event stream reset", nil)
	return nil
}

// Close drops buffered events; later calls to Next return ErrClosed.
// The source is not closed: it belongs to whoever opened it.
func (s *Stream) Close() error {
	s.pending, s.pos = nil, 0
	s.err = ErrClosed
	return nil
}

// Collect drains the stream into a slice.
func Collect(ctx context.Context, s *Stream) ([]types.Event, error) {
	var out []types.Event
	for ev, err := range s.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}
	return out, nil
}
