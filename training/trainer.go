package training

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pithecene-io/tagstream/log"
	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/types"
)

// EventSource is the pull side of an event stream; *events.Stream
// satisfies it. Next returns io.EOF when exhausted.
type EventSource interface {
	Next(ctx context.Context) (types.Event, error)
}

// Model is the opaque result of training.
type Model any

// Trainer turns an event sequence into a model.
type Trainer interface {
	Train(ctx context.Context, events EventSource, settings Settings) (Model, error)
}

// TrainerFunc adapts a function to the Trainer interface.
type TrainerFunc func(ctx context.Context, events EventSource, settings Settings) (Model, error)

// Train calls f.
func (f TrainerFunc) Train(ctx context.Context, events EventSource, settings Settings) (Model, error) {
	return f(ctx, events, settings)
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger    *log.Logger
	collector *metrics.Collector
}

// WithLogger sets the logger used by Run.
func WithLogger(l *log.Logger) RunOption {
	return func(c *runConfig) { c.logger = l }
}

// WithCollector sets the collector updated by Run.
func WithCollector(c *metrics.Collector) RunOption {
	return func(rc *runConfig) { rc.collector = c }
}

// Run validates every parameter group, then trains stage on events.
// Validation failures return *types.InvalidTrainingConfigurationError
// without touching events.
func Run(ctx context.Context, trainer Trainer, events EventSource, params *Parameters, stage string, opts ...RunOption) (Model, error) {
	cfg := runConfig{logger: log.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if params == nil {
		params = DefaultParameters(DefaultIterations, DefaultCutoff)
	}
	if err := params.Validate(); err != nil {
		cfg.logger.Error("invalid training configuration", map[string]any{"error": err.Error()})
		return nil, err
	}

	settings := params.Settings(stage)
	cfg.collector.IncTrainingStarted()
	cfg.logger.Info("training started", map[string]any{
		"stage":      stage,
		"algorithm":  string(settings.Algorithm),
		"iterations": settings.Iterations,
		"cutoff":     settings.Cutoff,
	})

	start := time.Now()
	model, err := trainer.Train(ctx, events, settings)
	if err != nil {
		cfg.collector.IncTrainingFailed()
		cfg.logger.Error("training failed", map[string]any{
			"stage": stage,
			"error": err.Error(),
		})
		return nil, err
	}

	cfg.collector.IncTrainingCompleted()
	cfg.logger.Info("training completed", map[string]any{
		"stage":       stage,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return model, nil
}

// Drain pulls every event from src and calls fn on each. It stops at
// exhaustion, at the first error, or when ctx is done.
func Drain(ctx context.Context, src EventSource, fn func(types.Event) error) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}
