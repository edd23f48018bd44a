package training_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pithecene-io/tagstream/events"
	"github.com/pithecene-io/tagstream/featuregen"
	"github.com/pithecene-io/tagstream/log"
	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/samples"
	"github.com/pithecene-io/tagstream/training"
	"github.com/pithecene-io/tagstream/types"
)

func newStream() *events.Stream {
	src := samples.NewSliceSource(
		types.NewSample([]string{"Pierre", "Vinken", "said"}, []types.Span{types.NewSpan(0, 2, "person")}, false),
		types.NewSample([]string{"Vinken", "left"}, []types.Span{types.NewSpan(0, 1, "person")}, false),
	)
	return events.NewStream(src, featuregen.NewDefaultContextGenerator())
}

func TestRun_IndexerCountsEvents(t *testing.T) {
	collector := metrics.NewCollector("run-1", "memory", "default")
	model, err := training.Run(t.Context(), training.Indexer{}, newStream(),
		training.DefaultParameters(10, 0), "",
		training.WithCollector(collector),
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	ix, ok := model.(*training.Index)
	if !ok {
		t.Fatalf("model is %T, want *training.Index", model)
	}
	if ix.Events != 5 {
		t.Errorf("Events = %d, want 5", ix.Events)
	}
	if ix.Outcomes["person-start"] != 2 || ix.Outcomes["other"] != 2 || ix.Outcomes["person-continue"] != 1 {
		t.Errorf("Outcomes = %v", ix.Outcomes)
	}
	if ix.Dropped != 0 {
		t.Errorf("Dropped = %d with cutoff 0, want 0", ix.Dropped)
	}

	snap := collector.Snapshot()
	if snap.TrainingsStarted != 1 || snap.TrainingsCompleted != 1 || snap.TrainingsFailed != 0 {
		t.Errorf("training counters = %d/%d/%d", snap.TrainingsStarted, snap.TrainingsCompleted, snap.TrainingsFailed)
	}
}

func TestIndexer_Cutoff(t *testing.T) {
	model, err := training.Indexer{}.Train(t.Context(), newStream(), training.Settings{Cutoff: 2})
	if err != nil {
		t.Fatal(err)
	}
	ix := model.(*training.Index)
	if ix.Dropped == 0 {
		t.Error("expected singleton predicates to be dropped")
	}
	for p, n := range ix.Predicates {
		if n < 2 {
			t.Errorf("predicate %q kept with count %d below cutoff", p, n)
		}
	}
	// The prior feature occurs on every event.
	if ix.Predicates["def"] != 5 {
		t.Errorf("Predicates[def] = %d, want 5", ix.Predicates["def"])
	}
}

func TestRun_InvalidConfigurationFailsFast(t *testing.T) {
	called := false
	trainer := training.TrainerFunc(func(context.Context, training.EventSource, training.Settings) (training.Model, error) {
		called = true
		return nil, nil
	})
	params := training.DefaultParameters(0, 5)

	_, err := training.Run(t.Context(), trainer, newStream(), params, "")
	if !types.IsConfigurationError(err) {
		t.Fatalf("got %v, want configuration error", err)
	}
	if called {
		t.Error("trainer invoked despite invalid configuration")
	}
}

func TestRun_InvalidStageFailsFast(t *testing.T) {
	params, err := training.ParseParameters([]byte("stages:\n  check:\n    algorithm: GIS\n"))
	if err != nil {
		t.Fatal(err)
	}
	stream := newStream()

	_, err = training.Run(t.Context(), training.Indexer{}, stream, params, training.StageTagger)
	var cfgErr *types.InvalidTrainingConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Group != training.StageCheck {
		t.Fatalf("got %v, want check group error", err)
	}
	if stream.Samples() != 0 {
		t.Errorf("stream consumed %d samples before validation failed", stream.Samples())
	}
}

func TestRun_TrainerErrorLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := log.NewWithCore(&types.RunMeta{RunID: "run-1"}, core)
	collector := metrics.NewCollector("run-1", "memory", "default")
	boom := errors.New("optimizer diverged")

	trainer := training.TrainerFunc(func(context.Context, training.EventSource, training.Settings) (training.Model, error) {
		return nil, boom
	})
	_, err := training.Run(t.Context(), trainer, newStream(), nil, training.StageBuild,
		training.WithLogger(logger),
		training.WithCollector(collector),
	)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want trainer error", err)
	}
	if logs.FilterMessage("training failed").Len() != 1 {
		t.Error("expected a training failed log entry")
	}
	if collector.Snapshot().TrainingsFailed != 1 {
		t.Error("TrainingsFailed not incremented")
	}
}

func TestRun_SourceErrorPropagates(t *testing.T) {
	sourceErr := types.NewSourceReadError("read", errors.New("gone"))
	src := &failingSource{err: sourceErr}
	stream := events.NewStream(src, featuregen.NewDefaultContextGenerator())

	_, err := training.Run(t.Context(), training.Indexer{}, stream, nil, "")
	if err != sourceErr {
		t.Errorf("got %v, want source error unchanged", err)
	}
}

type failingSource struct{ err error }

func (f *failingSource) Read(context.Context) (*types.Sample, error) { return nil, f.err }
