// Package metrics provides per-traversal counters for the event pipeline.
//
// The Collector accumulates counters while an event stream is consumed. It
// is a leaf package with no internal dependencies.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Samples
	SamplesRead    int64 `json:"samples_read" yaml:"samples_read"`
	SamplesEncoded int64 `json:"samples_encoded" yaml:"samples_encoded"`
	SampleErrors   int64 `json:"sample_errors" yaml:"sample_errors"`
	SourceErrors   int64 `json:"source_errors" yaml:"source_errors"`

	// Events
	EventsEmitted int64            `json:"events_emitted" yaml:"events_emitted"`
	SpansEncoded  int64            `json:"spans_encoded" yaml:"spans_encoded"`
	Outcomes      map[string]int64 `json:"outcomes" yaml:"outcomes"`

	// Adaptive state
	AdaptiveResets int64 `json:"adaptive_resets" yaml:"adaptive_resets"`

	// Training
	TrainingsStarted   int64 `json:"trainings_started" yaml:"trainings_started"`
	TrainingsCompleted int64 `json:"trainings_completed" yaml:"trainings_completed"`
	TrainingsFailed    int64 `json:"trainings_failed" yaml:"trainings_failed"`

	// Dimensions (informational, set at construction)
	RunID     string `json:"run_id" yaml:"run_id"`
	Corpus    string `json:"corpus" yaml:"corpus"`
	Generator string `json:"generator" yaml:"generator"`
}

// Collector accumulates metrics during a single traversal.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	samplesRead    int64
	samplesEncoded int64
	sampleErrors   int64
	sourceErrors   int64

	eventsEmitted int64
	spansEncoded  int64
	outcomes      map[string]int64

	adaptiveResets int64

	trainingsStarted   int64
	trainingsCompleted int64
	trainingsFailed    int64

	// Dimensions
	runID     string
	corpus    string
	generator string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(runID, corpus, generator string) *Collector {
	return &Collector{
		outcomes:  make(map[string]int64),
		runID:     runID,
		corpus:    corpus,
		generator: generator,
	}
}

// --- Samples ---

// IncSamplesRead records a sample pulled from the source.
func (c *Collector) IncSamplesRead() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.samplesRead++
	c.mu.Unlock()
}

// IncSampleErrors records a sample that failed event building.
func (c *Collector) IncSampleErrors() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.sampleErrors++
	c.mu.Unlock()
}

// IncSourceErrors records a failed source read.
func (c *Collector) IncSourceErrors() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.sourceErrors++
	c.mu.Unlock()
}

// RecordSample records a successfully encoded sample: its span count and
// the outcome label of every emitted event.
func (c *Collector) RecordSample(spans int, outcomes []string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.samplesEncoded++
	c.spansEncoded += int64(spans)
	c.eventsEmitted += int64(len(outcomes))
	for _, o := range outcomes {
		c.outcomes[o]++
	}
	c.mu.Unlock()
}

// --- Adaptive state ---

// IncAdaptiveResets records a clear of the generator's adaptive data.
func (c *Collector) IncAdaptiveResets() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.adaptiveResets++
	c.mu.Unlock()
}

// --- Training ---

// IncTrainingStarted records a trainer invocation.
func (c *Collector) IncTrainingStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.trainingsStarted++
	c.mu.Unlock()
}

// IncTrainingCompleted records a trainer returning a model.
func (c *Collector) IncTrainingCompleted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.trainingsCompleted++
	c.mu.Unlock()
}

// IncTrainingFailed records a failed training, including configuration
// validation failures.
func (c *Collector) IncTrainingFailed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.trainingsFailed++
	c.mu.Unlock()
}

// Snapshot returns an immutable copy of all counters.
// Returns a zero Snapshot if the receiver is nil.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{Outcomes: map[string]int64{}}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	outcomes := make(map[string]int64, len(c.outcomes))
	for k, v := range c.outcomes {
		outcomes[k] = v
	}

	return Snapshot{
		SamplesRead:        c.samplesRead,
		SamplesEncoded:     c.samplesEncoded,
		SampleErrors:       c.sampleErrors,
		SourceErrors:       c.sourceErrors,
		EventsEmitted:      c.eventsEmitted,
		SpansEncoded:       c.spansEncoded,
		Outcomes:           outcomes,
		AdaptiveResets:     c.adaptiveResets,
		TrainingsStarted:   c.trainingsStarted,
		TrainingsCompleted: c.trainingsCompleted,
		TrainingsFailed:    c.trainingsFailed,
		RunID:              c.runID,
		Corpus:             c.corpus,
		Generator:          c.generator,
	}
}
