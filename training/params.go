// Package training holds the trainer contract and its parameters.
//
// Parameters are grouped: top-level defaults plus optional per-stage
// overrides for multi-model training (a parser's build, check, attach,
// tagger and chunker models). Every group is validated before any training
// computation starts.
package training

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/tagstream/envexpand"
	"github.com/pithecene-io/tagstream/types"
)

// Algorithm names a training algorithm.
type Algorithm string

// Supported algorithms.
const (
	AlgorithmMaxent             Algorithm = "MAXENT"
	AlgorithmPerceptron         Algorithm = "PERCEPTRON"
	AlgorithmPerceptronSequence Algorithm = "PERCEPTRON_SEQUENCE"
)

// DataIndexer names the event indexing strategy.
type DataIndexer string

// Supported data indexers.
const (
	IndexerOnePass DataIndexer = "OnePass"
	IndexerTwoPass DataIndexer = "TwoPass"
)

// Defaults applied when no parameters file is given.
const (
	DefaultIterations = 100
	DefaultCutoff     = 5
	DefaultThreads    = 1
)

// Setting keys reported by validation errors.
const (
	KeyAlgorithm   = "Algorithm"
	KeyIterations  = "Iterations"
	KeyCutoff      = "Cutoff"
	KeyThreads     = "Threads"
	KeyDataIndexer = "DataIndexer"
)

// Settings is one parameter group.
type Settings struct {
	Algorithm   Algorithm   `yaml:"algorithm" json:"algorithm"`
	Iterations  int         `yaml:"iterations" json:"iterations"`
	Cutoff      int         `yaml:"cutoff" json:"cutoff"`
	Threads     int         `yaml:"threads" json:"threads"`
	DataIndexer DataIndexer `yaml:"data_indexer" json:"data_indexer"`
}

// Validate checks the group. group names it in the error; empty means the
// top-level defaults.
func (s Settings) Validate(group string) error {
	invalid := func(key, reason string) error {
		return &types.InvalidTrainingConfigurationError{Group: group, Key: key, Reason: reason}
	}
	switch s.Algorithm {
	case AlgorithmMaxent, AlgorithmPerceptron, AlgorithmPerceptronSequence:
	default:
		return invalid(KeyAlgorithm, fmt.Sprintf("unknown algorithm %q", s.Algorithm))
	}
	if s.Iterations <= 0 {
		return invalid(KeyIterations, "must be a positive integer")
	}
	if s.Cutoff < 0 {
		return invalid(KeyCutoff, "must not be negative")
	}
	if s.Threads <= 0 {
		return invalid(KeyThreads, "must be a positive integer")
	}
	switch s.DataIndexer {
	case IndexerOnePass, IndexerTwoPass:
	default:
		return invalid(KeyDataIndexer, fmt.Sprintf("unknown data indexer %q", s.DataIndexer))
	}
	return nil
}

// Parameters is the full set of parameter groups.
type Parameters struct {
	// Defaults apply to every stage without its own group.
	Defaults Settings `yaml:"defaults" json:"defaults"`
	// Stages holds effective per-stage settings, already merged over
	// Defaults.
	Stages map[string]Settings `yaml:"stages,omitempty" json:"stages,omitempty"`
}

// DefaultParameters returns MAXENT parameters with the given iteration
// count and cutoff.
func DefaultParameters(iterations, cutoff int) *Parameters {
	return &Parameters{
		Defaults: Settings{
			Algorithm:   AlgorithmMaxent,
			Iterations:  iterations,
			Cutoff:      cutoff,
			Threads:     DefaultThreads,
			DataIndexer: IndexerTwoPass,
		},
	}
}

// Settings returns the effective settings of stage, falling back to the
// defaults when the stage has no group of its own.
func (p *Parameters) Settings(stage string) Settings {
	if s, ok := p.Stages[stage]; ok {
		return s
	}
	return p.Defaults
}

// StageNames returns the names of stages with their own group, sorted.
func (p *Parameters) StageNames() []string {
	names := make([]string, 0, len(p.Stages))
	for name := range p.Stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the defaults and every stage group.
func (p *Parameters) Validate() error {
	if err := p.Defaults.Validate(""); err != nil {
		return err
	}
	return p.ValidateStages(p.StageNames()...)
}

// ValidateStages checks the effective settings of the named stages,
// including stages that fall back to the defaults.
func (p *Parameters) ValidateStages(stages ...string) error {
	for _, stage := range stages {
		if err := p.Settings(stage).Validate(stage); err != nil {
			return err
		}
	}
	return nil
}

// rawSettings is the file form of a group; unset fields inherit.
type rawSettings struct {
	Algorithm   *Algorithm   `yaml:"algorithm"`
	Iterations  *int         `yaml:"iterations"`
	Cutoff      *int         `yaml:"cutoff"`
	Threads     *int         `yaml:"threads"`
	DataIndexer *DataIndexer `yaml:"data_indexer"`
}

type rawParameters struct {
	Algorithm   *Algorithm             `yaml:"algorithm"`
	Iterations  *int                   `yaml:"iterations"`
	Cutoff      *int                   `yaml:"cutoff"`
	Threads     *int                   `yaml:"threads"`
	DataIndexer *DataIndexer           `yaml:"data_indexer"`
	Stages      map[string]rawSettings `yaml:"stages"`
}

func (r rawParameters) top() rawSettings {
	return rawSettings{
		Algorithm:   r.Algorithm,
		Iterations:  r.Iterations,
		Cutoff:      r.Cutoff,
		Threads:     r.Threads,
		DataIndexer: r.DataIndexer,
	}
}

func (r rawSettings) over(base Settings) Settings {
	if r.Algorithm != nil {
		base.Algorithm = *r.Algorithm
	}
	if r.Iterations != nil {
		base.Iterations = *r.Iterations
	}
	if r.Cutoff != nil {
		base.Cutoff = *r.Cutoff
	}
	if r.Threads != nil {
		base.Threads = *r.Threads
	}
	if r.DataIndexer != nil {
		base.DataIndexer = *r.DataIndexer
	}
	return base
}

// ParseParameters parses a YAML parameters document:
//
//	algorithm: MAXENT
//	iterations: 100
//	cutoff: 5
//	stages:
//	  tagger:
//	    algorithm: PERCEPTRON
//
// Top-level settings override DefaultParameters(DefaultIterations,
// DefaultCutoff); each stage overrides the top level. The result is not
// validated; call Validate.
func ParseParameters(data []byte) (*Parameters, error) {
	var raw rawParameters
	if err := yaml.Unmarshal([]byte(envexpand.Expand(string(data))), &raw); err != nil {
		return nil, err
	}

	p := DefaultParameters(DefaultIterations, DefaultCutoff)
	p.Defaults = raw.top().over(p.Defaults)
	if len(raw.Stages) > 0 {
		p.Stages = make(map[string]Settings, len(raw.Stages))
		for name, stage := range raw.Stages {
			p.Stages[name] = stage.over(p.Defaults)
		}
	}
	return p, nil
}

// LoadParameters reads and parses a parameters file.
func LoadParameters(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("parameters file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read parameters file %q: %w", path, err)
	}
	p, err := ParseParameters(data)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return p, nil
}
