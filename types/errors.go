package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrInvalidSpan indicates span bounds inconsistent with the sentence.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrSampleEncoding indicates a structural mismatch while building the
	// events of one sample.
	ErrSampleEncoding = errors.New("sample encoding failed")

	// ErrSourceRead indicates the sample source failed to produce a sample.
	ErrSourceRead = errors.New("sample source read failed")

	// ErrInvalidTrainingConfiguration indicates a training parameter group
	// failed validation.
	ErrInvalidTrainingConfiguration = errors.New("invalid training configuration")
)

// InvalidSpanError reports a span whose bounds do not fit its sentence.
type InvalidSpanError struct {
	// Span is the offending span.
	Span Span
	// Length is the token count of the sentence the span was checked against.
	Length int
	// Reason describes the violated bound.
	Reason string
}

func (e *InvalidSpanError) Error() string {
	return fmt.Sprintf("%v %s in sentence of length %d: %s", ErrInvalidSpan, e.Span, e.Length, e.Reason)
}

// Is reports whether the error matches the target sentinel.
func (e *InvalidSpanError) Is(target error) bool {
	return target == ErrInvalidSpan
}

// EncodingStage names the step of event building that failed.
type EncodingStage string

// Encoding stages reported by SampleEncodingError.
const (
	StageValidate EncodingStage = "validate"
	StageOutcomes EncodingStage = "outcomes"
	StageContext  EncodingStage = "context"
)

// SampleEncodingError reports a sample that could not be turned into events.
// The whole sample is discarded; no partial events are emitted.
type SampleEncodingError struct {
	// Sample is the zero-based position of the sample in its stream, or -1
	// when the builder is used outside a stream.
	Sample int
	// Stage is the step that failed.
	Stage EncodingStage
	// Err is the underlying error.
	Err error
}

func (e *SampleEncodingError) Error() string {
	if e.Sample < 0 {
		return fmt.Sprintf("%v (%s): %v", ErrSampleEncoding, e.Stage, e.Err)
	}
	return fmt.Sprintf("%v (sample %d, %s): %v", ErrSampleEncoding, e.Sample, e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *SampleEncodingError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *SampleEncodingError) Is(target error) bool {
	return target == ErrSampleEncoding
}

// SourceReadError wraps a failure of a sample source.
// Sources return it; the event stream passes it through untouched.
type SourceReadError struct {
	// Op is the source operation that failed (e.g. "read", "decode", "open").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSourceRead, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *SourceReadError) Is(target error) bool {
	return target == ErrSourceRead
}

// NewSourceReadError wraps err as a source failure. Returns nil if err is nil.
func NewSourceReadError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceReadError{Op: op, Err: err}
}

// InvalidTrainingConfigurationError reports a training parameter group that
// failed validation. Raised before any training computation starts.
type InvalidTrainingConfigurationError struct {
	// Group is the parameter group (sub-model) name; empty for top-level.
	Group string
	// Key is the offending setting, if any.
	Key string
	// Reason describes the problem.
	Reason string
}

func (e *InvalidTrainingConfigurationError) Error() string {
	group := e.Group
	if group == "" {
		group = "default"
	}
	if e.Key == "" {
		return fmt.Sprintf("%v: %s parameters: %s", ErrInvalidTrainingConfiguration, group, e.Reason)
	}
	return fmt.Sprintf("%v: %s parameters: %s: %s", ErrInvalidTrainingConfiguration, group, e.Key, e.Reason)
}

// Is reports whether the error matches the target sentinel.
func (e *InvalidTrainingConfigurationError) Is(target error) bool {
	return target == ErrInvalidTrainingConfiguration
}

// IsEncodingError returns true if the error came from event building
// (span validation or sample encoding).
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrSampleEncoding) || errors.Is(err, ErrInvalidSpan)
}

// IsSourceError returns true if the error came from the sample source.
func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceRead)
}

// IsConfigurationError returns true if the error came from training
// parameter validation.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidTrainingConfiguration)
}
