package types

import "fmt"

// Sample is one annotated sentence as produced by a sample source.
// It is read-only from the pipeline's perspective.
type Sample struct {
	// Tokens is the ordered token sequence.
	Tokens []string `msgpack:"tokens" json:"tokens"`
	// Spans are the labeled token intervals. Must not overlap.
	Spans []Span `msgpack:"spans" json:"spans"`
	// AdditionalContext is an optional auxiliary feature array indexed
	// [token][slot]. When present it has exactly one row per token.
	AdditionalContext [][]string `msgpack:"additional_context,omitempty" json:"additional_context,omitempty"`
	// ClearAdaptiveData marks a corpus boundary (e.g. a new document): any
	// cross-sample adaptive state must be discarded before this sample.
	ClearAdaptiveData bool `msgpack:"clear_adaptive_data,omitempty" json:"clear_adaptive_data,omitempty"`
}

// NewSample creates a sample over tokens with the given spans.
func NewSample(tokens []string, spans []Span, clearAdaptiveData bool) *Sample {
	return &Sample{
		Tokens:            tokens,
		Spans:             spans,
		ClearAdaptiveData: clearAdaptiveData,
	}
}

// Len returns the token count.
func (s *Sample) Len() int {
	return len(s.Tokens)
}

// Validate checks structural consistency: span bounds, span overlap, and
// the additional-context row count. Span problems are reported as
// *InvalidSpanError.
func (s *Sample) Validate() error {
	n := len(s.Tokens)
	for i, span := range s.Spans {
		if err := span.Validate(n); err != nil {
			return err
		}
		for _, prev := range s.Spans[:i] {
			if span.Overlaps(prev) {
				return &InvalidSpanError{
					Span:   span,
					Length: n,
					Reason: fmt.Sprintf("overlaps span %s", prev),
				}
			}
		}
	}
	if s.AdditionalContext != nil && len(s.AdditionalContext) != n {
		return fmt.Errorf("additional context has %d rows, want %d", len(s.AdditionalContext), n)
	}
	return nil
}
