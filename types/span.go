// Package types defines the core data types of the event-generation pipeline:
// annotated samples, labeled spans, and training events.
//
//nolint:revive // types is a common Go package naming convention
package types

import "fmt"

// Span is a half-open token interval [Start, End) with an optional type tag.
// Spans are immutable once constructed; callers copy rather than mutate.
type Span struct {
	// Start is the index of the first covered token.
	Start int `msgpack:"start" json:"start"`
	// End is the index one past the last covered token.
	End int `msgpack:"end" json:"end"`
	// Type is the entity/phrase type. Empty means untyped; the encoder then
	// falls back to the stream's override or default type.
	Type string `msgpack:"type,omitempty" json:"type,omitempty"`
}

// NewSpan creates a typed span. It does not validate bounds; see Validate.
func NewSpan(start, end int, typ string) Span {
	return Span{Start: start, End: end, Type: typ}
}

// Length returns the number of covered tokens.
func (s Span) Length() int {
	return s.End - s.Start
}

// HasType reports whether the span carries its own type tag.
func (s Span) HasType() bool {
	return s.Type != ""
}

// Contains reports whether token index i is covered by the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Overlaps reports whether the two spans cover at least one common token.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Validate checks 0 <= Start < End <= length.
// Returns an *InvalidSpanError describing the first violated bound.
func (s Span) Validate(length int) error {
	switch {
	case s.Start < 0:
		return &InvalidSpanError{Span: s, Length: length, Reason: "start is negative"}
	case s.Start >= s.End:
		return &InvalidSpanError{Span: s, Length: length, Reason: "start must be less than end"}
	case s.End > length:
		return &InvalidSpanError{Span: s, Length: length, Reason: "end exceeds sentence length"}
	}
	return nil
}

func (s Span) String() string {
	if s.Type == "" {
		return fmt.Sprintf("[%d..%d)", s.Start, s.End)
	}
	return fmt.Sprintf("[%d..%d) %s", s.Start, s.End, s.Type)
}
