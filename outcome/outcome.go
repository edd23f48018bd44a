// Package outcome maps labeled spans to per-token outcome labels in the
// start/continue/other tagging scheme, and back.
package outcome

import (
	"strings"

	"github.com/pithecene-io/tagstream/types"
)

// Label parts of the tagging scheme.
const (
	// Start suffixes the label of the first token of a span.
	Start = "start"
	// Continue suffixes the label of every following token of a span.
	Continue = "continue"
	// Other labels every token not covered by a span.
	Other = "other"
)

// DefaultType is the type used for untyped spans when no override is set.
const DefaultType = "default"

// StartLabel returns "<typ>-start".
func StartLabel(typ string) string {
	return typ + "-" + Start
}

// ContinueLabel returns "<typ>-continue".
func ContinueLabel(typ string) string {
	return typ + "-" + Continue
}

// Encode returns exactly length outcome labels for the given spans.
//
// An untyped span is labeled with overrideType, or DefaultType when
// overrideType is empty. Spans must lie within [0, length) and must not
// overlap; a violation fails fast with *types.InvalidSpanError and no
// labels are returned.
func Encode(spans []types.Span, overrideType string, length int) ([]string, error) {
	if length < 0 {
		length = 0
	}
	outcomes := make([]string, length)
	for i := range outcomes {
		outcomes[i] = Other
	}

	fallback := overrideType
	if fallback == "" {
		fallback = DefaultType
	}

	for _, span := range spans {
		if err := span.Validate(length); err != nil {
			return nil, err
		}
		typ := fallback
		if span.HasType() {
			typ = span.Type
		}
		for i := span.Start; i < span.End; i++ {
			if outcomes[i] != Other {
				return nil, &types.InvalidSpanError{
					Span:   span,
					Length: length,
					Reason: "overlaps another span",
				}
			}
		}
		outcomes[span.Start] = StartLabel(typ)
		for i := span.Start + 1; i < span.End; i++ {
			outcomes[i] = ContinueLabel(typ)
		}
	}
	return outcomes, nil
}

// Split separates a label into its type and scheme part.
// "PERSON-start" yields ("PERSON", "start"); "other" yields ("", "other").
// ok is false for labels outside the scheme.
func Split(label string) (typ, part string, ok bool) {
	if label == Other {
		return "", Other, true
	}
	idx := strings.LastIndexByte(label, '-')
	if idx <= 0 {
		return "", "", false
	}
	typ, part = label[:idx], label[idx+1:]
	if part != Start && part != Continue {
		return "", "", false
	}
	return typ, part, true
}

// Decode reconstructs spans from an outcome sequence.
//
// A span opens at every "-start" label and extends over the following
// "-continue" labels of the same type. A "-continue" label that does not
// follow a span of its type is ignored, matching how a sequence model's
// invalid transitions are discarded. Labels outside the scheme are treated
// as "other".
func Decode(outcomes []string) []types.Span {
	var spans []types.Span
	start := -1
	current := ""

	closeSpan := func(end int) {
		if start >= 0 {
			spans = append(spans, types.NewSpan(start, end, current))
		}
		start = -1
		current = ""
	}

	for i, label := range outcomes {
		typ, part, ok := Split(label)
		switch {
		case ok && part == Start:
			closeSpan(i)
			start = i
			current = typ
		case ok && part == Continue && start >= 0 && typ == current:
			// extends the open span
		default:
			closeSpan(i)
		}
	}
	closeSpan(len(outcomes))
	return spans
}
