package featuregen

import "strconv"

// Offset prefixes used by WindowFeatureGenerator.
const (
	PreviousPrefix = "p"
	NextPrefix     = "n"
)

// WindowFeatureGenerator applies a wrapped generator to the tokens around
// the current one. Features of the current token are emitted unchanged;
// features of the token d positions before (after) are prefixed with
// "p<d>" ("n<d>"), so the same feature at different offsets stays
// distinguishable. Offsets outside the sentence are skipped.
type WindowFeatureGenerator struct {
	generator FeatureGenerator
	before    int
	after     int
}

// NewWindowFeatureGenerator wraps g with a window of before/after tokens.
// Negative sizes are treated as zero.
func NewWindowFeatureGenerator(g FeatureGenerator, before, after int) *WindowFeatureGenerator {
	return &WindowFeatureGenerator{
		generator: g,
		before:    max(before, 0),
		after:     max(after, 0),
	}
}

// Before returns the number of preceding tokens in the window.
func (w *WindowFeatureGenerator) Before() int { return w.before }

// After returns the number of following tokens in the window.
func (w *WindowFeatureGenerator) After() int { return w.after }

// CreateFeatures appends the windowed features of tokens[index].
func (w *WindowFeatureGenerator) CreateFeatures(features []string, tokens []string, index int, previousOutcomes []string) []string {
	features = w.generator.CreateFeatures(features, tokens, index, previousOutcomes)

	var scratch []string
	for d := 1; d <= w.before; d++ {
		if index-d < 0 {
			break
		}
		scratch = w.generator.CreateFeatures(scratch[:0], tokens, index-d, previousOutcomes)
		prefix := PreviousPrefix + strconv.Itoa(d)
		for _, f := range scratch {
			features = append(features, prefix+f)
		}
	}
	for d := 1; d <= w.after; d++ {
		if index+d >= len(tokens) {
			break
		}
		scratch = w.generator.CreateFeatures(scratch[:0], tokens, index+d, previousOutcomes)
		prefix := NextPrefix + strconv.Itoa(d)
		for _, f := range scratch {
			features = append(features, prefix+f)
		}
	}
	return features
}

// UpdateAdaptiveData forwards to the wrapped generator.
func (w *WindowFeatureGenerator) UpdateAdaptiveData(tokens []string, outcomes []string) {
	w.generator.UpdateAdaptiveData(tokens, outcomes)
}

// ClearAdaptiveData forwards to the wrapped generator.
func (w *WindowFeatureGenerator) ClearAdaptiveData() {
	w.generator.ClearAdaptiveData()
}
