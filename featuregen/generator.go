// Package featuregen produces per-token feature contexts for training events.
//
// A ContextGenerator turns (index, tokens, prior outcomes) into a feature
// set. Generators are composed from FeatureGenerators, each contributing a
// family of features. Both may hold adaptive state that carries information
// from one sample to later samples of the same corpus pass; that state is
// owned by exactly one generator instance and discarded on ClearAdaptiveData.
//
// Generators are not safe for concurrent use. One event stream owns one
// generator for its whole traversal.
package featuregen

// ContextGenerator produces the feature context of one token.
//
// Context must be called once per token in strictly increasing index order
// within a sample. previousOutcomes holds the true labels of tokens
// 0..index-1 during training. After the last token of a sample the caller
// invokes UpdateAdaptiveData exactly once with the full token and outcome
// sequences.
type ContextGenerator interface {
	// Context returns the features of tokens[index].
	Context(index int, tokens []string, previousOutcomes []string, additionalContext [][]string) []string

	// UpdateAdaptiveData records a finished sample for use by later samples.
	UpdateAdaptiveData(tokens []string, outcomes []string)

	// ClearAdaptiveData discards all cross-sample memory.
	ClearAdaptiveData()

	// AddFeatureGenerator appends a feature generator to the feature set.
	AddFeatureGenerator(g FeatureGenerator)
}

// FeatureGenerator contributes one family of features for a token.
type FeatureGenerator interface {
	// CreateFeatures appends the features of tokens[index] to features and
	// returns the extended slice.
	CreateFeatures(features []string, tokens []string, index int, previousOutcomes []string) []string

	// UpdateAdaptiveData records a finished sample.
	UpdateAdaptiveData(tokens []string, outcomes []string)

	// ClearAdaptiveData discards cross-sample memory.
	ClearAdaptiveData()
}

// AdditionalContextSetter is implemented by generators that consume the
// per-sample auxiliary context array. The event builder pushes each
// sample's context before generating its events.
type AdditionalContextSetter interface {
	SetCurrentContext(raw [][]string)
}

// stateless provides no-op adaptive methods for generators without memory.
type stateless struct{}

func (stateless) UpdateAdaptiveData([]string, []string) {}
func (stateless) ClearAdaptiveData()                    {}

// Aggregate combines feature generators, applied in order.
type Aggregate []FeatureGenerator

// CreateFeatures runs every generator in order.
func (a Aggregate) CreateFeatures(features []string, tokens []string, index int, previousOutcomes []string) []string {
	for _, g := range a {
		features = g.CreateFeatures(features, tokens, index, previousOutcomes)
	}
	return features
}

// UpdateAdaptiveData forwards to every generator.
func (a Aggregate) UpdateAdaptiveData(tokens []string, outcomes []string) {
	for _, g := range a {
		g.UpdateAdaptiveData(tokens, outcomes)
	}
}

// ClearAdaptiveData forwards to every generator.
func (a Aggregate) ClearAdaptiveData() {
	for _, g := range a {
		g.ClearAdaptiveData()
	}
}

// Verify interface implementations.
var (
	_ FeatureGenerator = Aggregate(nil)
	_ FeatureGenerator = (*TokenFeatureGenerator)(nil)
	_ FeatureGenerator = (*TokenClassFeatureGenerator)(nil)
	_ FeatureGenerator = (*BigramFeatureGenerator)(nil)
	_ FeatureGenerator = (*SentenceFeatureGenerator)(nil)
	_ FeatureGenerator = (*OutcomePriorFeatureGenerator)(nil)
	_ FeatureGenerator = (*PreviousMapFeatureGenerator)(nil)
	_ FeatureGenerator = (*WindowFeatureGenerator)(nil)
	_ FeatureGenerator = (*AdditionalContextFeatureGenerator)(nil)
)
