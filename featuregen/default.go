package featuregen

import "github.com/pithecene-io/tagstream/outcome"

// DefaultWindow is the token window of the default lexical features.
const DefaultWindow = 2

// DefaultContextGenerator produces baseline lexical and positional features
// from a list of feature generators, followed by features of the two prior
// outcomes:
//
//	po=<prev>  pow=<prev>,<token>  powf=<prev>,<class>  ppo=<prev-prev>
//
// Prior outcomes default to "other" at the start of a sentence.
type DefaultContextGenerator struct {
	generators Aggregate
}

// NewDefaultContextGenerator creates the default feature set: token and
// token-class windows of two, the outcome prior, the previous-map adaptive
// feature, bigrams and the sentence-begin marker. extra generators are
// appended after the defaults.
func NewDefaultContextGenerator(extra ...FeatureGenerator) *DefaultContextGenerator {
	generators := Aggregate{
		NewWindowFeatureGenerator(&TokenFeatureGenerator{}, DefaultWindow, DefaultWindow),
		NewWindowFeatureGenerator(&TokenClassFeatureGenerator{}, DefaultWindow, DefaultWindow),
		&OutcomePriorFeatureGenerator{},
		NewPreviousMapFeatureGenerator(),
		&BigramFeatureGenerator{},
		&SentenceFeatureGenerator{Begin: true},
	}
	return &DefaultContextGenerator{generators: append(generators, extra...)}
}

// NewContextGenerator creates a generator with exactly the given feature
// generators plus the prior-outcome features.
func NewContextGenerator(generators ...FeatureGenerator) *DefaultContextGenerator {
	return &DefaultContextGenerator{generators: append(Aggregate(nil), generators...)}
}

// Context returns the features of tokens[index].
func (g *DefaultContextGenerator) Context(index int, tokens []string, previousOutcomes []string, _ [][]string) []string {
	features := g.generators.CreateFeatures(make([]string, 0, 32), tokens, index, previousOutcomes)

	po, ppo := outcome.Other, outcome.Other
	if index > 0 && index-1 < len(previousOutcomes) {
		po = previousOutcomes[index-1]
	}
	if index > 1 && index-2 < len(previousOutcomes) {
		ppo = previousOutcomes[index-2]
	}
	token := tokens[index]
	return append(features,
		"po="+po,
		"pow="+po+","+token,
		"powf="+po+","+TokenClass(token),
		"ppo="+ppo,
	)
}

// UpdateAdaptiveData forwards the finished sample to every feature generator.
func (g *DefaultContextGenerator) UpdateAdaptiveData(tokens []string, outcomes []string) {
	g.generators.UpdateAdaptiveData(tokens, outcomes)
}

// ClearAdaptiveData clears every feature generator.
func (g *DefaultContextGenerator) ClearAdaptiveData() {
	g.generators.ClearAdaptiveData()
}

// AddFeatureGenerator appends fg to the feature set.
func (g *DefaultContextGenerator) AddFeatureGenerator(fg FeatureGenerator) {
	g.generators = append(g.generators, fg)
}

var _ ContextGenerator = (*DefaultContextGenerator)(nil)
