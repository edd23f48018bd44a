package featuregen

import "strings"

// TokenFeatureGenerator emits the token itself: "w=<token>".
type TokenFeatureGenerator struct {
	stateless
	// KeepCase disables lowercasing of the token.
	KeepCase bool
}

// CreateFeatures appends "w=<token>".
func (g *TokenFeatureGenerator) CreateFeatures(features []string, tokens []string, index int, _ []string) []string {
	token := tokens[index]
	if !g.KeepCase {
		token = strings.ToLower(token)
	}
	return append(features, "w="+token)
}

// TokenClassFeatureGenerator emits the orthographic class of the token:
// "wc=<class>" and, unless ClassOnly is set, "w&c=<token>,<class>".
type TokenClassFeatureGenerator struct {
	stateless
	// ClassOnly suppresses the combined word-and-class feature.
	ClassOnly bool
}

// CreateFeatures appends the class features.
func (g *TokenClassFeatureGenerator) CreateFeatures(features []string, tokens []string, index int, _ []string) []string {
	class := TokenClass(tokens[index])
	features = append(features, "wc="+class)
	if !g.ClassOnly {
		features = append(features, "w&c="+strings.ToLower(tokens[index])+","+class)
	}
	return features
}

// BigramFeatureGenerator emits word and class bigrams with the neighbours.
type BigramFeatureGenerator struct {
	stateless
}

// CreateFeatures appends "pw,w=", "pwc,wc=", "w,nw=" and "wc,nc=" features
// where the neighbour exists.
func (g *BigramFeatureGenerator) CreateFeatures(features []string, tokens []string, index int, _ []string) []string {
	wc := TokenClass(tokens[index])
	if index > 0 {
		features = append(features,
			"pw,w="+tokens[index-1]+","+tokens[index],
			"pwc,wc="+TokenClass(tokens[index-1])+","+wc,
		)
	}
	if index+1 < len(tokens) {
		features = append(features,
			"w,nw="+tokens[index]+","+tokens[index+1],
			"wc,nc="+wc+","+TokenClass(tokens[index+1]),
		)
	}
	return features
}

// SentenceFeatureGenerator marks the sentence boundaries.
type SentenceFeatureGenerator struct {
	stateless
	// Begin emits "S=begin" on the first token.
	Begin bool
	// End emits "S=end" on the last token.
	End bool
}

// CreateFeatures appends the boundary features that apply.
func (g *SentenceFeatureGenerator) CreateFeatures(features []string, tokens []string, index int, _ []string) []string {
	if g.Begin && index == 0 {
		features = append(features, "S=begin")
	}
	if g.End && index == len(tokens)-1 {
		features = append(features, "S=end")
	}
	return features
}

// OutcomePriorFeatureGenerator emits a constant feature so the trainer can
// learn the outcome prior.
type OutcomePriorFeatureGenerator struct {
	stateless
}

// PriorFeature is the constant feature emitted for every token.
const PriorFeature = "def"

// CreateFeatures appends PriorFeature.
func (g *OutcomePriorFeatureGenerator) CreateFeatures(features []string, _ []string, _ int, _ []string) []string {
	return append(features, PriorFeature)
}
