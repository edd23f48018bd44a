package featuregen

// PreviousMapFeatureGenerator remembers the last outcome each token text
// received in earlier samples and emits it as "pd=<outcome>".
// This is the adaptive feature that lets a later mention of a name profit
// from an earlier, easier one in the same document.
type PreviousMapFeatureGenerator struct {
	previous map[string]string
}

// NewPreviousMapFeatureGenerator creates a generator with empty memory.
func NewPreviousMapFeatureGenerator() *PreviousMapFeatureGenerator {
	return &PreviousMapFeatureGenerator{previous: make(map[string]string)}
}

// CreateFeatures appends "pd=<outcome>" when the token was seen before.
func (g *PreviousMapFeatureGenerator) CreateFeatures(features []string, tokens []string, index int, _ []string) []string {
	if outcome, ok := g.previous[tokens[index]]; ok {
		features = append(features, "pd="+outcome)
	}
	return features
}

// UpdateAdaptiveData records the outcome of every token of the sample.
// Later tokens overwrite earlier ones with the same text.
func (g *PreviousMapFeatureGenerator) UpdateAdaptiveData(tokens []string, outcomes []string) {
	for i := 0; i < len(tokens) && i < len(outcomes); i++ {
		g.previous[tokens[i]] = outcomes[i]
	}
}

// ClearAdaptiveData forgets all recorded outcomes.
func (g *PreviousMapFeatureGenerator) ClearAdaptiveData() {
	clear(g.previous)
}

// Len returns the number of remembered token texts.
func (g *PreviousMapFeatureGenerator) Len() int {
	return len(g.previous)
}
