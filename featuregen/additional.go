package featuregen

import "strconv"

// AdditionalContextPrefix prefixes features read from the auxiliary
// per-token context: slot k of a token with value v yields "ac<k>=<v>".
const AdditionalContextPrefix = "ac"

// PreviousDecisionPrefix prefixes the slot built by AdditionalContext.
const PreviousDecisionPrefix = "pd="

// NoDecision is recorded for tokens without a previous decision.
const NoDecision = "null"

// AdditionalContextFeatureGenerator emits the auxiliary context of the
// current sample. The context is replaced per sample via SetCurrentContext;
// with no context set it emits nothing.
type AdditionalContextFeatureGenerator struct {
	stateless
	current [][]string
}

// NewAdditionalContextFeatureGenerator creates a generator with no context.
func NewAdditionalContextFeatureGenerator() *AdditionalContextFeatureGenerator {
	return &AdditionalContextFeatureGenerator{}
}

// SetCurrentContext sets the auxiliary array, indexed [token][slot], for
// the sample about to be processed. nil disables the generator.
func (g *AdditionalContextFeatureGenerator) SetCurrentContext(raw [][]string) {
	g.current = raw
}

// CreateFeatures appends one feature per slot of tokens[index].
// Rows missing from a short context array contribute nothing.
func (g *AdditionalContextFeatureGenerator) CreateFeatures(features []string, _ []string, index int, _ []string) []string {
	if index < 0 || index >= len(g.current) {
		return features
	}
	for slot, value := range g.current[index] {
		features = append(features, AdditionalContextPrefix+strconv.Itoa(slot)+"="+value)
	}
	return features
}

// AdditionalContext builds a one-slot auxiliary context holding
// "pd=<decision>" for each token, where decision is the label a previous
// classification pass assigned to the token text. Tokens missing from
// previous get "pd=null".
func AdditionalContext(tokens []string, previous map[string]string) [][]string {
	ac := make([][]string, len(tokens))
	for i, token := range tokens {
		decision, ok := previous[token]
		if !ok {
			decision = NoDecision
		}
		ac[i] = []string{PreviousDecisionPrefix + decision}
	}
	return ac
}
