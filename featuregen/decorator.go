package featuregen

// WindowDecorator wraps a ContextGenerator and adds features drawn from a
// window of the per-sample auxiliary context array. For token i it emits
// one feature per slot per offset d in [-before, +after] with i+d inside
// the sentence, tagged with the offset ("ac0=x" at d=0, "p3ac0=x" three
// tokens back, "n2ac0=x" two tokens ahead).
//
// SetCurrentContext must be called before the contexts of each sample are
// generated; a nil context contributes nothing.
type WindowDecorator struct {
	base       ContextGenerator
	additional *AdditionalContextFeatureGenerator
	window     *WindowFeatureGenerator
}

// DefaultAdditionalWindow is the window radius used by event streams.
const DefaultAdditionalWindow = 8

// NewWindowDecorator wraps base with an auxiliary-context window.
func NewWindowDecorator(base ContextGenerator, before, after int) *WindowDecorator {
	additional := NewAdditionalContextFeatureGenerator()
	return &WindowDecorator{
		base:       base,
		additional: additional,
		window:     NewWindowFeatureGenerator(additional, before, after),
	}
}

// Base returns the wrapped generator.
func (d *WindowDecorator) Base() ContextGenerator {
	return d.base
}

// SetCurrentContext sets the auxiliary array of the next sample.
func (d *WindowDecorator) SetCurrentContext(raw [][]string) {
	d.additional.SetCurrentContext(raw)
}

// Context returns the base features followed by the windowed auxiliary
// features.
func (d *WindowDecorator) Context(index int, tokens []string, previousOutcomes []string, additionalContext [][]string) []string {
	features := d.base.Context(index, tokens, previousOutcomes, additionalContext)
	return d.window.CreateFeatures(features, tokens, index, previousOutcomes)
}

// UpdateAdaptiveData forwards to the wrapped generator.
func (d *WindowDecorator) UpdateAdaptiveData(tokens []string, outcomes []string) {
	d.base.UpdateAdaptiveData(tokens, outcomes)
	d.window.UpdateAdaptiveData(tokens, outcomes)
}

// ClearAdaptiveData forwards to the wrapped generator.
func (d *WindowDecorator) ClearAdaptiveData() {
	d.base.ClearAdaptiveData()
	d.window.ClearAdaptiveData()
}

// AddFeatureGenerator adds fg to the wrapped generator.
func (d *WindowDecorator) AddFeatureGenerator(fg FeatureGenerator) {
	d.base.AddFeatureGenerator(fg)
}

var (
	_ ContextGenerator        = (*WindowDecorator)(nil)
	_ AdditionalContextSetter = (*WindowDecorator)(nil)
)
