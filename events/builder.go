// Package events turns annotated samples into training events.
//
// A Builder encodes one sample: it labels every token with the
// start/continue/other scheme and asks a context generator for the token's
// features, feeding it the true labels of the preceding tokens. A Stream
// pulls samples from a source and flattens their events into one lazy
// sequence for a trainer.
package events

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pithecene-io/tagstream/featuregen"
	"github.com/pithecene-io/tagstream/outcome"
	"github.com/pithecene-io/tagstream/types"
)

// Builder produces the events of one sample at a time.
// A Builder owns its generator's adaptive state and is not safe for
// concurrent use.
type Builder struct {
	generator featuregen.ContextGenerator
	typ       string
}

// NewBuilder creates a builder over generator. Untyped spans are labeled
// with overrideType, or outcome.DefaultType when it is empty.
func NewBuilder(generator featuregen.ContextGenerator, overrideType string) *Builder {
	if overrideType == "" {
		overrideType = outcome.DefaultType
	}
	return &Builder{generator: generator, typ: overrideType}
}

// Generator returns the context generator.
func (b *Builder) Generator() featuregen.ContextGenerator {
	return b.generator
}

// Type returns the type applied to untyped spans.
func (b *Builder) Type() string {
	return b.typ
}

// Build returns one event per token of sample. On failure no events are
// returned and the error is a *types.SampleEncodingError.
func (b *Builder) Build(sample *types.Sample) ([]types.Event, error) {
	return b.build(sample, -1)
}

func (b *Builder) build(sample *types.Sample, index int) (events []types.Event, err error) {
	fail := func(stage types.EncodingStage, cause error) ([]types.Event, error) {
		return nil, &types.SampleEncodingError{Sample: index, Stage: stage, Err: cause}
	}
	if sample == nil {
		return fail(types.StageValidate, errors.New("nil sample"))
	}

	if sample.ClearAdaptiveData {
		b.generator.ClearAdaptiveData()
	}

	if err := sample.Validate(); err != nil {
		return fail(types.StageValidate, err)
	}

	outcomes, err := outcome.Encode(sample.Spans, b.typ, len(sample.Tokens))
	if err != nil {
		return fail(types.StageOutcomes, err)
	}
	if len(outcomes) != len(sample.Tokens) {
		return fail(types.StageOutcomes, fmt.Errorf("%d outcomes for %d tokens", len(outcomes), len(sample.Tokens)))
	}

	if setter, ok := b.generator.(featuregen.AdditionalContextSetter); ok {
		setter.SetCurrentContext(sample.AdditionalContext)
	}

	// A generator that panics on a token breaks its contract; the sample is
	// discarded rather than taking the stream down.
	defer func() {
		if r := recover(); r != nil {
			events, err = fail(types.StageContext, fmt.Errorf("context generator: %v", r))
		}
	}()

	events = make([]types.Event, len(sample.Tokens))
	for i := range sample.Tokens {
		features := b.generator.Context(i, sample.Tokens, slices.Clip(outcomes[:i]), sample.AdditionalContext)
		events[i] = types.Event{Outcome: outcomes[i], Context: features}
	}

	b.generator.UpdateAdaptiveData(sample.Tokens, outcomes)
	return events, nil
}
