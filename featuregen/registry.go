package featuregen

import (
	"fmt"
	"sort"
)

// Factory creates a fresh context generator. Every call must return an
// instance with its own adaptive state.
type Factory func() ContextGenerator

// registry maps feature-set names to factories (explicit, no reflection).
var registry = map[string]Factory{
	// default: lexical windows, prior, previous-map, bigrams, sentence begin
	"default": func() ContextGenerator { return NewDefaultContextGenerator() },
	// tokens: token window only, for small corpora and debugging
	"tokens": func() ContextGenerator {
		return NewContextGenerator(
			NewWindowFeatureGenerator(&TokenFeatureGenerator{}, DefaultWindow, DefaultWindow),
			&OutcomePriorFeatureGenerator{},
		)
	},
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	if name == "" {
		name = "default"
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown feature set %q (available: %v)", name, Names())
	}
	return f, nil
}

// Names returns the registered feature-set names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
