package training

import (
	"context"
	"sort"

	"github.com/pithecene-io/tagstream/types"
)

// Index is the indexed form of an event sequence: outcome and predicate
// counts with predicates below the cutoff removed. It is what an optimizer
// would be fed, and what the tool reports for a dry run.
type Index struct {
	Events     int            `json:"events" yaml:"events"`
	Outcomes   map[string]int `json:"outcomes" yaml:"outcomes"`
	Predicates map[string]int `json:"predicates" yaml:"predicates"`
	Dropped    int            `json:"dropped" yaml:"dropped"`
	Cutoff     int            `json:"cutoff" yaml:"cutoff"`
}

// OutcomeLabels returns the outcome labels in sorted order.
func (ix *Index) OutcomeLabels() []string {
	labels := make([]string, 0, len(ix.Outcomes))
	for o := range ix.Outcomes {
		labels = append(labels, o)
	}
	sort.Strings(labels)
	return labels
}

// Indexer is a Trainer that stops after indexing. It returns an *Index.
type Indexer struct{}

// Train counts outcomes and predicates of every event and applies the
// cutoff: a predicate is kept when it occurs at least Cutoff times.
func (Indexer) Train(ctx context.Context, events EventSource, settings Settings) (Model, error) {
	ix := &Index{
		Outcomes:   make(map[string]int),
		Predicates: make(map[string]int),
		Cutoff:     settings.Cutoff,
	}
	err := Drain(ctx, events, func(ev types.Event) error {
		ix.Events++
		ix.Outcomes[ev.Outcome]++
		for _, f := range ev.Context {
			ix.Predicates[f]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for p, n := range ix.Predicates {
		if n < settings.Cutoff {
			delete(ix.Predicates, p)
			ix.Dropped++
		}
	}
	return ix, nil
}

var _ Trainer = Indexer{}
