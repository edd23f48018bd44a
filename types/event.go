package types

import "strings"

// Event is one training event: the outcome label of a token together with
// the feature context generated for it.
// Events are immutable; ownership passes to the trainer.
type Event struct {
	// Outcome is the token's label in the start/continue/other scheme.
	Outcome string `msgpack:"outcome" json:"outcome"`
	// Context is the feature set. Order is kept for reproducibility only.
	Context []string `msgpack:"context" json:"context"`
}

// String renders the event as "outcome [f1 f2 ...]".
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Outcome)
	b.WriteString(" [")
	b.WriteString(strings.Join(e.Context, " "))
	b.WriteString("]")
	return b.String()
}
