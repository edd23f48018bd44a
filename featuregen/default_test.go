package featuregen_test

import (
	"reflect"
	"slices"
	"testing"

	"github.com/pithecene-io/tagstream/featuregen"
)

func TestDefaultContextGenerator_PriorOutcomes(t *testing.T) {
	g := featuregen.NewDefaultContextGenerator()
	tokens := []string{"Mr", "John", "Smith"}

	first := g.Context(0, tokens, nil, nil)
	for _, want := range []string{"po=other", "ppo=other", "pow=other,Mr", "S=begin", "def", "w=mr"} {
		if !slices.Contains(first, want) {
			t.Errorf("token 0 features missing %q: %v", want, first)
		}
	}

	third := g.Context(2, tokens, []string{"other", "person-start"}, nil)
	for _, want := range []string{"po=person-start", "ppo=other", "powf=person-start,ic", "p1w=john", "pw,w=John,Smith"} {
		if !slices.Contains(third, want) {
			t.Errorf("token 2 features missing %q: %v", want, third)
		}
	}
	if slices.Contains(third, "S=begin") {
		t.Error("S=begin emitted for a non-initial token")
	}
}

func TestDefaultContextGenerator_AdaptiveData(t *testing.T) {
	g := featuregen.NewDefaultContextGenerator()
	tokens := []string{"Smith", "said"}

	before := g.Context(0, tokens, nil, nil)
	if slices.ContainsFunc(before, func(f string) bool { return len(f) > 3 && f[:3] == "pd=" }) {
		t.Fatalf("fresh generator emitted a previous-decision feature: %v", before)
	}

	g.UpdateAdaptiveData([]string{"Smith"}, []string{"person-start"})
	after := g.Context(0, tokens, nil, nil)
	if !slices.Contains(after, "pd=person-start") {
		t.Errorf("expected pd=person-start after update, got %v", after)
	}

	g.ClearAdaptiveData()
	cleared := g.Context(0, tokens, nil, nil)
	if !reflect.DeepEqual(cleared, before) {
		t.Errorf("after clear = %v, want %v", cleared, before)
	}
}

func TestDefaultContextGenerator_IndependentInstances(t *testing.T) {
	a := featuregen.NewDefaultContextGenerator()
	b := featuregen.NewDefaultContextGenerator()

	a.UpdateAdaptiveData([]string{"Paris"}, []string{"location-start"})

	if slices.Contains(b.Context(0, []string{"Paris"}, nil, nil), "pd=location-start") {
		t.Error("adaptive state leaked between independently constructed generators")
	}
}

func TestContextGenerator_AddFeatureGenerator(t *testing.T) {
	g := featuregen.NewContextGenerator()
	g.AddFeatureGenerator(&featuregen.SentenceFeatureGenerator{End: true})

	got := g.Context(1, []string{"a", "b"}, []string{"other"}, nil)
	if !slices.Contains(got, "S=end") {
		t.Errorf("added generator not applied: %v", got)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range featuregen.Names() {
		f, err := featuregen.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if f() == f() {
			t.Errorf("factory %q returned a shared instance", name)
		}
	}

	if _, err := featuregen.Lookup("nope"); err == nil {
		t.Error("Lookup(nope) should fail")
	}
	if _, err := featuregen.Lookup(""); err != nil {
		t.Errorf("Lookup(\"\") should default, got %v", err)
	}
}
