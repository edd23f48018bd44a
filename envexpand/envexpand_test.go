package envexpand

import (
	"testing"
)

func TestExpand_SetVar(t *testing.T) {
	t.Setenv("TEST_VAR", "hello")

	got := Expand("value: ${TEST_VAR}")
	want := "value: hello"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpand_UnsetVar(t *testing.T) {
	got := Expand("value: ${UNSET_VAR_12345}")
	want := "value: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpand_DefaultUsedWhenUnset(t *testing.T) {
	got := Expand("value: ${UNSET_VAR_12345:-fallback}")
	want := "value: fallback"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpand_DefaultIgnoredWhenSet(t *testing.T) {
	t.Setenv("TEST_VAR", "real")

	got := Expand("value: ${TEST_VAR:-fallback}")
	want := "value: real"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpand_DefaultUsedWhenEmpty(t *testing.T) {
	t.Setenv("TEST_VAR", "")

	got := Expand("value: ${TEST_VAR:-fallback}")
	want := "value: fallback"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpand_MultipleVars(t *testing.T) {
	t.Setenv("USER_A", "alice")
	t.Setenv("USER_B", "bob")

	got := Expand("${USER_A}:${USER_B}")
	want := "alice:bob"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpand_NoVars(t *testing.T) {
	input := "no variables here"
	got := Expand(input)
	if got != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

func TestExpand_NestedInYAML(t *testing.T) {
	t.Setenv("TRAIN_ITERATIONS", "300")

	input := `stages:
  tagger:
    iterations: ${TRAIN_ITERATIONS}
    cutoff: ${TRAIN_CUTOFF:-5}`

	got := Expand(input)
	want := `stages:
  tagger:
    iterations: 300
    cutoff: 5`

	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
