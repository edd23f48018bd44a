package outcome_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pithecene-io/tagstream/outcome"
	"github.com/pithecene-io/tagstream/types"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		spans    []types.Span
		override string
		length   int
		want     []string
	}{
		{
			name:   "no spans",
			length: 4,
			want:   []string{"other", "other", "other", "other"},
		},
		{
			name:   "empty sentence",
			length: 0,
			want:   []string{},
		},
		{
			name:   "typed span in the middle",
			spans:  []types.Span{types.NewSpan(2, 5, "PERSON")},
			length: 7,
			want:   []string{"other", "other", "PERSON-start", "PERSON-continue", "PERSON-continue", "other", "other"},
		},
		{
			name:   "two typed spans",
			spans:  []types.Span{types.NewSpan(0, 1, "PERSON"), types.NewSpan(3, 4, "LOCATION")},
			length: 4,
			want:   []string{"PERSON-start", "other", "other", "LOCATION-start"},
		},
		{
			name:     "untyped span uses override",
			spans:    []types.Span{types.NewSpan(0, 2, "")},
			override: "default",
			length:   2,
			want:     []string{"default-start", "default-continue"},
		},
		{
			name:   "untyped span without override uses default type",
			spans:  []types.Span{types.NewSpan(1, 2, "")},
			length: 3,
			want:   []string{"other", "default-start", "other"},
		},
		{
			name:     "span type wins over override",
			spans:    []types.Span{types.NewSpan(0, 1, "ORG")},
			override: "person",
			length:   1,
			want:     []string{"ORG-start"},
		},
		{
			name:   "span touching the end",
			spans:  []types.Span{types.NewSpan(1, 3, "X")},
			length: 3,
			want:   []string{"other", "X-start", "X-continue"},
		},
		{
			name:   "adjacent spans",
			spans:  []types.Span{types.NewSpan(0, 2, "A"), types.NewSpan(2, 3, "A")},
			length: 3,
			want:   []string{"A-start", "A-continue", "A-start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outcome.Encode(tt.spans, tt.override, tt.length)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Encode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncode_InvalidSpans(t *testing.T) {
	tests := []struct {
		name   string
		spans  []types.Span
		length int
	}{
		{"reversed", []types.Span{types.NewSpan(5, 3, "X")}, 10},
		{"reversed in empty sentence", []types.Span{types.NewSpan(5, 3, "X")}, 0},
		{"end past length", []types.Span{types.NewSpan(1, 4, "X")}, 3},
		{"same start", []types.Span{types.NewSpan(0, 1, "A"), types.NewSpan(0, 2, "B")}, 3},
		{"nested", []types.Span{types.NewSpan(0, 3, "A"), types.NewSpan(1, 2, "B")}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outcome.Encode(tt.spans, "", tt.length)
			if !errors.Is(err, types.ErrInvalidSpan) {
				t.Fatalf("Encode() error = %v, want ErrInvalidSpan", err)
			}
			var spanErr *types.InvalidSpanError
			if !errors.As(err, &spanErr) {
				t.Fatalf("error %T is not *types.InvalidSpanError", err)
			}
			if got != nil {
				t.Errorf("Encode() returned %v alongside an error", got)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		label    string
		wantType string
		wantPart string
		wantOK   bool
	}{
		{"other", "", "other", true},
		{"PERSON-start", "PERSON", "start", true},
		{"date-time-continue", "date-time", "continue", true},
		{"PERSON-middle", "", "", false},
		{"-start", "", "", false},
		{"start", "", "", false},
	}
	for _, tt := range tests {
		typ, part, ok := outcome.Split(tt.label)
		if typ != tt.wantType || part != tt.wantPart || ok != tt.wantOK {
			t.Errorf("Split(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.label, typ, part, ok, tt.wantType, tt.wantPart, tt.wantOK)
		}
	}
}

func TestDecode_InvertsEncode(t *testing.T) {
	spans := []types.Span{
		types.NewSpan(0, 2, "PERSON"),
		types.NewSpan(2, 3, "PERSON"),
		types.NewSpan(5, 8, "LOCATION"),
	}
	outcomes, err := outcome.Encode(spans, "", 9)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got := outcome.Decode(outcomes)
	if !reflect.DeepEqual(got, spans) {
		t.Errorf("Decode(Encode(spans)) = %v, want %v", got, spans)
	}
}

func TestDecode_DropsOrphanContinue(t *testing.T) {
	outcomes := []string{"PERSON-continue", "ORG-start", "PERSON-continue", "other"}
	got := outcome.Decode(outcomes)
	want := []types.Span{types.NewSpan(1, 2, "ORG")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode() = %v, want %v", got, want)
	}
}
