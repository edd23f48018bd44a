package types //nolint:revive // types is a valid package name

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestSampleEncodingError_UnwrapsSpanError(t *testing.T) {
	spanErr := &InvalidSpanError{Span: NewSpan(5, 3, ""), Length: 7, Reason: "start must be less than end"}
	err := fmt.Errorf("build: %w", &SampleEncodingError{Sample: 2, Stage: StageValidate, Err: spanErr})

	if !errors.Is(err, ErrSampleEncoding) {
		t.Error("expected errors.Is(err, ErrSampleEncoding)")
	}
	if !errors.Is(err, ErrInvalidSpan) {
		t.Error("expected errors.Is(err, ErrInvalidSpan) through the chain")
	}

	var got *InvalidSpanError
	if !errors.As(err, &got) {
		t.Fatal("expected errors.As to find *InvalidSpanError")
	}
	if got.Span.Start != 5 || got.Span.End != 3 {
		t.Errorf("span = %v, want [5..3)", got.Span)
	}
}

func TestSourceReadError_PreservesCause(t *testing.T) {
	err := NewSourceReadError("read", io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrSourceRead) {
		t.Error("expected errors.Is(err, ErrSourceRead)")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected cause to be preserved")
	}
	if NewSourceReadError("read", nil) != nil {
		t.Error("NewSourceReadError(nil) should return nil")
	}
}

func TestClassificationHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		encoding bool
		source   bool
		config   bool
	}{
		{"span", &InvalidSpanError{}, true, false, false},
		{"encoding", &SampleEncodingError{Err: errors.New("x")}, true, false, false},
		{"source", &SourceReadError{Op: "read", Err: errors.New("x")}, false, true, false},
		{"config", &InvalidTrainingConfigurationError{Group: "build"}, false, false, true},
		{"plain", errors.New("plain"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEncodingError(tt.err); got != tt.encoding {
				t.Errorf("IsEncodingError = %v, want %v", got, tt.encoding)
			}
			if got := IsSourceError(tt.err); got != tt.source {
				t.Errorf("IsSourceError = %v, want %v", got, tt.source)
			}
			if got := IsConfigurationError(tt.err); got != tt.config {
				t.Errorf("IsConfigurationError = %v, want %v", got, tt.config)
			}
		})
	}
}

func TestInvalidTrainingConfigurationError_Message(t *testing.T) {
	err := &InvalidTrainingConfigurationError{Group: "build", Key: "Iterations", Reason: "must be a positive integer"}
	want := "invalid training configuration: build parameters: Iterations: must be a positive integer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
