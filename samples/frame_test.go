package samples

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/pithecene-io/tagstream/ipc"
	"github.com/pithecene-io/tagstream/types"
)

func TestFrameWriter_Roundtrip(t *testing.T) {
	in := []*types.Sample{
		types.NewSample([]string{"Pierre", "Vinken"}, []types.Span{types.NewSpan(0, 2, "person")}, false),
		types.NewSample([]string{"He", "left"}, nil, true),
	}

	var buf bytes.Buffer
	w := NewFrameWriter(&buf)
	for _, s := range in {
		if err := w.Write(s); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if w.Count() != 2 {
		t.Errorf("Count = %d, want 2", w.Count())
	}

	out, err := ReadAll(t.Context(), NewFrameSource(&buf))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d samples, want %d", len(out), len(in))
	}
	for i := range in {
		if !slices.Equal(out[i].Tokens, in[i].Tokens) {
			t.Errorf("sample %d Tokens = %v, want %v", i, out[i].Tokens, in[i].Tokens)
		}
		if !slices.Equal(out[i].Spans, in[i].Spans) {
			t.Errorf("sample %d Spans = %v, want %v", i, out[i].Spans, in[i].Spans)
		}
		if out[i].ClearAdaptiveData != in[i].ClearAdaptiveData {
			t.Errorf("sample %d ClearAdaptiveData = %v", i, out[i].ClearAdaptiveData)
		}
	}
}

func TestFrameWriter_EmptyCorpus(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFrameWriter(&buf).Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected header frame")
	}
	if _, err := NewFrameSource(&buf).Read(t.Context()); !errors.Is(err, io.EOF) {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestFrameSource_HeaderlessStream(t *testing.T) {
	var buf bytes.Buffer
	enc := ipc.NewFrameEncoder(&buf)
	sample := types.NewSample([]string{"x"}, nil, false)
	if err := enc.WriteFrame(&ipc.SampleFrame{Type: ipc.SampleType, Sample: sample}); err != nil {
		t.Fatal(err)
	}

	got, err := NewFrameSource(&buf).Read(t.Context())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !slices.Equal(got.Tokens, sample.Tokens) {
		t.Errorf("Tokens = %v, want %v", got.Tokens, sample.Tokens)
	}
}

func TestFrameSource_RejectsEventStream(t *testing.T) {
	var buf bytes.Buffer
	if err := ipc.NewFrameEncoder(&buf).WriteFrame(ipc.NewHeader(ipc.KindEvents)); err != nil {
		t.Fatal(err)
	}

	_, err := NewFrameSource(&buf).Read(t.Context())
	if !types.IsSourceError(err) {
		t.Fatalf("got %v, want source error", err)
	}
	var frameErr *ipc.FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != ipc.FrameErrorUnexpected {
		t.Errorf("got %v, want unexpected-frame error", err)
	}
}

func TestFrameSource_TruncatedIsSourceError(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf)
	if err := w.Write(types.NewSample([]string{"a", "b", "c"}, nil, false)); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-2]

	src := NewFrameSource(bytes.NewReader(data))
	_, err := src.Read(t.Context())
	if !types.IsSourceError(err) {
		t.Fatalf("got %v, want source error", err)
	}
	if !ipc.IsFatalFrameError(err) {
		t.Errorf("got %v, want fatal frame error", err)
	}
}
