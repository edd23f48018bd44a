package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pithecene-io/tagstream/types"
)

func TestLogger_IncludesRunContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithLevel(&types.RunMeta{RunID: "run-1", Corpus: "train.bin"}, &buf, zapcore.DebugLevel)

	l.Info("stream started", map[string]any{"window": 8})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%q)", err, buf.String())
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("run_id = %v, want run-1", entry["run_id"])
	}
	if entry["corpus"] != "train.bin" {
		t.Errorf("corpus = %v, want train.bin", entry["corpus"])
	}
	if entry["message"] != "stream started" {
		t.Errorf("message = %v, want %q", entry["message"], "stream started")
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithLevel(&types.RunMeta{RunID: "run-1"}, &buf, zapcore.WarnLevel)

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	l.Warn("shown", nil)
	if buf.Len() == 0 {
		t.Error("expected warn output")
	}
}

func TestNewWithCore_Observed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(&types.RunMeta{RunID: "run-2"}, core).With("stream")

	l.Error("sample failed", map[string]any{"sample": 3})

	entries := logs.FilterMessage("sample failed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["run_id"] != "run-2" {
		t.Errorf("run_id = %v, want run-2", ctx["run_id"])
	}
	if ctx["component"] != "stream" {
		t.Errorf("component = %v, want stream", ctx["component"])
	}
}

func TestNewNop_DoesNotPanic(_ *testing.T) {
	l := NewNop()
	l.Debug("x", nil)
	l.Sugar().Infof("y %d", 1)
}
