package iox

import (
	"errors"
	"testing"
)

type spyCloser struct{ closed bool }

func (s *spyCloser) Close() error { s.closed = true; return errors.New("ignored") }

func TestDiscardClose(t *testing.T) {
	s := &spyCloser{}
	DiscardClose(s)
	if !s.closed {
		t.Fatal("Close was not called")
	}
}

func TestCloseFunc(t *testing.T) {
	s := &spyCloser{}
	fn := CloseFunc(s)
	if s.closed {
		t.Fatal("Close called before invoking returned func")
	}
	fn()
	if !s.closed {
		t.Fatal("Close was not called")
	}
}

func TestDiscardErr(t *testing.T) {
	called := false
	DiscardErr(func() error {
		called = true
		return errors.New("ignored")
	})
	if !called {
		t.Fatal("fn was not called")
	}
}

func TestCloseIfCloser(t *testing.T) {
	s := &spyCloser{}
	if err := CloseIfCloser(s); err == nil {
		t.Fatal("expected close error to be returned")
	}
	if !s.closed {
		t.Fatal("Close was not called")
	}
	if err := CloseIfCloser(struct{}{}); err != nil {
		t.Fatalf("non-closer: got %v, want nil", err)
	}
}
