package events

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pithecene-io/tagstream/ipc"
	"github.com/pithecene-io/tagstream/types"
)

// FrameWriter writes events as a length-prefixed msgpack stream for an
// external trainer process.
type FrameWriter struct {
	enc         *ipc.FrameEncoder
	wroteHeader bool
	count       int
}

// NewFrameWriter creates a writer on w. The caller owns w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{enc: ipc.NewFrameEncoder(w)}
}

// Write appends one event.
func (w *FrameWriter) Write(ev types.Event) error {
	if !w.wroteHeader {
		if err := w.enc.WriteFrame(ipc.NewHeader(ipc.KindEvents)); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	if err := w.enc.WriteFrame(&ipc.EventFrame{Type: ipc.EventType, Event: &ev}); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of events written.
func (w *FrameWriter) Count() int {
	return w.count
}

// FrameReader reads events written by FrameWriter.
type FrameReader struct {
	dec *ipc.FrameDecoder
}

// NewFrameReader creates a reader on r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{dec: ipc.NewFrameDecoder(r)}
}

// Next returns the next event, or io.EOF at the end of the stream.
func (r *FrameReader) Next(context.Context) (types.Event, error) {
	for {
		payload, err := r.dec.ReadFrame()
		if err != nil {
			return types.Event{}, err
		}
		v, err := ipc.DecodeFrame(payload)
		if err != nil {
			return types.Event{}, err
		}
		switch f := v.(type) {
		case *ipc.Header:
			if f.Kind != ipc.KindEvents {
				return types.Event{}, fmt.Errorf("not an event stream: %s header", f.Kind)
			}
		case *types.Event:
			return *f, nil
		default:
			return types.Event{}, fmt.Errorf("unexpected %T in event stream", v)
		}
	}
}

// Dump drains s into w and returns the number of events written.
func Dump(ctx context.Context, s *Stream, w *FrameWriter) (int, error) {
	n := 0
	for {
		ev, err := s.Next(ctx)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := w.Write(ev); err != nil {
			return n, fmt.Errorf("write event %d: %w", n, err)
		}
		n++
	}
}
