package samples

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pithecene-io/tagstream/ipc"
	"github.com/pithecene-io/tagstream/types"
)

// FrameSource reads samples from a length-prefixed msgpack stream.
type FrameSource struct {
	dec    *ipc.FrameDecoder
	frames int
}

// NewFrameSource creates a source decoding frames from r.
func NewFrameSource(r io.Reader) *FrameSource {
	return &FrameSource{dec: ipc.NewFrameDecoder(r)}
}

// Read returns the next sample frame. A header frame is accepted only as
// the first frame of the stream.
func (s *FrameSource) Read(ctx context.Context) (*types.Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		payload, err := s.dec.ReadFrame()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, types.NewSourceReadError("read", err)
		}
		s.frames++

		v, err := ipc.DecodeFrame(payload)
		if err != nil {
			return nil, types.NewSourceReadError("decode", err)
		}
		switch f := v.(type) {
		case *ipc.Header:
			if s.frames != 1 || f.Kind != ipc.KindSamples {
				return nil, types.NewSourceReadError("decode", &ipc.FrameError{
					Kind: ipc.FrameErrorUnexpected,
					Msg:  fmt.Sprintf("unexpected %s header at frame %d", f.Kind, s.frames),
				})
			}
		case *types.Sample:
			return f, nil
		default:
			return nil, types.NewSourceReadError("decode", &ipc.FrameError{
				Kind: ipc.FrameErrorUnexpected,
				Msg:  fmt.Sprintf("unexpected %T at frame %d", v, s.frames),
			})
		}
	}
}

// FrameWriter writes samples as a length-prefixed msgpack stream.
// The header frame is written before the first sample.
type FrameWriter struct {
	enc         *ipc.FrameEncoder
	wroteHeader bool
	count       int
}

// NewFrameWriter creates a writer on w. The caller owns w.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{enc: ipc.NewFrameEncoder(w)}
}

// Write appends one sample.
func (w *FrameWriter) Write(sample *types.Sample) error {
	if err := w.header(); err != nil {
		return err
	}
	if err := w.enc.WriteFrame(&ipc.SampleFrame{Type: ipc.SampleType, Sample: sample}); err != nil {
		return err
	}
	w.count++
	return nil
}

// Flush writes the header if nothing has been written yet, so an empty
// corpus is still a valid stream.
func (w *FrameWriter) Flush() error {
	return w.header()
}

// Count returns the number of samples written.
func (w *FrameWriter) Count() int {
	return w.count
}

func (w *FrameWriter) header() error {
	if w.wroteHeader {
		return nil
	}
	if err := w.enc.WriteFrame(ipc.NewHeader(ipc.KindSamples)); err != nil {
		return err
	}
	w.wroteHeader = true
	return nil
}

var _ Source = (*FrameSource)(nil)
