// Package ipc implements the length-prefixed msgpack frame format used for
// sample corpora and event dumps.
//
// A stream is a sequence of frames. Each frame is a 4-byte big-endian
// payload length followed by a msgpack map carrying a "type" discriminant.
// Writers emit one header frame first; readers accept streams without one.
package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/tagstream/types"
)

// Frame size constants.
const (
	// MaxFrameSize is the maximum frame size (16 MiB), including length prefix.
	MaxFrameSize = 16 * 1024 * 1024
	// MaxPayloadSize is the maximum payload size (MaxFrameSize - 4 bytes).
	MaxPayloadSize = MaxFrameSize - LengthPrefixSize
	// LengthPrefixSize is the size of the length prefix in bytes.
	LengthPrefixSize = 4
)

// Frame type discriminants.
const (
	HeaderType = "header"
	SampleType = "sample"
	EventType  = "event"
)

// Stream kinds recorded in the header frame.
const (
	KindSamples = "samples"
	KindEvents  = "events"
)

// FrameErrorKind classifies frame decoding errors.
type FrameErrorKind int

const (
	// FrameErrorPartial indicates a truncated or incomplete frame.
	FrameErrorPartial FrameErrorKind = iota
	// FrameErrorTooLarge indicates a frame exceeding MaxFrameSize.
	FrameErrorTooLarge
	// FrameErrorDecode indicates a msgpack decoding error.
	FrameErrorDecode
	// FrameErrorVersion indicates a header with an unsupported frame version.
	FrameErrorVersion
	// FrameErrorUnexpected indicates a well-formed frame of the wrong type.
	FrameErrorUnexpected
)

// FrameError represents a frame decoding error.
type FrameError struct {
	Kind FrameErrorKind
	Msg  string
	Err  error
}

func (e *FrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the stream cannot be read any further.
// Partial and oversized frames lose framing; everything after them is garbage.
func (e *FrameError) IsFatal() bool {
	return e.Kind == FrameErrorPartial || e.Kind == FrameErrorTooLarge
}

// IsFatalFrameError returns true if the error is a fatal frame error.
func IsFatalFrameError(err error) bool {
	var frameErr *FrameError
	if errors.As(err, &frameErr) {
		return frameErr.IsFatal()
	}
	return false
}

// Header is the first frame of a written stream.
type Header struct {
	Type    string `msgpack:"type"`
	Version string `msgpack:"version"`
	Kind    string `msgpack:"kind"`
}

// NewHeader returns a header for the current frame version.
func NewHeader(kind string) *Header {
	return &Header{Type: HeaderType, Version: types.FrameVersion, Kind: kind}
}

// SampleFrame carries one annotated sample.
type SampleFrame struct {
	Type   string        `msgpack:"type"`
	Sample *types.Sample `msgpack:"sample"`
}

// EventFrame carries one training event.
type EventFrame struct {
	Type  string       `msgpack:"type"`
	Event *types.Event `msgpack:"event"`
}

// FrameDecoder decodes length-prefixed msgpack frames from a stream.
type FrameDecoder struct {
	reader io.Reader
}

// NewFrameDecoder creates a new frame decoder.
func NewFrameDecoder(r io.Reader) *FrameDecoder {
	return &FrameDecoder{reader: r}
}

// ReadFrame reads a single frame from the stream.
// Returns the raw payload bytes (msgpack-encoded).
//
// Errors:
//   - io.EOF: stream ended cleanly (no more frames)
//   - *FrameError with Kind=FrameErrorPartial: incomplete frame (fatal)
//   - *FrameError with Kind=FrameErrorTooLarge: frame exceeds limit (fatal)
func (d *FrameDecoder) ReadFrame() ([]byte, error) {
	var lengthBuf [LengthPrefixSize]byte
	_, err := io.ReadFull(d.reader, lengthBuf[:])
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to read length prefix",
			Err:  err,
		}
	}

	payloadSize := binary.BigEndian.Uint32(lengthBuf[:])
	if payloadSize > MaxPayloadSize {
		return nil, &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", payloadSize, MaxPayloadSize),
		}
	}

	payload := make([]byte, payloadSize)
	_, err = io.ReadFull(d.reader, payload)
	if err != nil {
		return nil, &FrameError{
			Kind: FrameErrorPartial,
			Msg:  "failed to read payload",
			Err:  err,
		}
	}

	return payload, nil
}

// FrameEncoder writes length-prefixed msgpack frames to a stream.
type FrameEncoder struct {
	writer io.Writer
}

// NewFrameEncoder creates a new frame encoder.
func NewFrameEncoder(w io.Writer) *FrameEncoder {
	return &FrameEncoder{writer: w}
}

// WriteFrame marshals v and writes it as one frame.
func (e *FrameEncoder) WriteFrame(v any) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return &FrameError{
			Kind: FrameErrorTooLarge,
			Msg:  fmt.Sprintf("payload size %d exceeds maximum %d", len(payload), MaxPayloadSize),
		}
	}

	buf := make([]byte, LengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(buf[:LengthPrefixSize], uint32(len(payload)))
	copy(buf[LengthPrefixSize:], payload)
	if _, err := e.writer.Write(buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// frameTypeProbe is used to peek at the type field without full decode.
type frameTypeProbe struct {
	Type string `msgpack:"type"`
}

// DecodeFrame decodes a payload and returns a *Header, *types.Sample or
// *types.Event depending on the type discriminant.
func DecodeFrame(payload []byte) (any, error) {
	var probe frameTypeProbe
	if err := msgpack.Unmarshal(payload, &probe); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode frame type",
			Err:  err,
		}
	}

	switch probe.Type {
	case HeaderType:
		return DecodeHeader(payload)
	case SampleType:
		return DecodeSample(payload)
	case EventType:
		return DecodeEvent(payload)
	default:
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  fmt.Sprintf("unknown frame type %q", probe.Type),
		}
	}
}

// DecodeHeader decodes a header payload and checks its version.
func DecodeHeader(payload []byte) (*Header, error) {
	var h Header
	if err := msgpack.Unmarshal(payload, &h); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode header",
			Err:  err,
		}
	}
	if h.Version != types.FrameVersion {
		return nil, &FrameError{
			Kind: FrameErrorVersion,
			Msg:  fmt.Sprintf("unsupported frame version %q (want %q)", h.Version, types.FrameVersion),
		}
	}
	return &h, nil
}

// DecodeSample decodes a sample payload.
func DecodeSample(payload []byte) (*types.Sample, error) {
	var f SampleFrame
	if err := msgpack.Unmarshal(payload, &f); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode sample",
			Err:  err,
		}
	}
	if f.Sample == nil {
		return nil, &FrameError{Kind: FrameErrorDecode, Msg: "sample frame has no sample"}
	}
	return f.Sample, nil
}

// DecodeEvent decodes an event payload.
func DecodeEvent(payload []byte) (*types.Event, error) {
	var f EventFrame
	if err := msgpack.Unmarshal(payload, &f); err != nil {
		return nil, &FrameError{
			Kind: FrameErrorDecode,
			Msg:  "failed to decode event",
			Err:  err,
		}
	}
	if f.Event == nil {
		return nil, &FrameError{Kind: FrameErrorDecode, Msg: "event frame has no event"}
	}
	return f.Event, nil
}
