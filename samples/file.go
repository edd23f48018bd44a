package samples

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pithecene-io/tagstream/iox"
	"github.com/pithecene-io/tagstream/types"
)

// Format names an on-disk sample encoding.
type Format string

// Supported sample formats.
const (
	// FormatFrame is the length-prefixed msgpack frame stream.
	FormatFrame Format = "frame"
	// FormatAnnotated is the <START:type> ... <END> line format.
	FormatAnnotated Format = "annotated"
)

// ParseFormat parses a format name. Empty defaults to FormatAnnotated.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatAnnotated:
		return FormatAnnotated, nil
	case FormatFrame:
		return FormatFrame, nil
	default:
		return "", fmt.Errorf("unknown sample format %q (want %q or %q)", s, FormatAnnotated, FormatFrame)
	}
}

// NewReaderSource creates a one-shot source decoding r in the given format.
func NewReaderSource(r io.Reader, format Format) (Source, error) {
	switch format {
	case FormatAnnotated:
		return NewAnnotatedSource(r), nil
	case FormatFrame:
		return NewFrameSource(r), nil
	default:
		return nil, fmt.Errorf("unknown sample format %q", format)
	}
}

// FileSource reads samples from a local file. Reset rewinds the file.
type FileSource struct {
	path   string
	format Format
	file   *os.File
	src    Source
}

// OpenFile opens path for reading in the given format.
func OpenFile(path string, format Format) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewSourceReadError("open", err)
	}
	src, err := NewReaderSource(f, format)
	if err != nil {
		iox.DiscardClose(f)
		return nil, err
	}
	return &FileSource{path: path, format: format, file: f, src: src}, nil
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Read returns the next sample.
func (s *FileSource) Read(ctx context.Context) (*types.Sample, error) {
	return s.src.Read(ctx)
}

// Reset seeks back to the start of the file.
func (s *FileSource) Reset() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return types.NewSourceReadError("reset", err)
	}
	src, err := NewReaderSource(s.file, s.format)
	if err != nil {
		return err
	}
	s.src = src
	return nil
}

// Close releases the file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

// Verify interface implementations.
var (
	_ Source    = (*FileSource)(nil)
	_ Resetter  = (*FileSource)(nil)
	_ io.Closer = (*FileSource)(nil)
)
