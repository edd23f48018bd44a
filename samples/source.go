// Package samples provides sample sources: lazy providers of annotated
// training samples for the event stream.
//
// A Source yields samples one at a time and returns io.EOF once exhausted.
// Sources that can be re-read from their start also implement Resetter.
// Concrete sources report failures as *types.SourceReadError.
package samples

import (
	"context"
	"errors"
	"io"

	"github.com/pithecene-io/tagstream/types"
)

// Source yields annotated samples.
type Source interface {
	// Read returns the next sample, or io.EOF when the source is exhausted.
	Read(ctx context.Context) (*types.Sample, error)
}

// Resetter is implemented by sources that can restart from their beginning.
type Resetter interface {
	Reset() error
}

// SliceSource is an in-memory, resettable source.
type SliceSource struct {
	samples []*types.Sample
	pos     int
}

// NewSliceSource creates a source over the given samples.
func NewSliceSource(samples ...*types.Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

// Read returns the next sample.
func (s *SliceSource) Read(ctx context.Context) (*types.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.samples) {
		return nil, io.EOF
	}
	sample := s.samples[s.pos]
	s.pos++
	return sample, nil
}

// Reset rewinds to the first sample.
func (s *SliceSource) Reset() error {
	s.pos = 0
	return nil
}

// Len returns the number of samples held.
func (s *SliceSource) Len() int {
	return len(s.samples)
}

// ReadAll drains src. Samples read before a failure are returned with the
// error.
func ReadAll(ctx context.Context, src Source) ([]*types.Sample, error) {
	var out []*types.Sample
	for {
		sample, err := src.Read(ctx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, sample)
	}
}

// Verify interface implementations.
var (
	_ Source   = (*SliceSource)(nil)
	_ Resetter = (*SliceSource)(nil)
)
