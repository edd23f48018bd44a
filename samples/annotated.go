package samples

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pithecene-io/tagstream/types"
)

// Annotation markers of the line format:
//
//	<START:person> Pierre Vinken <END> , 61 years old .
//
// An empty line marks a document boundary; the next sample carries
// ClearAdaptiveData.
const (
	startMarker       = "<START>"
	typedStartPrefix  = "<START:"
	endMarker         = "<END>"
	maxAnnotatedLine  = 1024 * 1024
	initialLineBuffer = 64 * 1024
)

// ParseAnnotated parses one annotated line into a sample.
func ParseAnnotated(line string) (*types.Sample, error) {
	fields := strings.Fields(line)
	tokens := make([]string, 0, len(fields))
	var spans []types.Span

	open := false
	start := 0
	typ := ""
	for _, f := range fields {
		switch {
		case f == startMarker || (strings.HasPrefix(f, typedStartPrefix) && strings.HasSuffix(f, ">")):
			if open {
				return nil, fmt.Errorf("nested %s at token %d", f, len(tokens))
			}
			open = true
			start = len(tokens)
			typ = ""
			if f != startMarker {
				typ = f[len(typedStartPrefix) : len(f)-1]
			}
		case f == endMarker:
			if !open {
				return nil, fmt.Errorf("%s without start at token %d", endMarker, len(tokens))
			}
			if start == len(tokens) {
				return nil, fmt.Errorf("empty span at token %d", start)
			}
			spans = append(spans, types.NewSpan(start, len(tokens), typ))
			open = false
		default:
			tokens = append(tokens, f)
		}
	}
	if open {
		return nil, fmt.Errorf("unclosed span starting at token %d", start)
	}
	return types.NewSample(tokens, spans, false), nil
}

// RenderAnnotated renders a sample in the annotated line format.
// Spans are assumed valid and non-overlapping.
func RenderAnnotated(sample *types.Sample) string {
	starts := make(map[int]types.Span, len(sample.Spans))
	ends := make(map[int]int, len(sample.Spans))
	for _, span := range sample.Spans {
		starts[span.Start] = span
		ends[span.End]++
	}

	var b strings.Builder
	write := func(s string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	for i, tok := range sample.Tokens {
		for range ends[i] {
			write(endMarker)
		}
		if span, ok := starts[i]; ok {
			if span.HasType() {
				write(typedStartPrefix + span.Type + ">")
			} else {
				write(startMarker)
			}
		}
		write(tok)
	}
	for range ends[len(sample.Tokens)] {
		write(endMarker)
	}
	return b.String()
}

// AnnotatedSource reads samples from annotated text, one sentence per line.
type AnnotatedSource struct {
	scanner      *bufio.Scanner
	line         int
	pendingClear bool
}

// NewAnnotatedSource creates a source over r.
func NewAnnotatedSource(r io.Reader) *AnnotatedSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxAnnotatedLine)
	return &AnnotatedSource{scanner: scanner}
}

// Read returns the next non-empty line as a sample.
func (s *AnnotatedSource) Read(ctx context.Context) (*types.Sample, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, types.NewSourceReadError("read", err)
			}
			return nil, io.EOF
		}
		s.line++

		text := strings.TrimSpace(s.scanner.Text())
		if text == "" {
			s.pendingClear = true
			continue
		}

		sample, err := ParseAnnotated(text)
		if err != nil {
			return nil, types.NewSourceReadError("parse", fmt.Errorf("line %d: %w", s.line, err))
		}
		sample.ClearAdaptiveData = s.pendingClear
		s.pendingClear = false
		return sample, nil
	}
}

var _ Source = (*AnnotatedSource)(nil)
