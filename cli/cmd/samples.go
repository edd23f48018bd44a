package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/tagstream/cli/render"
	"github.com/pithecene-io/tagstream/iox"
	"github.com/pithecene-io/tagstream/outcome"
	"github.com/pithecene-io/tagstream/samples"
)

// SampleRow is one sample as rendered by the samples command.
// Spans are typed as the encoder sees them: untyped spans carry the
// override type.
type SampleRow struct {
	Index  int    `json:"index"`
	Tokens int    `json:"tokens"`
	Spans  string `json:"spans"`
	Clear  bool   `json:"clear_adaptive_data"`
	Text   string `json:"text"`
}

// SamplesCommand returns the samples command.
// It lists corpus samples without generating features.
func SamplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "samples",
		Usage: "List samples of a corpus with their typed spans",
		Flags: slices.Concat(CorpusFlags(), ReadOnlyFlags(), []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum samples to list (0 = all)",
				Value: 50,
			},
		}),
		Action: samplesAction,
	}
}

func samplesAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	choice, err := resolveCorpus(c, cfg)
	if err != nil {
		return err
	}
	source, err := openSource(ctx, choice)
	if err != nil {
		return exitFor("failed to open corpus", err)
	}
	defer func() { _ = iox.CloseIfCloser(source) }()

	rows, err := listSamples(ctx, source, choice.typ, c.Int("limit"))
	if err != nil {
		return exitFor("samples", err)
	}
	return r.Render(rows)
}

// listSamples reads up to limit samples and renders each one.
func listSamples(ctx context.Context, source samples.Source, typ string, limit int) ([]SampleRow, error) {
	rows := []SampleRow{}
	for limit <= 0 || len(rows) < limit {
		sample, err := source.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		labels, err := outcome.Encode(sample.Spans, typ, sample.Len())
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", len(rows), err)
		}
		spans := outcome.Decode(labels)
		parts := make([]string, len(spans))
		for i, sp := range spans {
			parts[i] = sp.String()
		}
		rows = append(rows, SampleRow{
			Index:  len(rows),
			Tokens: sample.Len(),
			Spans:  strings.Join(parts, " "),
			Clear:  sample.ClearAdaptiveData,
			Text:   samples.RenderAnnotated(sample),
		})
	}
	return rows, nil
}
