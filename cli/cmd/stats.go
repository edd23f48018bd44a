package cmd

import (
	"fmt"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/tagstream/cli/config"
	"github.com/pithecene-io/tagstream/cli/render"
	"github.com/pithecene-io/tagstream/iox"
	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/training"
)

// CorpusStats is the response of the stats corpus command: traversal
// counters plus the predicate index a trainer would be fed.
type CorpusStats struct {
	RunID          string           `json:"run_id"`
	Corpus         string           `json:"corpus"`
	Generator      string           `json:"generator"`
	Stage          string           `json:"stage,omitempty"`
	Samples        int64            `json:"samples"`
	Events         int64            `json:"events"`
	Spans          int64            `json:"spans"`
	AdaptiveResets int64            `json:"adaptive_resets"`
	Outcomes       map[string]int64 `json:"outcomes"`
	Predicates     int              `json:"predicates"`
	Dropped        int              `json:"dropped"`
	Cutoff         int              `json:"cutoff"`
	DurationMs     int64            `json:"duration_ms"`
}

// StatsCommand returns the stats command with subcommands.
// Stats returns aggregated, derived facts.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregated statistics (corpus traversal, latest published run)",
		Subcommands: []*cli.Command{
			statsCorpusCommand(),
			statsLatestCommand(),
		},
	}
}

func statsCorpusCommand() *cli.Command {
	return &cli.Command{
		Name:  "corpus",
		Usage: "Traverse a corpus and index its events (dry-run training)",
		Flags: slices.Concat(CorpusFlags(), ParamsFlags(), AdapterFlags(), ReadOnlyFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:  "stage",
				Usage: "Parameter group to train with (e.g. tagger, chunker)",
			},
		}),
		Action: statsCorpusAction,
	}
}

func statsCorpusAction(c *cli.Context) error {
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
	params, err := loadParams(c, cfg)
	if err != nil {
		return err
	}
	stage := resolveString(c, "stage", configVal(cfg, func(c *config.Config) string { return c.Stage }))

	p, err := newPipeline(ctx, c, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	model, err := training.Run(ctx, training.Indexer{}, p.stream, params, stage,
		training.WithLogger(p.logger.With("training")),
		training.WithCollector(p.collector),
	)
	p.notify(ctx, c, stage, err)
	if err != nil {
		return exitFor("stats", err)
	}

	ix, ok := model.(*training.Index)
	if !ok {
		return fmt.Errorf("unexpected model type %T", model)
	}
	return r.Render(corpusStats(p.collector.Snapshot(), ix, stage, p.elapsedMs()))
}

func corpusStats(snap metrics.Snapshot, ix *training.Index, stage string, durationMs int64) CorpusStats {
	return CorpusStats{
		RunID:          snap.RunID,
		Corpus:         snap.Corpus,
		Generator:      snap.Generator,
		Stage:          stage,
		Samples:        snap.SamplesEncoded,
		Events:         snap.EventsEmitted,
		Spans:          snap.SpansEncoded,
		AdaptiveResets: snap.AdaptiveResets,
		Outcomes:       snap.Outcomes,
		Predicates:     len(ix.Predicates),
		Dropped:        ix.Dropped,
		Cutoff:         ix.Cutoff,
		DurationMs:     durationMs,
	}
}

func statsLatestCommand() *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Show the latest completion event stored for a corpus",
		Flags: slices.Concat([]cli.Flag{
			ConfigFlag,
			&cli.StringFlag{
				Name:     "corpus-label",
				Usage:    "Corpus label as published (e.g. s3://bucket/key or a file path)",
				Required: true,
			},
		}, AdapterFlags(), ReadOnlyFlags()),
		Action: statsLatestAction,
	}
}

func statsLatestAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	a, err := buildAdapter(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	if a == nil {
		return cli.Exit("no adapter configured (set --adapter redis or adapter.type)", exitConfigError)
	}
	defer iox.DiscardClose(a)

	if a.LatestKey("") == "" {
		return cli.Exit("adapter.key_prefix is not set; completion events are not stored", exitConfigError)
	}

	ev, err := a.Latest(c.Context, c.String("corpus-label"))
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	if ev == nil {
		return cli.Exit("no completion event stored for "+c.String("corpus-label"), exitError)
	}
	return r.Render(ev)
}
