package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/tagstream/events"
)

// EventsCommand returns the events command.
// It traverses a corpus once and writes every training event, either as
// text lines or as a frame file for an external trainer.
func EventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Generate training events from a sample corpus",
		Flags: slices.Concat(CorpusFlags(), AdapterFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write events as msgpack frames to this file instead of text",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Stop after this many events (text output only, 0 = all)",
			},
		}),
		Action: eventsAction,
	}
}

func eventsAction(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	p, err := newPipeline(ctx, c, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	var n int
	if out := c.String("out"); out != "" {
		n, err = dumpFrames(ctx, c.App.ErrWriter, p, out)
	} else {
		n, err = writeText(ctx, c.App.Writer, p, c.Int("limit"))
	}
	p.notify(ctx, c, "", err)
	if err != nil {
		return exitFor("events", err)
	}

	p.logger.Info("events written", map[string]any{
		"events":  n,
		"samples": p.stream.Samples(),
	})
	return nil
}

// dumpFrames writes every event to path as a frame file.
func dumpFrames(ctx context.Context, status io.Writer, p *pipeline, path string) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	n, err = events.Dump(ctx, p.stream, events.NewFrameWriter(bw))
	if ferr := bw.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if err == nil {
		fmt.Fprintf(status, "wrote %d events from %d samples to %s\n", n, p.stream.Samples(), path)
	}
	return n, err
}

// writeText prints one "outcome [features]" line per event.
func writeText(ctx context.Context, out io.Writer, p *pipeline, limit int) (int, error) {
	w := bufio.NewWriter(out)
	n := 0
	for ev, err := range p.stream.All(ctx) {
		if err != nil {
			_ = w.Flush()
			return n, err
		}
		fmt.Fprintln(w, ev.String())
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return n, w.Flush()
}
