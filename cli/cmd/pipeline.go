package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/tagstream/adapter"
	redisadapter "github.com/pithecene-io/tagstream/adapter/redis"
	"github.com/pithecene-io/tagstream/cli/config"
	"github.com/pithecene-io/tagstream/events"
	"github.com/pithecene-io/tagstream/featuregen"
	"github.com/pithecene-io/tagstream/iox"
	"github.com/pithecene-io/tagstream/log"
	"github.com/pithecene-io/tagstream/metrics"
	"github.com/pithecene-io/tagstream/samples"
	"github.com/pithecene-io/tagstream/types"
)

// Exit codes.
const (
	exitSuccess     = 0
	exitError       = 1 // encoding failure or unexpected error
	exitConfigError = 2
	exitSourceError = 3
)

// exitCodeFor maps a pipeline error to an exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsConfigurationError(err):
		return exitConfigError
	case types.IsSourceError(err):
		return exitSourceError
	default:
		return exitError
	}
}

// corpusChoice holds the resolved corpus and stream configuration.
type corpusChoice struct {
	corpus    string
	format    samples.Format
	typ       string
	generator string
	before    int
	after     int

	backend   string // "fs" or "s3"
	path      string // fs: directory, s3: bucket/prefix
	region    string
	endpoint  string
	pathStyle bool

	runID    string
	logLevel zapcore.Level
}

// resolveCorpus merges flags over cfg. Flags always win.
func resolveCorpus(c *cli.Context, cfg *config.Config) (corpusChoice, error) {
	choice := corpusChoice{
		corpus:    resolveString(c, "corpus", configVal(cfg, func(c *config.Config) string { return c.Corpus })),
		typ:       resolveString(c, "type", configVal(cfg, func(c *config.Config) string { return c.Type })),
		generator: resolveString(c, "generator", configVal(cfg, func(c *config.Config) string { return c.Generator })),
		before:    resolveInt(c, "window-before", configVal(cfg, func(c *config.Config) *int { return c.Window.Before })),
		after:     resolveInt(c, "window-after", configVal(cfg, func(c *config.Config) *int { return c.Window.After })),
		backend:   resolveString(c, "storage-backend", configVal(cfg, func(c *config.Config) string { return c.Storage.Backend })),
		path:      resolveString(c, "storage-path", configVal(cfg, func(c *config.Config) string { return c.Storage.Path })),
		region:    resolveString(c, "storage-region", configVal(cfg, func(c *config.Config) string { return c.Storage.Region })),
		endpoint:  resolveString(c, "storage-endpoint", configVal(cfg, func(c *config.Config) string { return c.Storage.Endpoint })),
		pathStyle: resolveBool(c, "storage-s3-path-style", configVal(cfg, func(c *config.Config) bool { return c.Storage.S3PathStyle })),
		runID:     c.String("run-id"),
	}

	if choice.corpus == "" {
		return choice, cli.Exit("--corpus is required (flag or config)", exitConfigError)
	}

	format, err := samples.ParseFormat(resolveString(c, "corpus-format", configVal(cfg, func(c *config.Config) string { return c.Format })))
	if err != nil {
		return choice, cli.Exit(err.Error(), exitConfigError)
	}
	choice.format = format

	if err := requireNonNegative("window-before", choice.before); err != nil {
		return choice, err
	}
	if err := requireNonNegative("window-after", choice.after); err != nil {
		return choice, err
	}

	switch choice.backend {
	case config.BackendFS:
	case config.BackendS3:
		if choice.path == "" {
			return choice, cli.Exit("--storage-path is required for s3 backend (format: bucket[/prefix])", exitConfigError)
		}
		if choice.corpus == "-" {
			return choice, cli.Exit("stdin corpus is only valid for fs backend", exitConfigError)
		}
	default:
		return choice, cli.Exit(fmt.Sprintf("unknown storage backend %q (must be fs or s3)", choice.backend), exitConfigError)
	}

	level, err := zapcore.ParseLevel(resolveString(c, "log-level", configVal(cfg, func(c *config.Config) string { return c.LogLevel })))
	if err != nil {
		return choice, cli.Exit(fmt.Sprintf("invalid log level: %v", err), exitConfigError)
	}
	choice.logLevel = level

	if choice.runID == "" {
		choice.runID = uuid.NewString()
	}
	return choice, nil
}

// label names the corpus in logs, metrics, and notifications.
func (ch corpusChoice) label() string {
	switch {
	case ch.corpus == "-":
		return "stdin"
	case ch.backend == config.BackendS3:
		return "s3://" + ch.path + "/" + ch.corpus
	default:
		return ch.fsPath()
	}
}

// fsPath joins a relative corpus path onto the storage root.
func (ch corpusChoice) fsPath() string {
	if ch.path == "" || filepath.IsAbs(ch.corpus) {
		return ch.corpus
	}
	return filepath.Join(ch.path, ch.corpus)
}

// openSource opens the corpus on the chosen backend.
func openSource(ctx context.Context, ch corpusChoice) (samples.Source, error) {
	switch {
	case ch.corpus == "-":
		return samples.NewReaderSource(os.Stdin, ch.format)
	case ch.backend == config.BackendS3:
		bucket, prefix := samples.ParseS3Path(ch.path)
		s3cfg := samples.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       ch.region,
			Endpoint:     ch.endpoint,
			UsePathStyle: ch.pathStyle,
		}
		client, err := samples.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		return samples.OpenS3(ctx, client, s3cfg, ch.corpus, ch.format)
	default:
		return samples.OpenFile(ch.fsPath(), ch.format)
	}
}

// pipeline is a configured event stream over one corpus plus the ambient
// pieces a command needs around it.
type pipeline struct {
	cfg       *config.Config
	choice    corpusChoice
	meta      *types.RunMeta
	logger    *log.Logger
	collector *metrics.Collector
	source    samples.Source
	stream    *events.Stream
	start     time.Time
}

// newPipeline resolves flags over cfg and opens the corpus. cfg may be nil.
// The caller must Close the pipeline.
func newPipeline(ctx context.Context, c *cli.Context, cfg *config.Config) (*pipeline, error) {
	choice, err := resolveCorpus(c, cfg)
	if err != nil {
		return nil, err
	}

	factory, err := featuregen.Lookup(choice.generator)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitConfigError)
	}

	meta := &types.RunMeta{RunID: choice.runID, Corpus: choice.label()}
	logger := log.NewLoggerWithLevel(meta, os.Stderr, choice.logLevel)

	source, err := openSource(ctx, choice)
	if err != nil {
		logger.Error("failed to open corpus", map[string]any{"error": err.Error()})
		return nil, cli.Exit(fmt.Sprintf("failed to open corpus: %v", err), exitCodeFor(err))
	}

	collector := metrics.NewCollector(meta.RunID, meta.Corpus, choice.generator)
	stream := events.NewStream(source, factory(),
		events.WithLogger(logger.With("stream")),
		events.WithCollector(collector),
		events.WithOverrideType(choice.typ),
		events.WithWindow(choice.before, choice.after),
	)

	return &pipeline{
		cfg:       cfg,
		choice:    choice,
		meta:      meta,
		logger:    logger,
		collector: collector,
		source:    source,
		stream:    stream,
		start:     time.Now(),
	}, nil
}

// elapsedMs returns the time since the pipeline was opened.
func (p *pipeline) elapsedMs() int64 {
	return time.Since(p.start).Milliseconds()
}

// Close releases the stream and the corpus.
func (p *pipeline) Close() error {
	iox.DiscardClose(p.stream)
	iox.DiscardErr(p.logger.Sync)
	return iox.CloseIfCloser(p.source)
}

// notify publishes a completion event when an adapter is configured.
// Publish failures are logged, never returned: the traversal result stands.
func (p *pipeline) notify(ctx context.Context, c *cli.Context, stage string, runErr error) {
	a, err := buildAdapter(c, p.cfg)
	if err != nil {
		p.logger.Warn("adapter disabled", map[string]any{"error": err.Error()})
		return
	}
	if a == nil {
		return
	}
	defer iox.DiscardClose(a)

	event := adapter.NewTraversalCompletedEvent(p.collector.Snapshot(), stage, runErr, time.Since(p.start), time.Now())
	if err := a.Publish(ctx, event); err != nil {
		p.logger.Warn("failed to publish completion event", map[string]any{"error": err.Error()})
		return
	}
	p.logger.Debug("completion event published", map[string]any{"outcome": event.Outcome})
}

// buildAdapter returns the configured adapter, or nil when none is set.
func buildAdapter(c *cli.Context, cfg *config.Config) (*redisadapter.Adapter, error) {
	typ := resolveString(c, "adapter", configVal(cfg, func(c *config.Config) string { return c.Adapter.Type }))
	if typ == "" {
		return nil, nil
	}
	if typ != config.AdapterRedis {
		return nil, fmt.Errorf("unknown adapter %q (must be redis)", typ)
	}

	rc := redisadapter.Config{
		URL:       resolveString(c, "adapter-url", configVal(cfg, func(c *config.Config) string { return c.Adapter.URL })),
		Channel:   resolveString(c, "adapter-channel", configVal(cfg, func(c *config.Config) string { return c.Adapter.Channel })),
		KeyPrefix: configVal(cfg, func(c *config.Config) string { return c.Adapter.KeyPrefix }),
		TTL:       configVal(cfg, func(c *config.Config) time.Duration { return c.Adapter.TTL.Duration }),
		Timeout:   configVal(cfg, func(c *config.Config) time.Duration { return c.Adapter.Timeout.Duration }),
		Retries:   redisadapter.DefaultRetries,
	}
	if r := configVal(cfg, func(c *config.Config) *int { return c.Adapter.Retries }); r != nil {
		rc.Retries = *r
	}
	return redisadapter.New(rc)
}

// AdapterFlags returns the notification flags.
func AdapterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "adapter",
			Usage: "Completion notification adapter: redis",
		},
		&cli.StringFlag{
			Name:  "adapter-url",
			Usage: "Adapter URL (redis://host:port/db)",
		},
		&cli.StringFlag{
			Name:  "adapter-channel",
			Usage: "Redis pub/sub channel",
		},
	}
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

// exitFor wraps a traversal error for the CLI, keeping cli.Exit errors as is.
func exitFor(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		return err
	}
	return cli.Exit(fmt.Sprintf("%s: %v", prefix, err), exitCodeFor(err))
}
