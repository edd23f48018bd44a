// Package cmd provides CLI commands for the tagstream binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared output flags.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// ConfigFlag points at a tagstream.yaml file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to tagstream.yaml (flags override config values)",
		EnvVars: []string{"TAGSTREAM_CONFIG"},
	}
)

// ReadOnlyFlags returns the shared flags for commands that only render.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
	}
}

// CorpusFlags returns the flags that locate a corpus and configure the
// event stream over it. Every value can also come from the config file.
func CorpusFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		&cli.StringFlag{
			Name:  "corpus",
			Usage: "Corpus to read: file path (fs), object key (s3), or - for stdin",
		},
		&cli.StringFlag{
			Name:  "corpus-format",
			Usage: "Corpus format: annotated or frame",
			Value: "annotated",
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "Override type for untyped spans",
			Value: "default",
		},
		&cli.StringFlag{
			Name:  "generator",
			Usage: "Feature set: default or tokens",
			Value: "default",
		},
		&cli.IntFlag{
			Name:  "window-before",
			Usage: "Additional-context window before each token",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "window-after",
			Usage: "Additional-context window after each token",
			Value: 8,
		},
		// Storage flags
		&cli.StringFlag{
			Name:  "storage-backend",
			Usage: "Corpus storage backend: fs or s3",
			Value: "fs",
		},
		&cli.StringFlag{
			Name:  "storage-path",
			Usage: "Storage root (fs: directory, s3: bucket/prefix)",
		},
		&cli.StringFlag{
			Name:  "storage-region",
			Usage: "AWS region for S3 backend (optional, uses default chain)",
		},
		&cli.StringFlag{
			Name:  "storage-endpoint",
			Usage: "Custom S3 endpoint URL for S3-compatible providers",
		},
		&cli.BoolFlag{
			Name:  "storage-s3-path-style",
			Usage: "Force path-style S3 addressing",
		},
		// Run flags
		&cli.StringFlag{
			Name:  "run-id",
			Usage: "Run ID attached to logs and notifications (default: random UUID)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: "warn",
		},
	}
}
