package cmd

import (
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/tagstream/cli/config"
	"github.com/pithecene-io/tagstream/cli/render"
	"github.com/pithecene-io/tagstream/training"
)

// ParamsRow is one resolved parameter group.
type ParamsRow struct {
	Group       string `json:"group"`
	Algorithm   string `json:"algorithm"`
	Iterations  int    `json:"iterations"`
	Cutoff      int    `json:"cutoff"`
	Threads     int    `json:"threads"`
	DataIndexer string `json:"data_indexer"`
}

// ParamsFlags returns the flags that select training parameters.
func ParamsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "params",
			Usage: "Training parameters file (YAML)",
		},
		&cli.IntFlag{
			Name:  "iterations",
			Usage: "Iterations when no parameters file is given",
			Value: training.DefaultIterations,
		},
		&cli.IntFlag{
			Name:  "cutoff",
			Usage: "Cutoff when no parameters file is given",
			Value: training.DefaultCutoff,
		},
	}
}

// ParamsCommand returns the params command.
// It resolves and validates training parameters without touching a corpus.
func ParamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "Validate and show resolved training parameters",
		Flags: slices.Concat([]cli.Flag{ConfigFlag}, ParamsFlags(), ReadOnlyFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:  "parser-type",
				Usage: "Show the stages of a parser: CHUNKING or TREEINSERT",
			},
		}),
		Action: paramsAction,
	}
}

func paramsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	params, err := loadParams(c, cfg)
	if err != nil {
		return err
	}

	groups := params.StageNames()
	if c.IsSet("parser-type") {
		pt, err := training.ParseParserType(c.String("parser-type"))
		if err != nil {
			return cli.Exit(err.Error(), exitConfigError)
		}
		if err := params.ValidateParser(pt); err != nil {
			return cli.Exit(err.Error(), exitConfigError)
		}
		groups = training.ParserStages(pt)
	}

	rows := []ParamsRow{paramsRow("defaults", params.Defaults)}
	for _, stage := range groups {
		rows = append(rows, paramsRow(stage, params.Settings(stage)))
	}
	return r.Render(rows)
}

// loadParams reads the parameters file named by flag or config, or builds
// defaults from --iterations/--cutoff. The result is validated.
func loadParams(c *cli.Context, cfg *config.Config) (*training.Parameters, error) {
	path := resolveString(c, "params", configVal(cfg, func(c *config.Config) string { return c.Params }))

	var params *training.Parameters
	if path == "" {
		params = training.DefaultParameters(c.Int("iterations"), c.Int("cutoff"))
	} else {
		p, err := training.LoadParameters(path)
		if err != nil {
			return nil, cli.Exit(err.Error(), exitConfigError)
		}
		params = p
	}
	if err := params.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), exitConfigError)
	}
	return params, nil
}

func paramsRow(group string, s training.Settings) ParamsRow {
	return ParamsRow{
		Group:       group,
		Algorithm:   string(s.Algorithm),
		Iterations:  s.Iterations,
		Cutoff:      s.Cutoff,
		Threads:     s.Threads,
		DataIndexer: string(s.DataIndexer),
	}
}
