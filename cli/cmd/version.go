package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/tagstream/cli/render"
	"github.com/pithecene-io/tagstream/featuregen"
	"github.com/pithecene-io/tagstream/types"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version      string   `json:"version"`
	Commit       string   `json:"commit"`
	FrameVersion string   `json:"frame_version"`
	Generators   []string `json:"generators"`
}

// VersionCommand returns the version command.
// It must not open a corpus.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  ReadOnlyFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		r, err := render.NewRenderer(c)
		if err != nil {
			return err
		}

		resp := VersionResponse{
			Version:      types.Version,
			Commit:       commit,
			FrameVersion: types.FrameVersion,
			Generators:   featuregen.Names(),
		}

		return r.Render(resp)
	}
}
