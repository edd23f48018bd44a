package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/tagstream/cli/config"
)

// loadConfig loads the file named by --config, or returns nil when unset.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return nil, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitConfigError)
	}
	return cfg, nil
}

// configVal reads a field from cfg, or the zero value when cfg is nil.
func configVal[T any](cfg *config.Config, get func(*config.Config) T) T {
	if cfg == nil {
		var zero T
		return zero
	}
	return get(cfg)
}

// resolveString applies precedence: explicit flag, then config value,
// then the flag default.
func resolveString(c *cli.Context, name, configValue string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	if configValue != "" {
		return configValue
	}
	return c.String(name)
}

// resolveInt is resolveString for int flags. A nil config value is unset.
func resolveInt(c *cli.Context, name string, configValue *int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	if configValue != nil {
		return *configValue
	}
	return c.Int(name)
}

// resolveBool is resolveString for bool flags.
func resolveBool(c *cli.Context, name string, configValue bool) bool {
	if c.IsSet(name) {
		return c.Bool(name)
	}
	return configValue || c.Bool(name)
}

// requireNonNegative rejects negative window radii.
func requireNonNegative(name string, v int) error {
	if v < 0 {
		return cli.Exit(fmt.Sprintf("--%s must be >= 0, got %d", name, v), exitConfigError)
	}
	return nil
}
