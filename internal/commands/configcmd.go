package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string       { return "config" }
func (c *ConfigCmd) Aliases() []string  { return nil }
func (c *ConfigCmd) Synopsis() string   { return "Print the effective configuration" }
func (c *ConfigCmd) Usage() string      { return "taskboard config [common flags]" }
func (c *ConfigCmd) NeedsService() bool { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	file := cfg.FilePath()
	if !cfg.HasFile() {
		file += " (not found)"
	}
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}

	fmt.Fprintf(out, "config file: %s\n", file)
	fmt.Fprintf(out, "collection:  %s\n", cfg.CollectionURL())
	fmt.Fprintf(out, "timeout:     %s\n", timeout)
	fmt.Fprintf(out, "log level:   %s\n", cfg.LogLevel)
	return exitcode.Success
}
