package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. Usage lines come from the registry.
type HelpCmd struct {
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  taskboard")
	fmt.Fprintln(out, "      List all tasks")
	for _, cmd := range reg.All() {
		fmt.Fprintf(out, "  %s\n", cmd.Usage())
		line := "      " + cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
<n> is the card number shown by list. Dates are sent as typed.

Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the API root (collection is <url>/Tasks)
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
