package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskboard` (no args) and `taskboard list`.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List all tasks as cards" }
func (c *ListCmd) Usage() string      { return "taskboard list [common flags]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	b, code := openBoard(ctx, cfg, svc, out, errOut)
	if code != exitcode.Success {
		return code
	}

	tasks := b.State().Tasks
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
		return exitcode.Success
	}

	output.FormatCards(out, tasks)
	return exitcode.Success
}
