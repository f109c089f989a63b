package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logger"
	"taskboard/internal/service"
	"taskboard/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the interactive board. While it runs, log output goes to
// the log file in the config directory under --debug and is dropped otherwise.
type UICmd struct {
	run func(ctx context.Context, svc service.Service) error
}

// SetRunner replaces the board runner (for testing).
func (c *UICmd) SetRunner(run func(ctx context.Context, svc service.Service) error) {
	c.run = run
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"board"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive board" }
func (c *UICmd) Usage() string      { return "taskboard ui [common flags]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	run := c.run
	if run == nil {
		run = tui.Run
	}
	logOut, closeLog := uiLogOutput(cfg)
	restore := logger.Redirect(logOut)
	err := run(ctx, svc)
	restore()
	closeLog()

	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

// uiLogOutput picks where logs go while the board owns the terminal.
func uiLogOutput(cfg *config.Config) (io.Writer, func()) {
	if !cfg.Debug {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
