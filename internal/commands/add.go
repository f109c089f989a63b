package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/notify"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command: it fills the creation form from flags
// and submits it.
type AddCmd struct {
	draft board.Draft
}

// SetDraft sets the form input (for testing).
func (c *AddCmd) SetDraft(d board.Draft) {
	c.draft = d
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [common flags] --title <t> --priority <p> --status <s> [--description <d>] [--created <date>] [--due <date>]"
}
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.draft.Title, "title", "", "")
	fs.StringVar(&c.draft.Title, "t", "", "")
	fs.StringVar(&c.draft.Description, "description", "", "")
	fs.StringVar(&c.draft.Priority, "priority", "", "")
	fs.StringVar(&c.draft.Status, "status", "", "")
	fs.StringVar(&c.draft.CreatedDate, "created", "", "")
	fs.StringVar(&c.draft.DueDate, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The presence check needs no tasks, so a bad form never reaches the service.
	if _, err := (board.State{Form: c.draft}).PrepareCreate(); err != nil {
		board.Reject(notify.NewWriter(out, errOut, cfg.Quiet), err)
		return exitFor(err)
	}

	b, code := openBoard(ctx, cfg, svc, out, errOut)
	if code != exitcode.Success {
		return code
	}

	for _, f := range board.Fields {
		b.SetFormField(f, c.draft.Get(f))
	}
	if err := b.SubmitForm(ctx); err != nil {
		return exitFor(err)
	}

	if !cfg.Quiet {
		tasks := b.State().Tasks
		output.FormatCard(out, len(tasks), tasks[len(tasks)-1])
	}
	return exitcode.Success
}
