package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: it opens the edit dialog on a card,
// applies the given flags to the working copy, and commits it.
type EditCmd struct {
	changes map[board.Field]string
}

// Set records a field change (for testing).
func (c *EditCmd) Set(f board.Field, v string) {
	if c.changes == nil {
		c.changes = make(map[board.Field]string)
	}
	c.changes[f] = v
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Update a task" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [common flags] [--title <t>] [--description <d>] [--priority <p>] [--status <s>] [--created <date>] [--due <date>] <n>"
}
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.changes = make(map[board.Field]string)
	names := map[board.Field]string{
		board.FieldTitle:       "title",
		board.FieldDescription: "description",
		board.FieldPriority:    "priority",
		board.FieldStatus:      "status",
		board.FieldCreatedDate: "created",
		board.FieldDueDate:     "due",
	}
	for f, name := range names {
		fs.Func(name, "", func(v string) error {
			c.Set(f, v)
			return nil
		})
	}
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	num, err := ParseCardRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(c.changes) == 0 {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	b, code := openBoard(ctx, cfg, svc, out, errOut)
	if code != exitcode.Success {
		return code
	}

	task, err := cardByNumber(b.State().Tasks, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := b.OpenDialog(task.ID); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	for _, f := range board.Fields {
		if v, ok := c.changes[f]; ok {
			b.SetDialogField(f, v)
		}
	}
	if err := b.CommitDialog(ctx); err != nil {
		return exitFor(err)
	}

	if !cfg.Quiet {
		updated := b.State().Tasks[num-1]
		output.FormatCard(out, num, updated)
	}
	return exitcode.Success
}
