package board

import (
	"context"
	"log/slog"

	"taskboard/internal/notify"
	"taskboard/internal/service"
)

// Controller drives a State for sequential callers such as the one-shot
// commands. Each method issues at most one store call and waits for it.
// A Controller is not safe for concurrent use.
type Controller struct {
	svc   service.Service
	sink  notify.Sink
	log   *slog.Logger
	state State
}

// NewController creates a controller with an empty, unloaded state.
func NewController(svc service.Service, sink notify.Sink, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{svc: svc, sink: sink, log: log}
}

// State returns the current view state.
func (c *Controller) State() State {
	return c.state
}

// Load fetches the whole collection and replaces the listed tasks.
func (c *Controller) Load(ctx context.Context) error {
	return c.run(ctx, c.state.PrepareLoad())
}

// SetFormField edits one pending input of the creation form.
func (c *Controller) SetFormField(f Field, v string) {
	c.state = c.state.SetFormField(f, v)
}

// SubmitForm creates a task from the form. On a validation failure no call
// is made and the form is kept.
func (c *Controller) SubmitForm(ctx context.Context) error {
	op, err := c.state.PrepareCreate()
	if err != nil {
		c.log.Debug("create rejected", "error", err)
		Reject(c.sink, err)
		return err
	}
	return c.run(ctx, op)
}

// OpenDialog selects a listed task for editing.
func (c *Controller) OpenDialog(id string) error {
	s, err := c.state.OpenDialog(id)
	if err != nil {
		return err
	}
	c.state = s
	return nil
}

// SetDialogField edits the working copy of the open dialog.
func (c *Controller) SetDialogField(f Field, v string) {
	c.state = c.state.SetDialogField(f, v)
}

// CancelDialog closes the dialog without saving.
func (c *Controller) CancelDialog() {
	c.state = c.state.CancelDialog()
}

// CommitDialog sends the working copy as an update. The dialog stays open
// when validation or the call fails.
func (c *Controller) CommitDialog(ctx context.Context) error {
	op, err := c.state.PrepareUpdate()
	if err != nil {
		c.log.Debug("update rejected", "error", err)
		Reject(c.sink, err)
		return err
	}
	return c.run(ctx, op)
}

// Delete removes a task. The listed task is only dropped once the service
// confirms.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.run(ctx, c.state.PrepareDelete(id))
}

func (c *Controller) run(ctx context.Context, op Op) error {
	c.log.Debug("store call", "op", op.Kind.String(), "id", op.ID)
	r := op.Run(ctx, c.svc)
	if r.Err != nil {
		c.log.Debug("store call failed", "op", op.Kind.String(), "id", op.ID, "error", r.Err)
	}
	c.state = c.state.Apply(r, c.sink)
	return r.Err
}
