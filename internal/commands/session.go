package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/notify"
	"taskboard/internal/service"
)

// openBoard loads the collection into a new controller whose notifications
// go to out/errOut. On failure the returned exit code is non-zero.
func openBoard(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) (*board.Controller, int) {
	sink := notify.NewWriter(out, errOut, cfg.Quiet)
	c := board.NewController(svc, sink, slog.Default())
	if err := c.Load(ctx); err != nil {
		return nil, exitFor(err)
	}
	return c, exitcode.Success
}

// exitFor maps an operation error to an exit code.
func exitFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, board.ErrNoSuchTask),
		errors.Is(err, board.ErrDialogClosed):
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}
