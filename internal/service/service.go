// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task collection.
// All HTTP calls go through this interface.
// Commands and the TUI never talk to the transport directly.
type Service interface {
	// ListTasks returns every task in the collection, in service order.
	// There is no pagination.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task from draft. draft.ID is ignored; the
	// service assigns the id and the returned record is canonical.
	CreateTask(ctx context.Context, draft Task) (Task, error)

	// UpdateTask replaces all mutable fields of the task with the given id.
	// The full record is sent, never a partial patch.
	UpdateTask(ctx context.Context, id string, task Task) (Task, error)

	// DeleteTask removes the task with the given id.
	DeleteTask(ctx context.Context, id string) error
}
