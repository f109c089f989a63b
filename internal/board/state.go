// Package board holds the task board view state and the transitions that
// drive it: the creation form, the card list, and the edit dialog.
//
// State is a plain value. Transitions take a State and return a new one
// without I/O; network work is expressed as an Op that the caller runs and
// feeds back through State.Apply.
package board

import (
	"errors"
	"fmt"
	"strings"

	"taskboard/internal/service"
)

// ErrNoSuchTask is returned when an id is not in the collection.
var ErrNoSuchTask = errors.New("no such task")

// Field names one editable task attribute.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldPriority
	FieldStatus
	FieldCreatedDate
	FieldDueDate
)

// Fields lists the editable fields in form order.
var Fields = []Field{
	FieldTitle,
	FieldDescription,
	FieldPriority,
	FieldStatus,
	FieldCreatedDate,
	FieldDueDate,
}

var fieldNames = [...]string{"title", "description", "priority", "status", "createdDate", "dueDate"}
var fieldLabels = [...]string{"Title", "Description", "Priority", "Status", "Created Date", "Due Date"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label is the human-readable field name shown on cards and inputs.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return f.String()
	}
	return fieldLabels[f]
}

// IsDate reports whether the field holds a date.
func (f Field) IsDate() bool {
	return f == FieldCreatedDate || f == FieldDueDate
}

// ParseField looks up a field by its name (case-insensitive).
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field: %s", name)
}

// Draft holds pending input for the six mutable task fields.
type Draft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"required"`
	Status      string `json:"status" validate:"required"`
	CreatedDate string `json:"createdDate"`
	DueDate     string `json:"dueDate"`
}

// DraftOf copies the mutable fields of t.
func DraftOf(t service.Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		CreatedDate: t.CreatedDate,
		DueDate:     t.DueDate,
	}
}

// Task builds a task record from the draft with the given id.
func (d Draft) Task(id string) service.Task {
	return service.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Status:      d.Status,
		CreatedDate: d.CreatedDate,
		DueDate:     d.DueDate,
	}
}

// Get returns the value of field f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldDescription:
		return d.Description
	case FieldPriority:
		return d.Priority
	case FieldStatus:
		return d.Status
	case FieldCreatedDate:
		return d.CreatedDate
	case FieldDueDate:
		return d.DueDate
	}
	return ""
}

// With returns a copy of d with field f set to v.
func (d Draft) With(f Field, v string) Draft {
	switch f {
	case FieldTitle:
		d.Title = v
	case FieldDescription:
		d.Description = v
	case FieldPriority:
		d.Priority = v
	case FieldStatus:
		d.Status = v
	case FieldCreatedDate:
		d.CreatedDate = v
	case FieldDueDate:
		d.DueDate = v
	}
	return d
}

// Dialog is the edit dialog. When Open, Working is a copy of the selected
// task that edits mutate until it is committed or cancelled.
type Dialog struct {
	Open    bool         `json:"open"`
	Working service.Task `json:"working"`
}

// State is the whole view state of the board.
type State struct {
	Tasks  []service.Task `json:"tasks"`
	Form   Draft          `json:"form"`
	Dialog Dialog         `json:"dialog"`
	Loaded bool           `json:"loaded"`
}

// Index returns the position of the task with the given id, or -1.
func (s State) Index(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Task returns the task with the given id.
func (s State) Task(id string) (service.Task, bool) {
	if i := s.Index(id); i >= 0 {
		return s.Tasks[i], true
	}
	return service.Task{}, false
}

// SetFormField edits one pending input of the creation form.
func (s State) SetFormField(f Field, v string) State {
	s.Form = s.Form.With(f, v)
	return s
}

// ResetForm clears all pending inputs.
func (s State) ResetForm() State {
	s.Form = Draft{}
	return s
}

// OpenDialog selects the task with the given id for editing.
// The working copy is a field-by-field copy of the listed task.
func (s State) OpenDialog(id string) (State, error) {
	t, ok := s.Task(id)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrNoSuchTask, id)
	}
	s.Dialog = Dialog{Open: true, Working: t}
	return s, nil
}

// SetDialogField edits the working copy. It does nothing when the dialog is closed.
func (s State) SetDialogField(f Field, v string) State {
	if !s.Dialog.Open {
		return s
	}
	d := DraftOf(s.Dialog.Working).With(f, v)
	s.Dialog.Working = d.Task(s.Dialog.Working.ID)
	return s
}

// CancelDialog discards the working copy and closes the dialog.
func (s State) CancelDialog() State {
	s.Dialog = Dialog{}
	return s
}

// appendTask returns a new slice with t added last.
func appendTask(tasks []service.Task, t service.Task) []service.Task {
	out := make([]service.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

// replaceTask returns a new slice with the entry matching id replaced by t.
// Position is kept. The result is a copy even when nothing matches.
func replaceTask(tasks []service.Task, id string, t service.Task) []service.Task {
	out := make([]service.Task, len(tasks))
	for i, cur := range tasks {
		if cur.ID == id {
			out[i] = t
		} else {
			out[i] = cur
		}
	}
	return out
}

// removeTask returns a new slice without the entry matching id.
func removeTask(tasks []service.Task, id string) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, cur := range tasks {
		if cur.ID != id {
			out = append(out, cur)
		}
	}
	return out
}
