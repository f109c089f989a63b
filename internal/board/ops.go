package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/notify"
	"taskboard/internal/service"
)

// Notification texts.
const (
	MsgCreated    = "Task created successfully"
	MsgUpdated    = "Task updated successfully"
	MsgDeleted    = "Task deleted successfully"
	MsgFillFields = "Please fill out both fields"
)

// ErrDialogClosed is returned when committing with no task selected.
var ErrDialogClosed = errors.New("edit dialog is not open")

var validate = validator.New()

// OpKind identifies a store operation.
type OpKind int

const (
	OpLoad OpKind = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpLoad:
		return "load"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one pending store call, captured from the state when it was issued.
type Op struct {
	Kind OpKind
	ID   string       // update and delete
	Task service.Task // create (no id) and update (full record)
}

// Result is the outcome of running an Op.
type Result struct {
	Op    Op
	Task  service.Task   // create and update
	Tasks []service.Task // load
	Err   error
}

// PrepareLoad returns the initial list fetch.
func (s State) PrepareLoad() Op {
	return Op{Kind: OpLoad}
}

// PrepareCreate checks the form and returns the create call for it.
// The error wraps service.ErrValidation when a required field is empty.
func (s State) PrepareCreate() (Op, error) {
	if err := checkRequired("create", s.Form); err != nil {
		return Op{}, err
	}
	return Op{Kind: OpCreate, Task: s.Form.Task("")}, nil
}

// PrepareUpdate checks the working copy and returns the update call for it,
// keyed by the id the dialog was opened with.
func (s State) PrepareUpdate() (Op, error) {
	if !s.Dialog.Open {
		return Op{}, ErrDialogClosed
	}
	w := s.Dialog.Working
	if err := checkRequired("update", DraftOf(w)); err != nil {
		return Op{}, err
	}
	return Op{Kind: OpUpdate, ID: w.ID, Task: w}, nil
}

// PrepareDelete returns the delete call for id. No confirmation is involved.
func (s State) PrepareDelete(id string) Op {
	return Op{Kind: OpDelete, ID: id}
}

// checkRequired enforces presence of title, priority and status.
// Values are not trimmed: a single space counts as filled.
func checkRequired(op string, d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &service.Error{Op: op, Kind: service.ErrValidation, Err: err}
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &service.Error{
		Op:   op,
		Kind: service.ErrValidation,
		Err:  fmt.Errorf("missing %s", strings.Join(missing, ", ")),
	}
}

// Run performs the single store call for op.
func (op Op) Run(ctx context.Context, svc service.Service) Result {
	r := Result{Op: op}
	switch op.Kind {
	case OpLoad:
		r.Tasks, r.Err = svc.ListTasks(ctx)
	case OpCreate:
		r.Task, r.Err = svc.CreateTask(ctx, op.Task.Draft())
		if r.Err == nil && r.Task.ID == "" {
			r.Err = &service.Error{Op: "create", Kind: service.ErrServer, Err: service.ErrMissingID}
		}
	case OpUpdate:
		r.Task, r.Err = svc.UpdateTask(ctx, op.ID, op.Task)
		if r.Err == nil && r.Task.ID == "" {
			r.Err = &service.Error{Op: "update", Kind: service.ErrServer, Err: service.ErrMissingID}
		}
	case OpDelete:
		r.Err = svc.DeleteTask(ctx, op.ID)
	default:
		r.Err = fmt.Errorf("unknown operation: %v", op.Kind)
	}
	return r
}

// Apply folds a finished operation into the state. Every failure and every
// successful create, update or delete signals sink exactly once; a successful
// load is silent. Tasks, form and dialog change only on the success path; on
// failure the state is returned untouched.
func (s State) Apply(r Result, sink notify.Sink) State {
	if r.Err != nil {
		sink.Failure(FailureMessage(r.Op.Kind, r.Err))
		return s
	}

	switch r.Op.Kind {
	case OpLoad:
		s.Tasks = appendTasks(nil, r.Tasks)
		s.Loaded = true
	case OpCreate:
		s.Tasks = appendTask(s.Tasks, r.Task)
		s = s.ResetForm()
		sink.Success(MsgCreated)
	case OpUpdate:
		s.Tasks = replaceTask(s.Tasks, r.Op.ID, r.Task)
		if s.Dialog.Open && s.Dialog.Working.ID == r.Op.ID {
			s = s.CancelDialog()
		}
		sink.Success(MsgUpdated)
	case OpDelete:
		s.Tasks = removeTask(s.Tasks, r.Op.ID)
		sink.Success(MsgDeleted)
	}
	return s
}

// Reject signals a failure that stopped an operation before it was issued.
func Reject(sink notify.Sink, err error) {
	if errors.Is(err, service.ErrValidation) {
		sink.Failure(MsgFillFields)
		return
	}
	sink.Failure(err.Error())
}

// FailureMessage is the text shown when a store call fails.
func FailureMessage(kind OpKind, err error) string {
	switch kind {
	case OpLoad:
		return fmt.Sprintf("Failed to load tasks: %v", err)
	case OpCreate:
		return fmt.Sprintf("Failed to create task: %v", err)
	case OpUpdate:
		return fmt.Sprintf("Failed to update task: %v", err)
	case OpDelete:
		return fmt.Sprintf("Failed to delete task: %v", err)
	}
	return err.Error()
}

func appendTasks(dst, src []service.Task) []service.Task {
	out := make([]service.Task, 0, len(dst)+len(src))
	out = append(out, dst...)
	return append(out, src...)
}
