package board

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/notify"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func fillForm(s State, title, priority, status string) State {
	s = s.SetFormField(FieldTitle, title)
	s = s.SetFormField(FieldPriority, priority)
	return s.SetFormField(FieldStatus, status)
}

func TestPrepareCreate_RequiresThreeFields(t *testing.T) {
	cases := []struct {
		name                    string
		title, priority, status string
	}{
		{"no title", "", "high", "open"},
		{"no priority", "A", "", "open"},
		{"no status", "A", "high", ""},
		{"nothing", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := fillForm(State{}, tc.title, tc.priority, tc.status)
			_, err := s.PrepareCreate()
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestPrepareCreate_NoTrimming(t *testing.T) {
	s := fillForm(State{}, " ", " ", " ")
	op, err := s.PrepareCreate()
	require.NoError(t, err)
	assert.Equal(t, OpCreate, op.Kind)
	assert.Equal(t, " ", op.Task.Title)
}

func TestPrepareUpdate_DialogClosed(t *testing.T) {
	_, err := sampleState().PrepareUpdate()
	assert.ErrorIs(t, err, ErrDialogClosed)
}

func TestPrepareUpdate_KeyedBySnapshotID(t *testing.T) {
	s, err := sampleState().OpenDialog("2")
	require.NoError(t, err)
	s = s.SetDialogField(FieldTitle, "Y")

	op, err := s.PrepareUpdate()
	require.NoError(t, err)
	assert.Equal(t, OpUpdate, op.Kind)
	assert.Equal(t, "2", op.ID)
	assert.Equal(t, "Y", op.Task.Title)
	assert.Equal(t, "low", op.Task.Priority)
}

func TestRun_UnknownKind(t *testing.T) {
	r := Op{Kind: OpKind(99)}.Run(context.Background(), testutil.NewFakeService())
	assert.Error(t, r.Err)
}

func TestApply_Failure_LeavesStateAndSignalsOnce(t *testing.T) {
	boom := errors.New("boom")
	s, err := sampleState().OpenDialog("1")
	require.NoError(t, err)
	s = s.SetDialogField(FieldTitle, "working")
	s = fillForm(s, "pending", "p", "q")

	for _, kind := range []OpKind{OpLoad, OpCreate, OpUpdate, OpDelete} {
		t.Run(kind.String(), func(t *testing.T) {
			rec := &notify.Recorder{}
			got := s.Apply(Result{Op: Op{Kind: kind, ID: "1"}, Err: boom}, rec)

			assert.Equal(t, s, got)
			signals := rec.Signals()
			require.Len(t, signals, 1)
			assert.Equal(t, notify.KindFailure, signals[0].Kind)
			assert.Contains(t, signals[0].Message, "boom")
		})
	}
}

func TestApply_UpdateClosesOnlyMatchingDialog(t *testing.T) {
	s, err := sampleState().OpenDialog("2")
	require.NoError(t, err)

	rec := &notify.Recorder{}
	got := s.Apply(Result{
		Op:   Op{Kind: OpUpdate, ID: "1"},
		Task: service.Task{ID: "1", Title: "late"},
	}, rec)

	assert.True(t, got.Dialog.Open, "a late response for another task keeps the dialog")
	assert.Equal(t, "late", got.Tasks[0].Title)
}

func TestApply_LoadIsSilent(t *testing.T) {
	rec := &notify.Recorder{}
	got := State{}.Apply(Result{Op: Op{Kind: OpLoad}, Tasks: sampleState().Tasks}, rec)

	assert.True(t, got.Loaded)
	assert.Equal(t, sampleState().Tasks, got.Tasks)
	assert.Empty(t, rec.Signals())
}

func TestApply_LastResponseWins(t *testing.T) {
	s := sampleState()
	rec := &notify.Recorder{}

	first := Result{Op: Op{Kind: OpUpdate, ID: "1"}, Task: service.Task{ID: "1", Title: "first"}}
	second := Result{Op: Op{Kind: OpUpdate, ID: "1"}, Task: service.Task{ID: "1", Title: "second"}}

	s = s.Apply(second, rec)
	s = s.Apply(first, rec)
	assert.Equal(t, "first", s.Tasks[0].Title)
}

func TestReject(t *testing.T) {
	rec := &notify.Recorder{}
	_, err := State{}.PrepareCreate()
	Reject(rec, err)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Signal{Kind: notify.KindFailure, Message: MsgFillFields}, last)

	rec.Reset()
	Reject(rec, ErrDialogClosed)
	last, _ = rec.Last()
	assert.Equal(t, ErrDialogClosed.Error(), last.Message)
}

func TestFailureMessage(t *testing.T) {
	err := errors.New("x")
	assert.Equal(t, "Failed to load tasks: x", FailureMessage(OpLoad, err))
	assert.Equal(t, "Failed to create task: x", FailureMessage(OpCreate, err))
	assert.Equal(t, "Failed to update task: x", FailureMessage(OpUpdate, err))
	assert.Equal(t, "Failed to delete task: x", FailureMessage(OpDelete, err))
}

func TestRun_CreateWithoutIDFails(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.NextID = func() string { return "" }
	var rec notify.Recorder

	s := fillForm(State{Loaded: true}, "A", "high", "open")
	op, err := s.PrepareCreate()
	require.NoError(t, err)

	r := op.Run(context.Background(), svc)
	assert.ErrorIs(t, r.Err, service.ErrServer)
	assert.ErrorIs(t, r.Err, service.ErrMissingID)

	next := s.Apply(r, &rec)
	assert.Empty(t, next.Tasks)
	assert.Equal(t, "A", next.Form.Title, "form kept for retry")
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.KindFailure, last.Kind)
	assert.Equal(t, "Failed to create task: create: server error: response has no id", last.Message)
}
