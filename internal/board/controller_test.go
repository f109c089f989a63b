package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/board"
	"taskboard/internal/logger"
	"taskboard/internal/notify"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

func newController(t *testing.T, svc *testutil.FakeService) (*board.Controller, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	c := board.NewController(svc, rec, logger.Discard())
	require.NoError(t, c.Load(context.Background()))
	rec.Reset()
	return c, rec
}

func fill(c *board.Controller, d board.Draft) {
	for _, f := range board.Fields {
		c.SetFormField(f, d.Get(f))
	}
}

func lastSignal(t *testing.T, rec *notify.Recorder) notify.Signal {
	t.Helper()
	s, ok := rec.Last()
	require.True(t, ok, "expected a notification")
	return s
}

func TestLoad_PopulatesInServiceOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "b", Title: "second?"})
	svc.AddTask(service.Task{ID: "a", Title: "first?"})

	c, _ := newController(t, svc)

	st := c.State()
	assert.True(t, st.Loaded)
	require.Len(t, st.Tasks, 2)
	assert.Equal(t, "b", st.Tasks[0].ID)
	assert.Equal(t, "a", st.Tasks[1].ID)
}

func TestLoad_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("connection refused")

	rec := &notify.Recorder{}
	c := board.NewController(svc, rec, logger.Discard())
	err := c.Load(context.Background())

	assert.Error(t, err)
	assert.False(t, c.State().Loaded)
	assert.Equal(t, notify.KindFailure, lastSignal(t, rec).Kind)
}

func TestSubmitForm_RoundTrip(t *testing.T) {
	svc := testutil.NewFakeService()
	c, rec := newController(t, svc)

	fill(c, board.Draft{
		Title:       "A",
		Description: "d",
		Priority:    "high",
		Status:      "open",
		CreatedDate: "2024-01-01",
		DueDate:     "2024-02-01",
	})
	require.NoError(t, c.SubmitForm(context.Background()))

	st := c.State()
	require.Len(t, st.Tasks, 1)
	assert.Equal(t, service.Task{
		ID:          "1",
		Title:       "A",
		Description: "d",
		Priority:    "high",
		Status:      "open",
		CreatedDate: "2024-01-01",
		DueDate:     "2024-02-01",
	}, st.Tasks[0])
	assert.Equal(t, board.Draft{}, st.Form, "form is reset")
	assert.Equal(t, notify.Signal{Kind: notify.KindSuccess, Message: board.MsgCreated}, lastSignal(t, rec))
}

func TestSubmitForm_EachCreateAppendsOne(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1", Title: "existing", Priority: "p", Status: "s"})
	c, _ := newController(t, svc)

	for i, title := range []string{"a", "b", "c"} {
		fill(c, board.Draft{Title: title, Priority: "p", Status: "s"})
		require.NoError(t, c.SubmitForm(context.Background()))

		st := c.State()
		require.Len(t, st.Tasks, i+2)
		assert.Equal(t, svc.Tasks()[i+1], st.Tasks[i+1], "new entry equals server record and is last")
		assert.Equal(t, "existing", st.Tasks[0].Title)
	}
}

func TestSubmitForm_ValidationMakesNoCall(t *testing.T) {
	cases := []board.Draft{
		{Priority: "p", Status: "s", Description: "keep"},
		{Title: "t", Status: "s"},
		{Title: "t", Priority: "p", DueDate: "2024-01-01"},
	}
	for _, d := range cases {
		svc := testutil.NewFakeService()
		svc.AddTask(service.Task{ID: "1", Title: "X", Priority: "p", Status: "s"})
		c, rec := newController(t, svc)
		callsBefore := svc.TotalCalls()
		tasksBefore := c.State().Tasks

		fill(c, d)
		err := c.SubmitForm(context.Background())

		assert.ErrorIs(t, err, service.ErrValidation)
		assert.Equal(t, callsBefore, svc.TotalCalls(), "no network call")
		assert.Equal(t, tasksBefore, c.State().Tasks)
		assert.Equal(t, d, c.State().Form, "pending input untouched")
		assert.Equal(t, notify.Signal{Kind: notify.KindFailure, Message: board.MsgFillFields}, lastSignal(t, rec))
	}
}

func TestSubmitForm_FailureKeepsForm(t *testing.T) {
	svc := testutil.NewFakeService()
	c, rec := newController(t, svc)
	svc.CreateTaskErr = &service.Error{Op: "create", Kind: service.ErrNetwork}

	d := board.Draft{Title: "A", Priority: "p", Status: "s"}
	fill(c, d)
	err := c.SubmitForm(context.Background())

	assert.ErrorIs(t, err, service.ErrNetwork)
	assert.Equal(t, d, c.State().Form)
	assert.Empty(t, c.State().Tasks)
	assert.Len(t, rec.Signals(), 1)
	assert.Equal(t, notify.KindFailure, lastSignal(t, rec).Kind)
}

func TestCommitDialog_Scenario(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1", Title: "X", Priority: "high", Status: "open"})
	c, rec := newController(t, svc)

	require.NoError(t, c.OpenDialog("1"))
	c.SetDialogField(board.FieldTitle, "Y")
	require.NoError(t, c.CommitDialog(context.Background()))

	st := c.State()
	assert.Equal(t, []service.Task{{ID: "1", Title: "Y", Priority: "high", Status: "open"}}, st.Tasks)
	assert.False(t, st.Dialog.Open)
	assert.Equal(t, notify.Signal{Kind: notify.KindSuccess, Message: board.MsgUpdated}, lastSignal(t, rec))
}

func TestCommitDialog_ReplacesExactlyOne(t *testing.T) {
	svc := testutil.NewFakeService()
	for _, id := range []string{"1", "2", "3"} {
		svc.AddTask(service.Task{ID: id, Title: "t" + id, Priority: "p", Status: "s"})
	}
	c, _ := newController(t, svc)
	before := c.State().Tasks

	require.NoError(t, c.OpenDialog("2"))
	c.SetDialogField(board.FieldStatus, "done")
	require.NoError(t, c.CommitDialog(context.Background()))

	after := c.State().Tasks
	require.Len(t, after, 3)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, "done", after[1].Status)
	assert.Equal(t, "2", after[1].ID)
}

func TestCommitDialog_ValidationKeepsDialogOpen(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1", Title: "X", Priority: "high", Status: "open"})
	c, rec := newController(t, svc)
	calls := svc.TotalCalls()

	require.NoError(t, c.OpenDialog("1"))
	c.SetDialogField(board.FieldPriority, "")
	err := c.CommitDialog(context.Background())

	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, calls, svc.TotalCalls())
	st := c.State()
	assert.True(t, st.Dialog.Open)
	assert.Equal(t, "", st.Dialog.Working.Priority)
	assert.Equal(t, "high", st.Tasks[0].Priority)
	assert.Equal(t, board.MsgFillFields, lastSignal(t, rec).Message)
}

func TestCommitDialog_FailureKeepsWorkingCopy(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1", Title: "X", Priority: "high", Status: "open"})
	c, rec := newController(t, svc)

	require.NoError(t, c.OpenDialog("1"))
	c.SetDialogField(board.FieldTitle, "Y")
	require.NoError(t, svc.DeleteTask(context.Background(), "1"))

	err := c.CommitDialog(context.Background())
	assert.ErrorIs(t, err, service.ErrNotFound)

	st := c.State()
	assert.True(t, st.Dialog.Open)
	assert.Equal(t, "Y", st.Dialog.Working.Title)
	assert.Equal(t, "X", st.Tasks[0].Title)
	assert.Equal(t, notify.KindFailure, lastSignal(t, rec).Kind)

	c.CancelDialog()
	assert.False(t, c.State().Dialog.Open)
}

func TestDelete_Scenario(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1"})
	svc.AddTask(service.Task{ID: "2"})
	c, rec := newController(t, svc)

	require.NoError(t, c.Delete(context.Background(), "1"))

	assert.Equal(t, []service.Task{{ID: "2"}}, c.State().Tasks)
	assert.Equal(t, notify.Signal{Kind: notify.KindSuccess, Message: board.MsgDeleted}, lastSignal(t, rec))
}

func TestDelete_KeepsRelativeOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	for _, id := range []string{"1", "2", "3", "4"} {
		svc.AddTask(service.Task{ID: id})
	}
	c, _ := newController(t, svc)

	require.NoError(t, c.Delete(context.Background(), "3"))

	var ids []string
	for _, task := range c.State().Tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"1", "2", "4"}, ids)
}

func TestDelete_FailureLeavesCollection(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: "1"})
	svc.AddTask(service.Task{ID: "2"})
	c, rec := newController(t, svc)
	before := c.State().Tasks

	svc.DeleteTaskErr = &service.Error{Op: "delete", Kind: service.ErrNetwork}
	err := c.Delete(context.Background(), "1")

	assert.ErrorIs(t, err, service.ErrNetwork)
	assert.Equal(t, before, c.State().Tasks)
	assert.Len(t, rec.Signals(), 1)
	assert.Equal(t, notify.KindFailure, lastSignal(t, rec).Kind)
}

func TestOpenDialog_UnknownTask(t *testing.T) {
	c, _ := newController(t, testutil.NewFakeService())
	assert.ErrorIs(t, c.OpenDialog("x"), board.ErrNoSuchTask)
}
