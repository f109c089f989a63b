// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"taskboard/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Ids are assigned sequentially ("1", "2", ...) unless NextID is set.
type FakeService struct {
	mu    sync.Mutex
	tasks []service.Task
	seq   int

	// NextID overrides id assignment on create.
	NextID func() string

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	calls map[string]int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{calls: make(map[string]int)}
}

// AddTask seeds a task. The task keeps its id.
func (f *FakeService) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	if n, err := strconv.Atoi(t.ID); err == nil && n > f.seq {
		f.seq = n
	}
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns how many times the named method ran ("ListTasks", ...).
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of store calls of any kind.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *FakeService) count(method string) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if draft.ID != "" {
		return service.Task{}, fmt.Errorf("create: draft carries id %q", draft.ID)
	}

	if f.NextID != nil {
		draft.ID = f.NextID()
	} else {
		f.seq++
		draft.ID = strconv.Itoa(f.seq)
	}
	f.tasks = append(f.tasks, draft)
	return draft, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, task service.Task) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			task.ID = id
			f.tasks[i] = task
			return task, nil
		}
	}
	return service.Task{}, &service.Error{Op: "update", Kind: service.ErrNotFound, StatusCode: 404}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.Error{Op: "delete", Kind: service.ErrNotFound, StatusCode: 404}
}
