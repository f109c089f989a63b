// Package tui is the interactive task board: a creation form, the task
// cards, an edit dialog, and toast notifications.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/notify"
	"taskboard/internal/service"
)

type focusArea int

const (
	focusForm focusArea = iota
	focusList
	focusDialog
)

// resultMsg carries a finished store call back into the event loop.
type resultMsg board.Result

// Model is the bubbletea model of the board. All state changes happen in
// Update, so store results are applied one at a time in arrival order.
type Model struct {
	ctx    context.Context
	svc    service.Service
	state  board.State
	toasts *notify.Toasts

	form        []textinput.Model
	dialog      []textinput.Model
	focus       focusArea
	formField   int
	dialogField int
	cursor      int
	pending     int

	width    int
	quitting bool
}

// New creates a board model. Nothing is fetched until Init runs.
func New(ctx context.Context, svc service.Service) *Model {
	m := &Model{
		ctx:    ctx,
		svc:    svc,
		toasts: notify.NewToasts(notify.DefaultToastLimit),
		form:   newInputs(),
		dialog: newInputs(),
	}
	m.form[0].Focus()
	return m
}

func newInputs() []textinput.Model {
	inputs := make([]textinput.Model, len(board.Fields))
	for i, f := range board.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Label()
		if f.IsDate() {
			ti.Placeholder = "YYYY-MM-DD"
		}
		inputs[i] = ti
	}
	return inputs
}

// State returns the current view state.
func (m *Model) State() board.State {
	return m.state
}

// Toasts returns the visible notifications.
func (m *Model) Toasts() []notify.Toast {
	return m.toasts.Items()
}

// Pending returns how many store calls are in flight.
func (m *Model) Pending() int {
	return m.pending
}

// Init issues the initial list fetch.
func (m *Model) Init() tea.Cmd {
	return m.issue(m.state.PrepareLoad())
}

// issue runs op off the event loop and reports back with a resultMsg.
func (m *Model) issue(op board.Op) tea.Cmd {
	m.pending++
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return resultMsg(op.Run(ctx, svc))
	}
}

// Run starts the interactive board and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, svc service.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
