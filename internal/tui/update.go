package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case resultMsg:
		return m, m.applyResult(board.Result(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.String() == "ctrl+x" {
			m.toasts.DismissOldest()
			return m, nil
		}
		switch m.focus {
		case focusDialog:
			return m, m.updateDialog(msg)
		case focusList:
			return m, m.updateList(msg)
		default:
			return m, m.updateForm(msg)
		}
	}
	return m, nil
}

func (m *Model) applyResult(r board.Result) tea.Cmd {
	m.pending--
	wasOpen := m.state.Dialog.Open
	m.state = m.state.Apply(r, m.toasts)

	if r.Err != nil {
		return nil
	}
	switch r.Op.Kind {
	case board.OpCreate:
		syncInputs(m.form, m.state.Form)
	case board.OpUpdate:
		if wasOpen && !m.state.Dialog.Open {
			return m.setFocus(focusList)
		}
	}
	m.clampCursor()
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		op, err := m.state.PrepareCreate()
		if err != nil {
			board.Reject(m.toasts, err)
			return nil
		}
		return m.issue(op)
	case "tab", "down":
		if m.formField == len(m.form)-1 {
			return m.setFocus(focusList)
		}
		return m.focusFormField(m.formField + 1)
	case "shift+tab", "up":
		if m.formField == 0 {
			return m.setFocus(focusList)
		}
		return m.focusFormField(m.formField - 1)
	}

	var cmd tea.Cmd
	m.form[m.formField], cmd = m.form[m.formField].Update(msg)
	m.state = m.state.SetFormField(board.Fields[m.formField], m.form[m.formField].Value())
	return cmd
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Tasks)-1 {
			m.cursor++
		}
	case "tab", "shift+tab", "n":
		return m.setFocus(focusForm)
	case "x":
		m.toasts.DismissOldest()
	case "e", "enter":
		task, ok := m.selected()
		if !ok {
			return nil
		}
		s, err := m.state.OpenDialog(task.ID)
		if err != nil {
			board.Reject(m.toasts, err)
			return nil
		}
		m.state = s
		syncInputs(m.dialog, board.DraftOf(s.Dialog.Working))
		m.dialogField = 0
		return m.setFocus(focusDialog)
	case "d":
		task, ok := m.selected()
		if !ok {
			return nil
		}
		return m.issue(m.state.PrepareDelete(task.ID))
	}
	return nil
}

func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.state = m.state.CancelDialog()
		return m.setFocus(focusList)
	case "enter":
		op, err := m.state.PrepareUpdate()
		if err != nil {
			board.Reject(m.toasts, err)
			return nil
		}
		return m.issue(op)
	case "tab", "down":
		return m.focusDialogField((m.dialogField + 1) % len(m.dialog))
	case "shift+tab", "up":
		return m.focusDialogField((m.dialogField + len(m.dialog) - 1) % len(m.dialog))
	}

	var cmd tea.Cmd
	m.dialog[m.dialogField], cmd = m.dialog[m.dialogField].Update(msg)
	m.state = m.state.SetDialogField(board.Fields[m.dialogField], m.dialog[m.dialogField].Value())
	return cmd
}

func (m *Model) setFocus(area focusArea) tea.Cmd {
	m.focus = area
	blurAll(m.form)
	blurAll(m.dialog)
	switch area {
	case focusForm:
		return m.form[m.formField].Focus()
	case focusDialog:
		return m.dialog[m.dialogField].Focus()
	}
	return nil
}

func (m *Model) focusFormField(i int) tea.Cmd {
	m.formField = i
	return m.setFocus(focusForm)
}

func (m *Model) focusDialogField(i int) tea.Cmd {
	m.dialogField = i
	return m.setFocus(focusDialog)
}

// selected returns the task under the card cursor.
func (m *Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Tasks) {
		return service.Task{}, false
	}
	return m.state.Tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Tasks) {
		m.cursor = len(m.state.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func blurAll(inputs []textinput.Model) {
	for i := range inputs {
		inputs[i].Blur()
	}
}

// syncInputs copies draft values into the inputs.
func syncInputs(inputs []textinput.Model, d board.Draft) {
	for i, f := range board.Fields {
		inputs[i].SetValue(d.Get(f))
	}
}
