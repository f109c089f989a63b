package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/notify"
	"taskboard/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	activeLabelStyle = labelStyle.
				Foreground(lipgloss.Color("205")).
				Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("205"))

	cardTitleStyle = lipgloss.NewStyle().Bold(true)

	cardFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	successToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("42")).
				Padding(0, 1)

	failureToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("160")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	if m.state.Dialog.Open {
		s.WriteString(m.dialogView())
	} else {
		s.WriteString(m.formView())
		s.WriteString("\n")
		s.WriteString(m.listView())
	}
	s.WriteString("\n")
	if toasts := m.toastView(); toasts != "" {
		s.WriteString(toasts)
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render(m.helpView()))
	s.WriteString("\n")
	return s.String()
}

func (m *Model) formView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Create New Task"))
	s.WriteString("\n")
	s.WriteString(inputsView(m.form, m.focus == focusForm, m.formField))
	return s.String()
}

func (m *Model) dialogView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Update Task"))
	s.WriteString("\n")
	s.WriteString(inputsView(m.dialog, true, m.dialogField))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("[esc] Cancel   [enter] Update"))
	return dialogStyle.Render(s.String())
}

func inputsView(inputs []textinput.Model, active bool, current int) string {
	var s strings.Builder
	for i, f := range board.Fields {
		style := labelStyle
		if active && i == current {
			style = activeLabelStyle
		}
		s.WriteString(style.Render(f.Label()))
		s.WriteString(inputs[i].View())
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) listView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("All Task List"))
	s.WriteString("\n")

	switch {
	case !m.state.Loaded && m.pending > 0:
		s.WriteString(helpStyle.Render("Loading..."))
		s.WriteString("\n")
		return s.String()
	case len(m.state.Tasks) == 0:
		s.WriteString(helpStyle.Render("no tasks found"))
		s.WriteString("\n")
		return s.String()
	}

	for i, task := range m.state.Tasks {
		style := cardStyle
		if m.focus == focusList && i == m.cursor {
			style = selectedCardStyle
		}
		if m.width > 4 {
			style = style.Width(m.width - 2)
		}
		s.WriteString(style.Render(cardView(task)))
		s.WriteString("\n")
	}
	return s.String()
}

// cardView renders the six display attributes of a task. The id is not shown.
func cardView(t service.Task) string {
	lines := []string{
		cardTitleStyle.Render("Title : " + t.Title),
		cardFieldStyle.Render("Description : " + t.Description),
		cardFieldStyle.Render("Priority : " + t.Priority),
		cardFieldStyle.Render("Status : " + t.Status),
		cardFieldStyle.Render("Created Date : " + t.CreatedDate),
		cardFieldStyle.Render("Due Date : " + t.DueDate),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) toastView() string {
	items := m.toasts.Items()
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, t := range items {
		style := successToastStyle
		if t.Kind == notify.KindFailure {
			style = failureToastStyle
		}
		lines = append(lines, style.Render(t.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpView() string {
	pending := ""
	if m.pending > 0 {
		pending = fmt.Sprintf(" • %d pending", m.pending)
	}
	switch m.focus {
	case focusDialog:
		return "tab: next field • enter: update • esc: cancel • ctrl+x: dismiss" + pending
	case focusList:
		return "↑/↓: select • e: edit • d: delete • tab: form • x: dismiss • q: quit" + pending
	default:
		return "tab: next field • enter: create • ctrl+x: dismiss • ctrl+c: quit" + pending
	}
}
