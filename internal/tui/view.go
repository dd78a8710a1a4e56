package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/validation"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateTrainer:
		content = m.viewTrainer()
	case constants.StateRoutine:
		content = m.viewRoutine()
	default:
		content = m.form.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	current := m.state
	if !m.onTab() {
		current = m.previousState
	}

	var tabs []string
	for i, title := range []string{"AI Trainer", "Routine Planner"} {
		if current == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTrainer() string {
	left := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Subjects"),
		m.subjectList.View(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Weekly Plan"),
		m.weeklyModel.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	return joinConflicts(body, m.trainerConflicts)
}

func (m Model) viewRoutine() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Exams") + "\n")
	if len(m.exams) == 0 {
		b.WriteString(statusStyle.Render("No exams. Press 'x' to add one.") + "\n")
	}
	for _, exam := range m.exams {
		line := fmt.Sprintf("%s  %s  %dd", exam.Name, exam.Date, exam.DaysUntil)
		if exam.WithinWindow() {
			line = bannerStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		b.String(),
		sectionStyle.Render("Daily Routine"),
		m.routineModel.View(),
	)
	return joinConflicts(body, m.routineConflicts)
}

func joinConflicts(body string, conflicts []validation.Conflict) string {
	if len(conflicts) == 0 {
		return body
	}
	lines := []string{body, ""}
	for _, c := range conflicts {
		lines = append(lines, warningStyle.Render("⚠ "+c.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewStatus() string {
	switch {
	case m.formError != "":
		return dangerStyle.Render(m.formError)
	case m.generating():
		return m.spinner.View() + " Generating..."
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	return ""
}
