package weekly

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/utils"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	subjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	typeStyles = map[models.ActivityType]lipgloss.Style{
		models.ActivityStudy:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.ActivityReview:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.ActivityPractice: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Schedule *models.WeeklySchedule
	// cursor indexes the schedule's items flattened across days.
	cursor int
	width  int
	height int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Schedule == nil {
		return mutedStyle.Render("No study plan yet. Press 'g' to generate.")
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetSchedule shows schedule, keeping the cursor when it is still in range.
func (m *Model) SetSchedule(schedule models.WeeklySchedule) {
	m.Schedule = &schedule
	if m.cursor >= m.itemCount() {
		m.cursor = 0
		m.viewport.GotoTop()
	}
	m.Render()
}

func (m Model) itemCount() int {
	if m.Schedule == nil {
		return 0
	}
	n := 0
	for _, day := range m.Schedule.Days {
		n += len(day.Items)
	}
	return n
}

func (m *Model) MoveNext() {
	if m.cursor < m.itemCount()-1 {
		m.cursor++
		m.Render()
	}
}

func (m *Model) MovePrev() {
	if m.cursor > 0 {
		m.cursor--
		m.Render()
	}
}

// Selected returns the day index, item index and item under the cursor.
func (m Model) Selected() (int, int, models.ScheduleItem, bool) {
	if m.Schedule == nil {
		return 0, 0, models.ScheduleItem{}, false
	}
	n := m.cursor
	for d, day := range m.Schedule.Days {
		if n < len(day.Items) {
			return d, n, day.Items[n], true
		}
		n -= len(day.Items)
	}
	return 0, 0, models.ScheduleItem{}, false
}

func (m *Model) Render() {
	if m.Schedule == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	line, cursorLine, flat := 0, 0, 0
	writeLine := func(s string) {
		b.WriteString(s + "\n")
		line++
	}

	for _, day := range m.Schedule.Days {
		writeLine(fmt.Sprintf("%s %s", dayStyle.Render(day.Day),
			mutedStyle.Render(utils.FormatDuration(day.TotalMinutes()))))
		if len(day.Items) == 0 {
			writeLine(mutedStyle.Render("  nothing scheduled"))
		}
		for _, item := range day.Items {
			marker, subject := "  ", subjectStyle.Render(item.Subject)
			if flat == m.cursor {
				marker, subject = cursorStyle.Render("> "), cursorStyle.Render(item.Subject)
				cursorLine = line
			}
			span := utils.FormatMinutes(item.Start) + " - " + utils.FormatMinutes(item.End())
			writeLine(fmt.Sprintf("%s%s %s %s", marker,
				timeStyle.Render(span),
				subject,
				typeStyles[item.Type].Render(string(item.Type))))
			flat++
		}
		writeLine("")
	}

	writeLine(dayStyle.Render("Per week"))
	for _, total := range m.Schedule.TotalsBySubject() {
		writeLine(fmt.Sprintf("  %s %s", timeStyle.Render(utils.FormatDuration(total.Minutes)), total.Subject))
	}
	m.viewport.SetContent(b.String())

	switch {
	case cursorLine < m.viewport.YOffset:
		m.viewport.SetYOffset(cursorLine)
	case m.viewport.Height > 0 && cursorLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}
