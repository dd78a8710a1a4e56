package routine

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
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	typeStyles = map[models.BlockType]lipgloss.Style{
		models.BlockStudy:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.BlockBreak:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.BlockSleep:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		models.BlockExercise: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.BlockLeisure:  lipgloss.NewStyle().Foreground(lipgloss.Color("219")),
	}

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// headerLines is the number of lines Render writes above the first block.
const headerLines = 2

type Model struct {
	viewport viewport.Model
	Routine  *models.Routine
	cursor   int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) View() string {
	if m.Routine == nil {
		return mutedStyle.Render("No routine yet. Press 'g' to generate.")
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

// SetRoutine shows r, keeping the cursor when it is still in range.
func (m *Model) SetRoutine(r models.Routine) {
	m.Routine = &r
	if m.cursor >= len(r.Blocks) {
		m.cursor = 0
	}
	m.Render()
}

func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.Render()
	}
}

func (m *Model) MoveDown() {
	if m.Routine != nil && m.cursor < len(m.Routine.Blocks)-1 {
		m.cursor++
		m.Render()
	}
}

func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the block under the cursor.
func (m Model) Selected() (models.TimeBlock, bool) {
	if m.Routine == nil || m.cursor >= len(m.Routine.Blocks) {
		return models.TimeBlock{}, false
	}
	return m.Routine.Blocks[m.cursor], true
}

func (m *Model) Render() {
	if m.Routine == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder
	header := fmt.Sprintf("Study %s  Leisure %gh", utils.FormatDuration(m.Routine.StudyMinutes()), m.Routine.LeisureHours)
	if m.Routine.ExamAdjusted {
		header += "  " + badgeStyle.Render("EXAM MODE")
	}
	b.WriteString(header + "\n\n")

	for i, block := range m.Routine.Blocks {
		marker := "  "
		activity := activityStyle.Render(block.Activity)
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
			activity = cursorStyle.Render(block.Activity)
		}
		span := utils.FormatMinutes(block.Start) + " - " + utils.FormatMinutes(block.End)
		fmt.Fprintf(&b, "%s%s %s %s %s\n",
			marker,
			timeStyle.Render(span),
			activity,
			typeStyles[block.Type].Render(string(block.Type)),
			mutedStyle.Render(utils.FormatDuration(block.DurationMin())))
	}
	m.viewport.SetContent(b.String())

	line := headerLines + m.cursor
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case m.viewport.Height > 0 && line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
