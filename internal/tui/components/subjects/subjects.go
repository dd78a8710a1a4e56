package subjects

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/utils"
)

type Item struct {
	Subject models.Subject
}

func (i Item) Title() string { return i.Subject.Name }
func (i Item) Description() string {
	return fmt.Sprintf("%s priority | up to %s a day", i.Subject.Priority, utils.FormatDuration(i.Subject.Priority.DurationMin()))
}
func (i Item) FilterValue() string { return i.Subject.Name }

type Model struct {
	list list.Model
}

func New(subjects []models.Subject, width, height int) Model {
	l := list.New(toItems(subjects), list.NewDefaultDelegate(), width, height)
	l.Title = "Subjects"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return Model{list: l}
}

func toItems(subjects []models.Subject) []list.Item {
	items := make([]list.Item, len(subjects))
	for i, s := range subjects {
		items[i] = Item{Subject: s}
	}
	return items
}

// SetSubjects replaces the list, keeping the cursor in range.
func (m *Model) SetSubjects(subjects []models.Subject) {
	idx := m.list.Index()
	m.list.SetItems(toItems(subjects))
	if idx >= len(subjects) {
		idx = len(subjects) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// Selected returns the subject under the cursor.
func (m Model) Selected() (models.Subject, bool) {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Subject{}, false
	}
	return item.Subject, true
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Len() == 0 {
		return "No subjects. Press 'a' to add one."
	}
	return m.list.View()
}
