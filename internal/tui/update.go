package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/obliviraorg/edumentor/internal/constants"
	edumerrors "github.com/obliviraorg/edumentor/internal/errors"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/runner"
)

type weeklyResultMsg runner.Result[models.WeeklySchedule]

type routineResultMsg runner.Result[models.Routine]

func waitForWeekly(ch <-chan runner.Result[models.WeeklySchedule]) tea.Cmd {
	return func() tea.Msg {
		return weeklyResultMsg(<-ch)
	}
}

func waitForRoutine(ch <-chan runner.Result[models.Routine]) tea.Cmd {
	return func() tea.Msg {
		return routineResultMsg(<-ch)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case weeklyResultMsg:
		return m.handleWeeklyResult(msg), nil

	case routineResultMsg:
		return m.handleRoutineResult(msg), nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.formError = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.weeklyRunner.Cancel()
		m.routineRunner.Cancel()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab), key.Matches(keyMsg, m.keys.ShiftTab):
		if m.state == constants.StateTrainer {
			m.state = constants.StateRoutine
		} else {
			m.state = constants.StateTrainer
		}
		m.status = ""
		return m, nil
	case key.Matches(keyMsg, m.keys.Cancel):
		if m.generating() {
			m.weeklyRunner.Cancel()
			m.routineRunner.Cancel()
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Generate):
		if m.state == constants.StateTrainer {
			return m, m.generateWeekly()
		}
		return m, m.generateRoutine()
	case key.Matches(keyMsg, m.keys.Exam):
		form := m.newExamForm()
		return m.openForm(constants.StateAddExam, form)
	}

	if m.state == constants.StateTrainer {
		return m.updateTrainer(keyMsg)
	}
	return m.updateRoutine(keyMsg)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, status line, help and padding
	content := max(height-8, 3)
	inner := max(width-4, 20)
	listWidth := min(32, inner/3)
	m.subjectList.SetSize(listWidth, content)
	m.weeklyModel.SetSize(inner-listWidth-2, content)
	m.routineModel.SetSize(inner, max(content-len(m.exams)-2, 3))
}

func (m Model) updateTrainer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.subjectList, cmd = m.subjectList.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keys.Add):
		form := m.newSubjectForm()
		return m.openForm(constants.StateAddSubject, form)
	case key.Matches(msg, m.keys.Hours):
		settings, err := m.store.GetSettings()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		form := m.newHoursForm(settings)
		return m.openForm(constants.StateEditHours, form)
	case key.Matches(msg, m.keys.Priority):
		m.cyclePriority()
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelectedSubject()
		return m, nil
	case key.Matches(msg, m.keys.NextItem):
		m.weeklyModel.MoveNext()
		return m, nil
	case key.Matches(msg, m.keys.PrevItem):
		m.weeklyModel.MovePrev()
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		day, index, item, ok := m.weeklyModel.Selected()
		if !ok {
			return m, nil
		}
		form := m.newItemForm(day, index, item)
		return m.openForm(constants.StateEditItem, form)
	}

	var cmd tea.Cmd
	m.weeklyModel, cmd = m.weeklyModel.Update(msg)
	return m, cmd
}

func (m Model) updateRoutine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.routineModel.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.routineModel.MoveDown()
	case key.Matches(msg, m.keys.Budget):
		settings, err := m.store.GetSettings()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		form := m.newBudgetForm(settings)
		return m.openForm(constants.StateEditBudget, form)
	case key.Matches(msg, m.keys.Edit):
		block, ok := m.routineModel.Selected()
		if !ok {
			return m, nil
		}
		form := m.newBlockForm(block)
		return m.openForm(constants.StateEditBlock, form)
	case key.Matches(msg, m.keys.Delete):
		if len(m.exams) == 0 {
			m.status = "No exams to remove"
			return m, nil
		}
		form := m.newRemoveExamForm()
		return m.openForm(constants.StateRemoveExam, form)
	}
	return m, nil
}

func (m *Model) cyclePriority() {
	selected, ok := m.subjectList.Selected()
	if !ok {
		return
	}
	subject, err := m.store.GetSubject(selected.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	subject.Priority = subject.Priority.Next()
	if err := m.store.UpdateSubject(subject); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.refreshSubjects(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s is now %s priority", subject.Name, subject.Priority)
	m.updateValidationStatus()
}

func (m *Model) deleteSelectedSubject() {
	subject, ok := m.subjectList.Selected()
	if !ok {
		return
	}
	if err := m.store.DeleteSubject(subject.ID); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.refreshSubjects(); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Removed %s", subject.Name)
	m.updateValidationStatus()
}

func (m Model) openForm(state constants.SessionState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = state
	m.form = form
	m.formError = ""
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = m.previousState
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.applyForm(); err != nil {
			logger.Warn("Form rejected", "error", err)
			m.formError = err.Error()
		}
		m.closeForm()
		m.updateValidationStatus()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) applyForm() error {
	switch m.state {
	case constants.StateAddSubject:
		return m.applySubjectForm()
	case constants.StateAddExam:
		return m.applyExamForm()
	case constants.StateEditHours:
		return m.applyHoursForm()
	case constants.StateEditBudget:
		return m.applyBudgetForm()
	case constants.StateEditBlock:
		return m.applyBlockForm()
	case constants.StateEditItem:
		return m.applyItemForm()
	case constants.StateRemoveExam:
		return m.applyRemoveExamForm()
	}
	return nil
}

func (m *Model) generateWeekly() tea.Cmd {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.status = err.Error()
		return nil
	}
	subjects, err := m.store.GetAllSubjects()
	if err != nil {
		m.status = err.Error()
		return nil
	}

	sched := m.scheduler
	ch := m.weeklyRunner.Submit(m.ctx, func(context.Context) (models.WeeklySchedule, error) {
		return sched.GenerateWeekly(subjects, settings.DailyStudyHours), nil
	})
	m.weeklyPending = true
	m.status = ""
	return tea.Batch(m.spinner.Tick, waitForWeekly(ch))
}

func (m *Model) generateRoutine() tea.Cmd {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.status = err.Error()
		return nil
	}

	sched := m.scheduler
	budget := settings.RoutineBudget()
	exams := append([]models.Exam(nil), m.exams...)
	ch := m.routineRunner.Submit(m.ctx, func(context.Context) (models.Routine, error) {
		return sched.GenerateRoutine(budget, exams), nil
	})
	m.routinePending = true
	m.status = ""
	return tea.Batch(m.spinner.Tick, waitForRoutine(ch))
}

// generationStatus reports an unsuccessful result and whether the value should be dropped.
func generationStatus(err error) (string, bool) {
	switch {
	case err == nil:
		return "", false
	case errors.Is(err, runner.ErrSuperseded):
		return "", true
	case errors.Is(err, context.Canceled):
		return "Generation cancelled", true
	default:
		return "Generation failed: " + err.Error(), true
	}
}

func (m Model) handleWeeklyResult(msg weeklyResultMsg) Model {
	if msg.Seq != m.weeklyRunner.Latest() {
		return m
	}
	m.weeklyPending = false
	if status, drop := generationStatus(msg.Err); drop {
		m.status = status
		return m
	}

	m.weeklyModel.SetSchedule(msg.Value)
	m.status = "Weekly plan ready"
	if err := m.store.SaveWeeklySchedule(msg.Value); err != nil {
		logger.Error("Failed to save weekly schedule", "error", err)
		m.status = edumerrors.Formatf("saving weekly plan: %v", err)
	}
	m.updateValidationStatus()
	return m
}

func (m Model) handleRoutineResult(msg routineResultMsg) Model {
	if msg.Seq != m.routineRunner.Latest() {
		return m
	}
	m.routinePending = false
	if status, drop := generationStatus(msg.Err); drop {
		m.status = status
		return m
	}

	m.routineModel.SetRoutine(msg.Value)
	m.status = "Routine ready"
	if msg.Value.ExamAdjusted {
		m.status = "Routine ready (exam mode)"
	}
	if err := m.store.SaveRoutine(msg.Value); err != nil {
		logger.Error("Failed to save routine", "error", err)
		m.status = edumerrors.Formatf("saving routine: %v", err)
	}
	m.updateValidationStatus()
	return m
}
