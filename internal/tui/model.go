package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/runner"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/storage"
	"github.com/obliviraorg/edumentor/internal/tui/components/routine"
	"github.com/obliviraorg/edumentor/internal/tui/components/subjects"
	"github.com/obliviraorg/edumentor/internal/tui/components/weekly"
	"github.com/obliviraorg/edumentor/internal/validation"
)

type Model struct {
	ctx           context.Context
	store         storage.Provider
	scheduler     *scheduler.Scheduler
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model

	subjectList  subjects.Model
	weeklyModel  weekly.Model
	routineModel routine.Model
	exams        []models.Exam

	weeklyRunner   *runner.Runner[models.WeeklySchedule]
	routineRunner  *runner.Runner[models.Routine]
	weeklyPending  bool
	routinePending bool

	form        *huh.Form
	subjectForm *SubjectFormModel
	examForm    *ExamFormModel
	hoursForm   *HoursFormModel
	budgetForm  *BudgetFormModel
	blockForm   *BlockFormModel
	itemForm    *ItemFormModel
	removeForm  *RemoveExamFormModel

	trainerConflicts []validation.Conflict
	routineConflicts []validation.Conflict
	status           string
	formError        string
	quitting         bool
	width            int
	height           int
}

func NewModel(ctx context.Context, store storage.Provider, sched *scheduler.Scheduler) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	settings, err := store.GetSettings()
	if err != nil {
		logger.Warn("Falling back to default settings", "error", err)
		settings = models.DefaultSettings()
	}

	subjectList, err := store.GetAllSubjects()
	if err != nil {
		subjectList = []models.Subject{}
	}
	exams, err := store.GetAllExams()
	if err != nil {
		exams = []models.Exam{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		ctx:           ctx,
		store:         store,
		scheduler:     sched,
		state:         constants.StateTrainer,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		subjectList:   subjects.New(subjectList, 0, 0),
		weeklyModel:   weekly.New(0, 0),
		routineModel:  routine.New(0, 0),
		exams:         exams,
		weeklyRunner:  runner.New[models.WeeklySchedule](settings.GenerateDelay()),
		routineRunner: runner.New[models.Routine](settings.GenerateDelay()),
	}

	if schedule, err := store.GetWeeklySchedule(); err == nil {
		m.weeklyModel.SetSchedule(schedule)
	}
	if r, err := store.GetRoutine(); err == nil {
		m.routineModel.SetRoutine(r)
	}
	m.updateValidationStatus()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// onTab reports whether the model shows one of the two panels rather than a form.
func (m Model) onTab() bool {
	return m.state == constants.StateTrainer || m.state == constants.StateRoutine
}

func (m Model) generating() bool {
	return m.weeklyPending || m.routinePending
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Generate}
	switch m.state {
	case constants.StateTrainer:
		keys = append(keys, m.keys.Add, m.keys.Priority, m.keys.Hours, m.keys.Edit)
	case constants.StateRoutine:
		keys = append(keys, m.keys.Budget, m.keys.Exam, m.keys.Edit)
	}
	if m.generating() {
		keys = append(keys, m.keys.Cancel)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Generate, m.keys.Cancel}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case constants.StateTrainer:
		actions = []key.Binding{m.keys.Add, m.keys.Priority, m.keys.Delete, m.keys.Hours, m.keys.Exam,
			m.keys.PrevItem, m.keys.NextItem, m.keys.Edit}
	case constants.StateRoutine:
		actions = []key.Binding{m.keys.Budget, m.keys.Exam, m.keys.Delete, m.keys.Edit}
	}
	return [][]key.Binding{global, navigation, actions}
}

// updateValidationStatus re-runs validation for both panels.
func (m *Model) updateValidationStatus() {
	validator := validation.New()

	var trainer validation.ValidationResult
	if subjectList, err := m.store.GetAllSubjects(); err == nil {
		trainer.Merge(validator.ValidateSubjects(subjectList))
	}
	if m.weeklyModel.Schedule != nil {
		trainer.Merge(validator.ValidateWeekly(*m.weeklyModel.Schedule))
	}
	m.trainerConflicts = trainer.Conflicts

	routineResult := validator.ValidateExams(m.exams)
	if m.routineModel.Routine != nil {
		routineResult.Merge(validator.ValidateRoutine(*m.routineModel.Routine))
	}
	m.routineConflicts = routineResult.Conflicts
}
