package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/utils"
)

type SubjectFormModel struct {
	Name     string
	Priority models.Priority
}

type ExamFormModel struct {
	Name    string
	Subject string
	Date    string
}

type HoursFormModel struct {
	Hours string
}

type BudgetFormModel struct {
	Study    string
	Sleep    string
	Exercise string
	Leisure  string
}

type BlockFormModel struct {
	ID       string
	Activity string
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return models.ErrEmptyName
	}
	return nil
}

func validateDate(s string) error {
	if _, err := utils.DaysUntil(strings.TrimSpace(s), time.Now()); err != nil {
		return fmt.Errorf("use %s", constants.DateFormat)
	}
	return nil
}

// parseBudget reads a budget no larger than one day. Names ending in
// _minutes are bounded in minutes, everything else in hours.
func parseBudget(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", name)
	}
	check := scheduler.CheckHours
	if strings.HasSuffix(name, "_minutes") {
		check = scheduler.CheckMinutes
	}
	if err := check(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

func budgetValidator(name string) func(string) error {
	return func(s string) error {
		_, err := parseBudget(name, s)
		return err
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *Model) newSubjectForm() *huh.Form {
	m.subjectForm = &SubjectFormModel{Priority: models.PriorityMedium}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&m.subjectForm.Name).
				Validate(validateName),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("High (2h)", models.PriorityHigh),
					huh.NewOption("Medium (1h)", models.PriorityMedium),
					huh.NewOption("Low (1h)", models.PriorityLow),
				).
				Value(&m.subjectForm.Priority),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newExamForm() *huh.Form {
	m.examForm = &ExamFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Exam").
				Value(&m.examForm.Name).
				Validate(validateName),
			huh.NewInput().
				Title("Subject").
				Description("optional").
				Value(&m.examForm.Subject),
			huh.NewInput().
				Title("Date").
				Placeholder(constants.DateFormat).
				Value(&m.examForm.Date).
				Validate(validateDate),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newHoursForm(settings models.Settings) *huh.Form {
	m.hoursForm = &HoursFormModel{Hours: formatFloat(settings.DailyStudyHours)}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Study hours per day").
				Value(&m.hoursForm.Hours).
				Validate(budgetValidator("daily_study_hours")),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newBudgetForm(settings models.Settings) *huh.Form {
	m.budgetForm = &BudgetFormModel{
		Study:    formatFloat(settings.StudyHours),
		Sleep:    formatFloat(settings.SleepHours),
		Exercise: formatFloat(settings.ExerciseMinutes),
		Leisure:  formatFloat(settings.LeisureHours),
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Study hours").Value(&m.budgetForm.Study).Validate(budgetValidator("study_hours")),
			huh.NewInput().Title("Sleep hours").Value(&m.budgetForm.Sleep).Validate(budgetValidator("sleep_hours")),
			huh.NewInput().Title("Exercise minutes").Value(&m.budgetForm.Exercise).Validate(budgetValidator("exercise_minutes")),
			huh.NewInput().Title("Leisure hours").Value(&m.budgetForm.Leisure).Validate(budgetValidator("leisure_hours")),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newBlockForm(block models.TimeBlock) *huh.Form {
	m.blockForm = &BlockFormModel{ID: block.ID, Activity: block.Activity}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Value(&m.blockForm.Activity).
				Validate(validateName),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) applySubjectForm() error {
	subject := models.Subject{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(m.subjectForm.Name),
		Priority: m.subjectForm.Priority,
	}
	if err := m.store.AddSubject(subject); err != nil {
		return err
	}
	m.status = fmt.Sprintf("Added %s", subject.Name)
	return m.refreshSubjects()
}

func (m *Model) applyExamForm() error {
	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}
	exam, err := models.NewExam(uuid.NewString(), m.examForm.Name, m.examForm.Subject, strings.TrimSpace(m.examForm.Date), now)
	if err != nil {
		return err
	}
	if err := m.store.AddExam(exam); err != nil {
		return err
	}
	m.exams = append(m.exams, exam)
	m.status = fmt.Sprintf("%s in %d days", exam.Name, exam.DaysUntil)
	return nil
}

func (m *Model) applyHoursForm() error {
	hours, err := parseBudget("daily_study_hours", m.hoursForm.Hours)
	if err != nil {
		return err
	}
	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	settings.DailyStudyHours = hours
	return m.store.SaveSettings(settings)
}

func (m *Model) applyBudgetForm() error {
	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	fields := []struct {
		name  string
		input string
		dst   *float64
	}{
		{"study_hours", m.budgetForm.Study, &settings.StudyHours},
		{"sleep_hours", m.budgetForm.Sleep, &settings.SleepHours},
		{"exercise_minutes", m.budgetForm.Exercise, &settings.ExerciseMinutes},
		{"leisure_hours", m.budgetForm.Leisure, &settings.LeisureHours},
	}
	for _, f := range fields {
		v, err := parseBudget(f.name, f.input)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return m.store.SaveSettings(settings)
}

// renameBlock replaces the activity label of one routine block and persists it.
func (m *Model) renameBlock(id, activity string) error {
	if m.routineModel.Routine == nil {
		return models.ErrNotFound
	}
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return models.ErrEmptyName
	}
	updated, err := m.routineModel.Routine.WithActivity(id, activity)
	if err != nil {
		return err
	}
	if err := m.store.SaveRoutine(updated); err != nil {
		return err
	}
	m.routineModel.SetRoutine(updated)
	return nil
}

func (m *Model) applyBlockForm() error {
	return m.renameBlock(m.blockForm.ID, m.blockForm.Activity)
}

func (m *Model) refreshSubjects() error {
	subjects, err := m.store.GetAllSubjects()
	if err != nil {
		return err
	}
	m.subjectList.SetSubjects(subjects)
	return nil
}

type ItemFormModel struct {
	Day      int
	Index    int
	Item     models.ScheduleItem
	Subject  string
	Start    string
	Duration string
}

type RemoveExamFormModel struct {
	ID string
}

func validateClock(s string) error {
	if _, err := utils.ParseTimeToMinutes(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use %s", constants.TimeFormat)
	}
	return nil
}

// parseDuration reads a whole number of minutes within one day.
func parseDuration(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 || v > constants.MinutesPerDay {
		return 0, fmt.Errorf("duration must be 1-%d minutes", constants.MinutesPerDay)
	}
	return v, nil
}

func validateDuration(s string) error {
	_, err := parseDuration(s)
	return err
}

func (m *Model) newItemForm(day, index int, item models.ScheduleItem) *huh.Form {
	m.itemForm = &ItemFormModel{
		Day:      day,
		Index:    index,
		Item:     item,
		Subject:  item.Subject,
		Start:    utils.FormatMinutes(item.Start),
		Duration: strconv.Itoa(item.DurationMin),
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject").
				Value(&m.itemForm.Subject).
				Validate(validateName),
			huh.NewInput().
				Title("Start").
				Placeholder(constants.TimeFormat).
				Value(&m.itemForm.Start).
				Validate(validateClock),
			huh.NewInput().
				Title("Minutes").
				Value(&m.itemForm.Duration).
				Validate(validateDuration),
		),
	).WithTheme(huh.ThemeDracula())
}

func (m *Model) newRemoveExamForm() *huh.Form {
	m.removeForm = &RemoveExamFormModel{ID: m.exams[0].ID}
	options := make([]huh.Option[string], 0, len(m.exams))
	for _, exam := range m.exams {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", exam.Name, exam.Date), exam.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Remove exam").
				Options(options...).
				Value(&m.removeForm.ID),
		),
	).WithTheme(huh.ThemeDracula())
}

// editItem replaces one weekly session and persists the new schedule.
func (m *Model) editItem(day, index int, item models.ScheduleItem) error {
	if m.weeklyModel.Schedule == nil {
		return models.ErrNotFound
	}
	if strings.TrimSpace(item.Subject) == "" {
		return models.ErrEmptyName
	}
	updated, err := m.weeklyModel.Schedule.WithItem(day, index, item)
	if err != nil {
		return err
	}
	if err := m.store.SaveWeeklySchedule(updated); err != nil {
		return err
	}
	m.weeklyModel.SetSchedule(updated)
	return nil
}

func (m *Model) applyItemForm() error {
	f := m.itemForm
	start, err := utils.ParseTimeToMinutes(strings.TrimSpace(f.Start))
	if err != nil {
		return err
	}
	duration, err := parseDuration(f.Duration)
	if err != nil {
		return err
	}

	item := f.Item
	item.Start = start
	item.DurationMin = duration
	if name := strings.TrimSpace(f.Subject); name != item.Subject {
		item.Subject = name
		item.SubjectID = ""
	}
	return m.editItem(f.Day, f.Index, item)
}

// removeExam deletes an exam and reloads the session's exam list.
func (m *Model) removeExam(id string) error {
	if err := m.store.DeleteExam(id); err != nil {
		return err
	}
	exams, err := m.store.GetAllExams()
	if err != nil {
		return err
	}
	m.exams = exams
	m.status = "Exam removed"
	if m.width > 0 {
		m.resize(m.width, m.height)
	}
	return nil
}

func (m *Model) applyRemoveExamForm() error {
	return m.removeExam(m.removeForm.ID)
}
