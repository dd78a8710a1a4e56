package scheduler

import (
	"math"
	"strconv"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/utils"
)

// Weekdays is the order days appear in a weekly schedule.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// GenerateWeekly allocates each subject one study item per day, in input order,
// until the daily budget runs out. Every weekday gets the same allocation.
func (s *Scheduler) GenerateWeekly(subjects []models.Subject, dailyHours float64) models.WeeklySchedule {
	dailyHours = clamp("daily_hours", dailyHours, constants.MaxBudgetHours)
	budget := utils.HoursToMinutes(dailyHours)

	schedule := models.WeeklySchedule{
		DailyHours: dailyHours,
		Days:       make([]models.DaySchedule, 0, len(Weekdays)),
	}
	for _, day := range Weekdays {
		schedule.Days = append(schedule.Days, models.DaySchedule{
			Day:   day,
			Items: allocateDay(subjects, budget),
		})
	}

	logger.Debug("Weekly schedule generated", "subjects", len(subjects), "daily_minutes", budget)
	return schedule
}

func allocateDay(subjects []models.Subject, budget int) []models.ScheduleItem {
	items := []models.ScheduleItem{}
	clock := constants.WeeklyStartMinute
	remaining := budget

	for idx, subject := range subjects {
		if remaining <= 0 {
			break
		}
		duration := min(subject.Priority.DurationMin(), remaining)
		items = append(items, models.ScheduleItem{
			Start:       clock,
			DurationMin: duration,
			SubjectID:   subject.ID,
			Subject:     subject.Name,
			Type:        models.ActivityCycle[idx%len(models.ActivityCycle)],
		})
		clock += duration + constants.WeeklyGapMin
		remaining -= duration
	}
	return items
}

var studyLabels = []string{"Deep Focus Study", "Practice & Problems", "Review Session"}

// GenerateRoutine lays out one day from 06:00: wake, exercise, study blocks
// separated by breaks, leisure, dinner, then sleep. An exam within a week
// raises study and trims leisure before allocation.
func (s *Scheduler) GenerateRoutine(budget models.RoutineBudget, exams []models.Exam) models.Routine {
	budget = clampRoutineBudget(budget)

	b := &routineBuilder{clock: constants.RoutineStartMinute}
	b.add("wake", "Wake Up & Morning Routine", constants.WakeBlockMin, models.BlockBreak)

	if exercise := int(math.Round(budget.ExerciseMinutes)); exercise > 0 {
		b.add("exercise", "Morning Exercise", exercise, models.BlockExercise)
	}

	study, leisure, adjusted := adjustForExams(budget.StudyHours, budget.LeisureHours, exams)

	rest := utils.HoursToMinutes(study)
	for n := 1; rest > 0; n++ {
		duration := min(constants.MaxStudyBlockMin, rest)
		label := studyLabels[min(n, len(studyLabels))-1]
		b.add(blockID("study", n), label, duration, models.BlockStudy)
		rest -= duration

		if rest > 0 {
			name := "Short Break"
			if n == 1 {
				name = "Lunch Break"
			}
			b.add(blockID("break", n), name, constants.StudyBreakMin, models.BlockBreak)
		}
	}

	if leisureMin := utils.HoursToMinutes(leisure); leisureMin > 0 {
		b.add("leisure", "Free Time / Hobbies", leisureMin, models.BlockLeisure)
	}

	b.add("evening", "Dinner & Wind Down", constants.DinnerBlockMin, models.BlockBreak)

	b.blocks = append(b.blocks, models.TimeBlock{
		ID:       "sleep",
		Activity: "Sleep",
		Start:    constants.MinutesPerDay - utils.HoursToMinutes(budget.SleepHours),
		End:      constants.MinutesPerDay + constants.RoutineStartMinute,
		Type:     models.BlockSleep,
	})

	logger.Debug("Routine generated", "blocks", len(b.blocks), "exam_adjusted", adjusted, "study_hours", study)
	return models.Routine{
		Blocks:       b.blocks,
		ExamAdjusted: adjusted,
		StudyHours:   study,
		LeisureHours: leisure,
	}
}

// adjustForExams applies exam intensification when any exam is within the
// window. Exams already past still count.
func adjustForExams(study, leisure float64, exams []models.Exam) (float64, float64, bool) {
	for _, exam := range exams {
		if exam.WithinWindow() {
			study = math.Min(study+constants.ExamStudyBoostHours, constants.MaxStudyHours)
			leisure = math.Max(leisure-constants.ExamLeisureCutHours, constants.MinLeisureHours)
			return study, leisure, true
		}
	}
	return study, leisure, false
}

type routineBuilder struct {
	clock  int
	blocks []models.TimeBlock
}

func (b *routineBuilder) add(id, activity string, duration int, typ models.BlockType) {
	b.blocks = append(b.blocks, models.TimeBlock{
		ID:       id,
		Activity: activity,
		Start:    b.clock,
		End:      b.clock + duration,
		Type:     typ,
	})
	b.clock += duration
}

func blockID(prefix string, n int) string {
	return prefix + "-" + strconv.Itoa(n)
}
