package constants

const (
	// Weekly study plan
	WeeklyStartMinute   = 9 * MinutesPerHour
	WeeklyGapMin        = 60
	HighPriorityMin     = 120
	StandardPriorityMin = 60

	// Daily routine
	RoutineStartMinute = 6 * MinutesPerHour
	WakeBlockMin       = 60
	MaxStudyBlockMin   = 120
	StudyBreakMin      = 60
	DinnerBlockMin     = 90

	// Exam intensification
	ExamWindowDays      = 7
	ExamStudyBoostHours = 2.0
	MaxStudyHours       = 10.0
	ExamLeisureCutHours = 1.0
	MinLeisureHours     = 0.5

	// Upper bounds for a single day's budgets
	MaxBudgetHours   = 24.0
	MaxBudgetMinutes = 24 * 60.0

	// Exam urgency thresholds (days)
	UrgentExamDays = 3
	SoonExamDays   = ExamWindowDays
)
