package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "edumentor"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/edumentor"
	DefaultConfigName = "edumentor"
	EnvPrefix         = "EDUMENTOR"

	// SessionDSNFormat names a shared-cache in-memory database; nothing outlives the process.
	SessionDSNFormat = "file:%s?mode=memory&cache=shared"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	// Default budgets
	DefaultDailyStudyHours = 4.0
	DefaultStudyHours      = 6.0
	DefaultSleepHours      = 8.0
	DefaultExerciseMinutes = 30.0
	DefaultLeisureHours    = 2.0
	DefaultGenerateDelay   = 1500 * time.Millisecond
	DefaultTimezone        = "Local"
)

// Session States
const (
	StateTrainer SessionState = iota
	StateRoutine
	StateAddSubject
	StateAddExam
	StateEditHours
	StateEditBudget
	StateEditBlock
	StateEditItem
	StateRemoveExam
)
