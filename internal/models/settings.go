package models

import (
	"time"

	"github.com/obliviraorg/edumentor/internal/constants"
)

// Settings holds the session defaults the planners start from
type Settings struct {
	DailyStudyHours float64 `json:"daily_study_hours"` // weekly plan budget per day
	StudyHours      float64 `json:"study_hours"`       // routine study budget
	SleepHours      float64 `json:"sleep_hours"`
	ExerciseMinutes float64 `json:"exercise_minutes"`
	LeisureHours    float64 `json:"leisure_hours"`
	GenerateDelayMs int     `json:"generate_delay_ms"` // cosmetic delay before a plan appears
	Timezone        string  `json:"timezone"`          // IANA name or "Local"
}

// RoutineBudget extracts the routine budgets.
func (s Settings) RoutineBudget() RoutineBudget {
	return RoutineBudget{
		StudyHours:      s.StudyHours,
		SleepHours:      s.SleepHours,
		ExerciseMinutes: s.ExerciseMinutes,
		LeisureHours:    s.LeisureHours,
	}
}

func (s Settings) GenerateDelay() time.Duration {
	return time.Duration(s.GenerateDelayMs) * time.Millisecond
}

// DefaultSettings returns the built-in budgets.
func DefaultSettings() Settings {
	return Settings{
		DailyStudyHours: constants.DefaultDailyStudyHours,
		StudyHours:      constants.DefaultStudyHours,
		SleepHours:      constants.DefaultSleepHours,
		ExerciseMinutes: constants.DefaultExerciseMinutes,
		LeisureHours:    constants.DefaultLeisureHours,
		GenerateDelayMs: int(constants.DefaultGenerateDelay / time.Millisecond),
		Timezone:        constants.DefaultTimezone,
	}
}
