package scheduler

import (
	"errors"
	"fmt"
	"math"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/models"
)

// ErrInvalidBudget reports a negative, non-finite or oversized hour or minute budget.
var ErrInvalidBudget = errors.New("invalid budget")

// CheckBudget returns ErrInvalidBudget wrapped with the field name when v is
// negative, NaN or infinite.
func CheckBudget(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s = %v", ErrInvalidBudget, name, v)
	}
	return nil
}

// CheckHours is CheckBudget with an upper bound of one day.
func CheckHours(name string, v float64) error {
	return checkBounded(name, v, constants.MaxBudgetHours, "hours")
}

// CheckMinutes is CheckBudget with an upper bound of one day in minutes.
func CheckMinutes(name string, v float64) error {
	return checkBounded(name, v, constants.MaxBudgetMinutes, "minutes")
}

func checkBounded(name string, v, limit float64, unit string) error {
	if err := CheckBudget(name, v); err != nil {
		return err
	}
	if v > limit {
		return fmt.Errorf("%w: %s = %v exceeds %g %s", ErrInvalidBudget, name, v, limit, unit)
	}
	return nil
}

// CheckRoutineBudget validates every field of b.
func CheckRoutineBudget(b models.RoutineBudget) error {
	return errors.Join(
		CheckHours("study_hours", b.StudyHours),
		CheckHours("sleep_hours", b.SleepHours),
		CheckMinutes("exercise_minutes", b.ExerciseMinutes),
		CheckHours("leisure_hours", b.LeisureHours),
	)
}

// clamp maps a negative or non-finite budget to zero and caps the rest at limit.
func clamp(name string, v, limit float64) float64 {
	if err := CheckBudget(name, v); err != nil {
		logger.Warn("Clamping budget to zero", "error", err)
		return 0
	}
	if v > limit {
		logger.Warn("Capping budget", "name", name, "value", v, "limit", limit)
		return limit
	}
	return v
}

func clampRoutineBudget(b models.RoutineBudget) models.RoutineBudget {
	return models.RoutineBudget{
		StudyHours:      clamp("study_hours", b.StudyHours, constants.MaxBudgetHours),
		SleepHours:      clamp("sleep_hours", b.SleepHours, constants.MaxBudgetHours),
		ExerciseMinutes: clamp("exercise_minutes", b.ExerciseMinutes, constants.MaxBudgetMinutes),
		LeisureHours:    clamp("leisure_hours", b.LeisureHours, constants.MaxBudgetHours),
	}
}
