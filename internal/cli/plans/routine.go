package plans

import (
	"fmt"

	"github.com/obliviraorg/edumentor/internal/cli"
	"github.com/obliviraorg/edumentor/internal/export"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/validation"
)

type RoutineCmd struct {
	Study    *float64 `help:"Study hours per day."`
	Sleep    *float64 `help:"Sleep hours per night."`
	Exercise *float64 `help:"Exercise minutes per day."`
	Leisure  *float64 `help:"Leisure hours per day."`
	Exam     []string `short:"e" name:"exam" help:"Upcoming exam as NAME@YYYY-MM-DD. Repeatable." placeholder:"NAME@DATE"`
	JSON     bool     `name:"json" help:"Print the routine as JSON."`
	Export   string   `help:"Also write the routine to an .xlsx file." type:"path"`
	Instant  bool     `help:"Skip the generation delay."`
}

// Budget applies the flags over the session settings.
func (c *RoutineCmd) Budget(settings models.Settings) models.RoutineBudget {
	budget := settings.RoutineBudget()
	if c.Study != nil {
		budget.StudyHours = *c.Study
	}
	if c.Sleep != nil {
		budget.SleepHours = *c.Sleep
	}
	if c.Exercise != nil {
		budget.ExerciseMinutes = *c.Exercise
	}
	if c.Leisure != nil {
		budget.LeisureHours = *c.Leisure
	}
	return budget
}

func (c *RoutineCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	budget := c.Budget(settings)
	budgetErr := scheduler.CheckRoutineBudget(budget)
	if budgetErr != nil {
		logger.Warn("Routine budget out of range", "error", budgetErr)
	}

	now, err := ctx.Now()
	if err != nil {
		return err
	}
	for _, raw := range c.Exam {
		exam, err := cli.ParseExam(raw, now)
		if err != nil {
			return err
		}
		if err := ctx.Store.AddExam(exam); err != nil {
			return fmt.Errorf("failed to add exam %q: %w", exam.Name, err)
		}
	}
	exams, err := ctx.Store.GetAllExams()
	if err != nil {
		return fmt.Errorf("failed to get exams: %w", err)
	}

	routine, err := cli.Generate(ctx.Context(), ctx.DefaultDelay(c.Instant || c.JSON), func() models.Routine {
		return ctx.Scheduler.GenerateRoutine(budget, exams)
	})
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveRoutine(routine); err != nil {
		return fmt.Errorf("failed to save routine: %w", err)
	}

	if c.Export != "" {
		if err := export.RoutineToXLSX(c.Export, routine); err != nil {
			return err
		}
		logger.Info("Routine exported", "path", c.Export)
	}

	if c.JSON {
		return cli.WriteJSON(ctx.Writer(), routine)
	}

	w := ctx.Writer()
	cli.RenderExams(w, exams)
	cli.RenderRoutine(w, routine)

	validator := validation.New()
	result := validator.ValidateExams(exams)
	result.Merge(validator.ValidateRoutine(routine))
	if budgetErr != nil {
		result.Conflicts = append(result.Conflicts, validation.Conflict{
			Type:        validation.ConflictInvalidBudget,
			Description: budgetErr.Error() + " (clamped)",
		})
	}
	cli.PrintWarnings(w, result)
	if c.Export != "" {
		fmt.Fprintf(w, "\nExported to %s\n", c.Export)
	}
	return nil
}
