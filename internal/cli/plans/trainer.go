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

type TrainerCmd struct {
	Subject []string `short:"s" name:"subject" help:"Subject as NAME[:PRIORITY] (high, medium, low). Repeatable; replaces the starter subjects." placeholder:"NAME[:PRIORITY]"`
	Hours   *float64 `help:"Daily study hours (defaults to daily_study_hours)."`
	Fix     bool     `help:"Drop duplicate subjects before generating."`
	JSON    bool     `name:"json" help:"Print the schedule as JSON."`
	Export  string   `help:"Also write the schedule to an .xlsx file." type:"path"`
	Instant bool     `help:"Skip the generation delay."`
}

func (c *TrainerCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if len(c.Subject) > 0 {
		if err := c.replaceSubjects(ctx); err != nil {
			return err
		}
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	hours := settings.DailyStudyHours
	if c.Hours != nil {
		hours = *c.Hours
	}
	budgetErr := scheduler.CheckHours("daily_study_hours", hours)
	if budgetErr != nil {
		logger.Warn("Daily study budget out of range", "error", budgetErr)
	}

	validator := validation.New()
	subjects, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return fmt.Errorf("failed to get subjects: %w", err)
	}
	subjectResult := validator.ValidateSubjects(subjects)
	if c.Fix && subjectResult.HasConflicts() {
		if !c.JSON {
			fmt.Fprint(ctx.Writer(), subjectResult.FormatReport())
		}
		for _, action := range validation.AutoFixDuplicateSubjects(subjectResult.Conflicts, ctx.Store.DeleteSubject) {
			logger.Info("Auto-fix applied", "action", action.Action)
			if !c.JSON {
				fmt.Fprintln(ctx.Writer(), action.Action)
			}
		}
		if subjects, err = ctx.Store.GetAllSubjects(); err != nil {
			return err
		}
		subjectResult = validator.ValidateSubjects(subjects)
	}

	schedule, err := cli.Generate(ctx.Context(), ctx.DefaultDelay(c.Instant || c.JSON), func() models.WeeklySchedule {
		return ctx.Scheduler.GenerateWeekly(subjects, hours)
	})
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveWeeklySchedule(schedule); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	if c.Export != "" {
		if err := export.WeeklyToXLSX(c.Export, schedule); err != nil {
			return err
		}
		logger.Info("Weekly schedule exported", "path", c.Export)
	}

	if c.JSON {
		return cli.WriteJSON(ctx.Writer(), schedule)
	}

	w := ctx.Writer()
	cli.RenderWeekly(w, schedule)
	subjectResult.Merge(validator.ValidateWeekly(schedule))
	if budgetErr != nil {
		subjectResult.Conflicts = append(subjectResult.Conflicts, validation.Conflict{
			Type:        validation.ConflictInvalidBudget,
			Description: budgetErr.Error() + " (clamped)",
		})
	}
	cli.PrintWarnings(w, subjectResult)
	if c.Export != "" {
		fmt.Fprintf(w, "\nExported to %s\n", c.Export)
	}
	return nil
}

func (c *TrainerCmd) replaceSubjects(ctx *cli.Context) error {
	var parsed []models.Subject
	for _, raw := range c.Subject {
		subject, err := cli.ParseSubject(raw)
		if err != nil {
			return err
		}
		parsed = append(parsed, subject)
	}

	existing, err := ctx.Store.GetAllSubjects()
	if err != nil {
		return err
	}
	for _, s := range existing {
		if err := ctx.Store.DeleteSubject(s.ID); err != nil {
			return err
		}
	}
	for _, s := range parsed {
		if err := ctx.Store.AddSubject(s); err != nil {
			return fmt.Errorf("failed to add subject %q: %w", s.Name, err)
		}
	}
	return nil
}
