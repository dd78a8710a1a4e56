package settings

import (
	"fmt"
	"strings"

	"github.com/obliviraorg/edumentor/internal/cli"
	edumerrors "github.com/obliviraorg/edumentor/internal/errors"
	"github.com/obliviraorg/edumentor/internal/logger"
)

type ConfigCmd struct {
	JSON bool `name:"json" help:"Print settings as JSON."`
}

func (c *ConfigCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.JSON {
		return cli.WriteJSON(ctx.Writer(), settings)
	}

	source := ctx.Config.File
	if source == "" {
		source = "(none, using defaults and environment)"
	}

	w := ctx.Writer()
	fmt.Fprintln(w, "Current Settings:")
	fmt.Fprintf(w, "  Config File:         %s\n", source)
	fmt.Fprintf(w, "  Log File:            %s\n", logger.LogFile(ctx.Config.ConfigDir))
	fmt.Fprintf(w, "  Session Store:       %s\n", ctx.Store.GetConfigPath())
	fmt.Fprintln(w, "\nAI Trainer:")
	fmt.Fprintf(w, "  Daily Study Hours:   %g\n", settings.DailyStudyHours)
	fmt.Fprintln(w, "\nRoutine Planner:")
	fmt.Fprintf(w, "  Study Hours:         %g\n", settings.StudyHours)
	fmt.Fprintf(w, "  Sleep Hours:         %g\n", settings.SleepHours)
	fmt.Fprintf(w, "  Exercise Minutes:    %g\n", settings.ExerciseMinutes)
	fmt.Fprintf(w, "  Leisure Hours:       %g\n", settings.LeisureHours)
	fmt.Fprintln(w, "\nGeneral:")
	fmt.Fprintf(w, "  Generate Delay:      %v\n", settings.GenerateDelay())
	fmt.Fprintf(w, "  Timezone:            %s\n", settings.Timezone)

	if err := ctx.Config.Validate(); err != nil {
		fmt.Fprintln(w)
		for _, e := range unwrapJoined(err) {
			for _, line := range strings.Split(e.Error(), "\n") {
				fmt.Fprintln(w, edumerrors.Warning(line))
			}
		}
	}
	return nil
}

func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
