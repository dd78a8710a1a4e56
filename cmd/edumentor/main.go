package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/obliviraorg/edumentor/internal/cli"
	"github.com/obliviraorg/edumentor/internal/cli/plans"
	"github.com/obliviraorg/edumentor/internal/cli/settings"
	"github.com/obliviraorg/edumentor/internal/cli/system"
	"github.com/obliviraorg/edumentor/internal/config"
	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/errors"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (YAML). Defaults to ~/.config/edumentor/edumentor.yaml when present." type:"string"`
	Debug   bool   `help:"Enable debug logging."`

	Tui     system.TuiCmd      `cmd:"" help:"Launch the interactive planner." default:"1"`
	Trainer plans.TrainerCmd   `cmd:"" help:"Generate a weekly study plan."`
	Routine plans.RoutineCmd   `cmd:"" help:"Generate a daily routine."`
	Show    settings.ConfigCmd `cmd:"" name:"config" help:"Show the effective settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study planner: weekly subject schedules and daily routines"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.Debug = cfg.Debug || CLI.Debug

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir,
		FileOnly:  ctx.Command() == "tui",
	}); err != nil {
		fmt.Fprintln(os.Stderr, errors.Warning(fmt.Sprintf("logging disabled: %v", err)))
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("Invalid configuration values will be clamped", "error", err)
	}

	store, err := storage.OpenSession(cfg.Settings())
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:       sigCtx,
		Store:     store,
		Scheduler: scheduler.New(),
		Config:    cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		store.Close()
		errors.Fatal(err)
	}
}
