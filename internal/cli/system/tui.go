package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/obliviraorg/edumentor/internal/cli"
	"github.com/obliviraorg/edumentor/internal/logger"
	"github.com/obliviraorg/edumentor/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	logger.Info("Starting TUI")
	p := tea.NewProgram(tui.NewModel(ctx.Context(), ctx.Store, ctx.Scheduler), tea.WithAltScreen(), tea.WithContext(ctx.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
