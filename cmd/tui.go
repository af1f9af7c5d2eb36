package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/ui"
)

// TUI launches the interactive guide browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.engine.Open(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/wander-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	monitor := r.netMonitor()
	monitor.Start()
	defer monitor.Stop()

	model := ui.NewModel(r.guides, monitor)
	defer model.Close()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse guides in an interactive terminal UI",
		Action: r.TUI,
	}
}
