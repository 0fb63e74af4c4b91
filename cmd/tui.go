package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tunetype/tunetype/internal/shared"
	"github.com/tunetype/tunetype/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive report view.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireResolver(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tunetype-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.resolver, r.credential(), cmd.String("result-id"), r.config.Share.BaseURL)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
