package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/reportdash/pkg/reportlist"
)

// RunOptions extends Options with program-level settings.
type RunOptions struct {
	Options
	RefreshInterval time.Duration
	Input           io.Reader
	Output          io.Writer
	AltScreen       bool
}

// Run launches the interactive view and blocks until the user quits or ctx is
// cancelled. The refresher feeds RefreshMsg into the program for its whole life.
func Run(ctx context.Context, opts RunOptions) (reportlist.State, error) {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(New(ctx, opts.Options), programOpts...)

	refresher := reportlist.NewRefresher(opts.RefreshInterval, func() { program.Send(RefreshMsg{}) })
	refresher.Start(ctx)
	defer refresher.Stop()

	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return reportlist.State{}, nil
		}
		return reportlist.State{}, fmt.Errorf("run reports view: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return reportlist.State{}, nil
	}
	opts.Logger.Info().Int("reports", len(m.State().Reports())).Msg("reports view closed")
	return m.State(), nil
}
