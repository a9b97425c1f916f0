package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joeycumines/zombie-run/internal/app"
)

// Options configures New and Run.
type Options struct {
	// Refresh is the tick interval (default DefaultRefresh).
	Refresh time.Duration
	// Mouse enables click handling.
	Mouse bool
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
	// Input and Output default to the process's stdin and stdout.
	Input  io.Reader
	Output io.Writer
}

// Run drives ctrl until the user quits or ctx is done.
func Run(ctx context.Context, ctrl *app.Controller, opts Options) error {
	m := New(ctrl, opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
