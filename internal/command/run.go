package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/joeycumines/zombie-run/internal/app"
	"github.com/joeycumines/zombie-run/internal/config"
	"github.com/joeycumines/zombie-run/internal/logging"
	"github.com/joeycumines/zombie-run/internal/notify"
	"github.com/joeycumines/zombie-run/internal/storage"
	"github.com/joeycumines/zombie-run/internal/tui"
)

// ErrNotTerminal is returned by run when stdout is not a terminal.
var ErrNotTerminal = errors.New("run needs an interactive terminal")

// RunCommand starts an interactive snapshot session.
type RunCommand struct {
	*BaseCommand
	config   *config.Config
	logFile  string
	logLevel string
	saveRoot string

	// stdin feeds the UI, defaulting to os.Stdin.
	stdin io.Reader
	// isTerminal reports whether the UI output is a terminal.
	isTerminal func(w io.Writer) bool
	// lockPath defaults to config.GetLockPath.
	lockPath func() (string, error)
}

// NewRunCommand creates a new run command.
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Start an interactive snapshot session",
			"run [options]",
		),
		config:     cfg,
		stdin:      os.Stdin,
		isTerminal: isTerminal,
		lockPath:   config.GetLockPath,
	}
}

// SetupFlags configures the flags for the run command.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.logFile, "log-file", "", "Write JSON logs to this file (overrides log.file)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
	fs.StringVar(&c.saveRoot, "save-root", "", "Directory holding the per-game save folders (overrides save.root)")
}

// Execute runs the session until the user quits or ctx is done.
func (c *RunCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := noArgs(args, stderr); err != nil {
		return err
	}
	if !c.isTerminal(stdout) {
		return ErrNotTerminal
	}

	s, err := c.open()
	if err != nil {
		return err
	}
	defer s.close()

	s.ui.Input = c.stdin
	s.ui.Output = stdout
	err = tui.Run(ctx, s.ctrl, s.ui)
	if err != nil {
		s.logger.Error("session failed", "error", err)
	} else {
		s.logger.Info("session ended")
	}
	return err
}

// session is everything a run needs, short of the terminal.
type session struct {
	ctrl   *app.Controller
	ui     tui.Options
	logger *slog.Logger
	lock   *storage.Lock
	log    io.Closer
}

func (s *session) close() {
	s.ctrl.Wait()
	if err := s.lock.Release(); err != nil {
		s.logger.Warn("failed to release lock", "error", err)
	}
	_ = s.log.Close()
}

// open sets up logging, takes the single instance lock and discovers the
// profiles. The caller must close the result.
func (c *RunCommand) open() (_ *session, err error) {
	schema := config.DefaultSchema()
	name := c.Name()

	logOpts, err := resolveLogOptions(c.logFile, c.logLevel, name, c.config)
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logOpts.Path, err)
	}
	defer func() {
		if err != nil {
			_ = logCloser.Close()
		}
	}()

	runID := uuid.NewString()
	logger = logger.With("run", runID)

	lockPath, err := c.lockPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lock path: %w", err)
	}
	lock, err := storage.AcquireLock(lockPath, runID)
	if err != nil {
		if errors.Is(err, storage.ErrWouldBlock) {
			return nil, fmt.Errorf("zombie-run is already running: %w", err)
		}
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = lock.Release()
		}
	}()

	dcfg, err := discoverConfig(c.config, name, c.saveRoot)
	if err != nil {
		return nil, err
	}
	selector, err := app.DiscoverSelector(dcfg)
	if err != nil {
		return nil, err
	}

	var notifier notify.Notifier = notify.Desktop{}
	enabled, err := schema.ResolveBool(c.config, name, config.KeyNotifyEnabled)
	if err != nil {
		return nil, err
	}
	if !enabled {
		notifier = notify.Log{Logger: logger}
	}

	ctrlCfg := app.Config{Notifier: notifier, Logger: logger}
	if ctrlCfg.MessageTTL, err = schema.ResolveDuration(c.config, name, config.KeyMessageTTL); err != nil {
		return nil, err
	}
	if ctrlCfg.NotifyTimeout, err = schema.ResolveDuration(c.config, name, config.KeyNotifyTimeout); err != nil {
		return nil, err
	}

	var ui tui.Options
	if ui.Refresh, err = schema.ResolveDuration(c.config, name, config.KeyRefreshInterval); err != nil {
		return nil, err
	}
	if ui.Mouse, err = schema.ResolveBool(c.config, name, config.KeyMouse); err != nil {
		return nil, err
	}
	if ui.AltScreen, err = schema.ResolveBool(c.config, name, config.KeyAltScreen); err != nil {
		return nil, err
	}

	logger.Info("session started",
		"profiles", len(selector.Locations()),
		"lock", lock.Path(),
		"notify", enabled,
	)

	return &session{
		ctrl:   app.NewController(selector, ctrlCfg),
		ui:     ui,
		logger: logger,
		lock:   lock,
		log:    logCloser,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
