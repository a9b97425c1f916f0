// Package notify delivers short, fire-and-forget desktop notifications.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Notification is a short message shown outside the application.
type Notification struct {
	Title   string
	Body    string
	Timeout time.Duration
}

// Notifier delivers notifications. Callers treat delivery as best-effort.
type Notifier interface {
	Notify(n Notification) error
}

// Discard drops every notification.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(Notification) error { return nil }

// Log writes notifications to a logger instead of the desktop.
type Log struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l Log) Notify(n Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notification", "title", n.Title, "body", n.Body, "timeout", n.Timeout)
	return nil
}

// Desktop shows notifications with the platform's notification command:
// notify-send on Linux and the BSDs, osascript on macOS and a PowerShell
// balloon tip on Windows.
type Desktop struct {
	// GOOS selects the command, defaulting to runtime.GOOS.
	GOOS string
	// Run executes the command, defaulting to os/exec. The context bounds
	// how long a stuck notifier may block the caller.
	Run func(ctx context.Context, name string, args ...string) error
}

// commandTimeout bounds a single notifier invocation, on top of the time
// the notification itself is shown for.
const commandTimeout = 2 * time.Second

// Notify implements Notifier.
func (d Desktop) Notify(n Notification) error {
	name, args, err := d.command(n)
	if err != nil {
		return err
	}
	run := d.Run
	if run == nil {
		run = runCommand
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout(n))
	defer cancel()
	if err := run(ctx, name, args...); err != nil {
		return fmt.Errorf("notify: %s: %w", name, err)
	}
	return nil
}

// timeout is how long the command may run. The Windows script stays alive
// while the balloon tip is shown.
func (d Desktop) timeout(n Notification) time.Duration {
	return max(n.Timeout, time.Second) + commandTimeout
}

func (d Desktop) command(n Notification) (string, []string, error) {
	goos := d.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		args := []string{"--app-name", n.Title}
		if n.Timeout > 0 {
			args = append(args, "--expire-time", strconv.FormatInt(n.Timeout.Milliseconds(), 10))
		}
		return "notify-send", append(args, n.Title, n.Body), nil
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleScriptString(n.Body), appleScriptString(n.Title))
		return "osascript", []string{"-e", script}, nil
	case "windows":
		ms := max(n.Timeout.Milliseconds(), 1000)
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Windows.Forms;"+
				"$n = New-Object System.Windows.Forms.NotifyIcon;"+
				"$n.Icon = [System.Drawing.SystemIcons]::Information;"+
				"$n.Visible = $true;"+
				"$n.ShowBalloonTip(%d, %s, %s, 'Info');"+
				"Start-Sleep -Milliseconds %d;"+
				"$n.Dispose()",
			ms, powerShellString(n.Title), powerShellString(n.Body), ms)
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}, nil
	default:
		return "", nil, fmt.Errorf("notify: unsupported platform %q", goos)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func powerShellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
