package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCommand struct {
	name string
	args []string
}

func recorder(calls *[]recordedCommand, err error) func(context.Context, string, ...string) error {
	return func(ctx context.Context, name string, args ...string) error {
		*calls = append(*calls, recordedCommand{name: name, args: args})
		return err
	}
}

func TestDesktopLinux(t *testing.T) {
	var calls []recordedCommand
	d := Desktop{GOOS: "linux", Run: recorder(&calls, nil)}

	require.NoError(t, d.Notify(Notification{Title: "Zombie Run", Body: "Loaded savefile #3", Timeout: time.Second}))
	require.Len(t, calls, 1)
	assert.Equal(t, "notify-send", calls[0].name)
	assert.Equal(t, []string{"--app-name", "Zombie Run", "--expire-time", "1000", "Zombie Run", "Loaded savefile #3"}, calls[0].args)
}

func TestDesktopDarwinQuotes(t *testing.T) {
	var calls []recordedCommand
	d := Desktop{GOOS: "darwin", Run: recorder(&calls, nil)}

	require.NoError(t, d.Notify(Notification{Title: `a "b"`, Body: `c\d`}))
	require.Len(t, calls, 1)
	assert.Equal(t, "osascript", calls[0].name)
	assert.Equal(t, []string{"-e", `display notification "c\\d" with title "a \"b\""`}, calls[0].args)
}

func TestDesktopWindows(t *testing.T) {
	var calls []recordedCommand
	d := Desktop{GOOS: "windows", Run: recorder(&calls, nil)}

	require.NoError(t, d.Notify(Notification{Title: "it's", Body: "x"}))
	require.Len(t, calls, 1)
	assert.Equal(t, "powershell", calls[0].name)
	assert.Contains(t, calls[0].args[3], "'it''s'")
}

func TestDesktopErrors(t *testing.T) {
	var calls []recordedCommand
	boom := errors.New("boom")
	err := Desktop{GOOS: "linux", Run: recorder(&calls, boom)}.Notify(Notification{})
	require.ErrorIs(t, err, boom)

	err = Desktop{GOOS: "plan9", Run: recorder(&calls, nil)}.Notify(Notification{})
	require.Error(t, err)
	require.Len(t, calls, 1)
}

func TestLogAndDiscard(t *testing.T) {
	var buf bytes.Buffer
	l := Log{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	require.NoError(t, l.Notify(Notification{Title: "t", Body: "b"}))
	assert.Contains(t, buf.String(), "body=b")

	require.NoError(t, Discard{}.Notify(Notification{Title: "t"}))
}

func TestDesktopDeadlineCoversDisplayTime(t *testing.T) {
	for _, tc := range []struct {
		timeout time.Duration
		atLeast time.Duration
	}{
		{0, time.Second + commandTimeout},
		{time.Second, time.Second + commandTimeout},
		{5 * time.Second, 5*time.Second + commandTimeout},
	} {
		var left time.Duration
		d := Desktop{GOOS: "windows", Run: func(ctx context.Context, _ string, _ ...string) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			left = time.Until(deadline)
			return nil
		}}
		require.NoError(t, d.Notify(Notification{Title: "t", Body: "b", Timeout: tc.timeout}))
		assert.Greater(t, left, tc.atLeast-time.Second, "timeout %v", tc.timeout)
		assert.LessOrEqual(t, left, tc.atLeast, "timeout %v", tc.timeout)
	}
}
