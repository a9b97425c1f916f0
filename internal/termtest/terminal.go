//go:build unix

package termtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Options configures Start.
type Options struct {
	// Env is appended to the current environment.
	Env  []string
	Dir  string
	Rows uint16
	Cols uint16
}

// Terminal is a process attached to a pseudo terminal.
type Terminal struct {
	cmd  *exec.Cmd
	ptm  *os.File
	done chan struct{}

	mu      sync.Mutex
	output  bytes.Buffer
	waitErr error
}

// Start runs name on a new pseudo terminal. The process is killed when ctx
// is done. Call Close when finished.
func Start(ctx context.Context, opts Options, name string, args ...string) (*Terminal, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, opts.Env...)
	cmd.Dir = opts.Dir

	size := &pty.Winsize{Rows: opts.Rows, Cols: opts.Cols}
	if size.Rows == 0 {
		size.Rows = 24
	}
	if size.Cols == 0 {
		size.Cols = 80
	}
	ptm, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("failed to start %s on a pty: %w", name, err)
	}

	t := &Terminal{cmd: cmd, ptm: ptm, done: make(chan struct{})}
	go t.read()
	go func() {
		err := cmd.Wait()
		t.mu.Lock()
		t.waitErr = err
		t.mu.Unlock()
		close(t.done)
	}()
	return t, nil
}

func (t *Terminal) read() {
	buf := make([]byte, 4096)
	for {
		n, err := t.ptm.Read(buf)
		if n > 0 {
			t.mu.Lock()
			t.output.Write(buf[:n])
			t.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes s to the terminal as typed input.
func (t *Terminal) Send(s string) error {
	_, err := t.ptm.WriteString(s)
	return err
}

// SendKeys types each named key, see KeySequence, pausing briefly between
// them so the program sees separate key events.
func (t *Terminal) SendKeys(keys ...string) error {
	for _, name := range keys {
		seq, err := KeySequence(name)
		if err != nil {
			return err
		}
		if err := t.Send(seq); err != nil {
			return fmt.Errorf("failed to send %s: %w", name, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

// Output returns everything the program has written so far.
func (t *Terminal) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.output.String()
}

// OutputLen returns the number of bytes written so far, for ExpectSince.
func (t *Terminal) OutputLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.output.Len()
}

// Expect waits until text appears anywhere in the output.
func (t *Terminal) Expect(text string, timeout time.Duration) error {
	return t.ExpectSince(text, 0, timeout)
}

// ExpectSince waits until text appears in the output written after offset
// start.
func (t *Terminal) ExpectSince(text string, start int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		out := t.Output()
		if start <= len(out) && strings.Contains(out[start:], text) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%q not found after %v, output since %d:\n%q", text, timeout, start, out[min(start, len(out)):])
		}
		select {
		case <-t.done:
			// one last read may still be in flight
			time.Sleep(50 * time.Millisecond)
			out := t.Output()
			if strings.Contains(out[min(start, len(out)):], text) {
				return nil
			}
			return fmt.Errorf("process exited before %q was written", text)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Wait waits for the process to exit and returns its exit code.
func (t *Terminal) Wait(timeout time.Duration) (int, error) {
	select {
	case <-t.done:
	case <-time.After(timeout):
		return -1, fmt.Errorf("process still running after %v", timeout)
	}
	t.mu.Lock()
	err := t.waitErr
	t.mu.Unlock()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return -1, err
	}
}

// Close kills the process if it is still running and releases the pty.
func (t *Terminal) Close() error {
	select {
	case <-t.done:
	default:
		_ = t.cmd.Process.Kill()
		<-t.done
	}
	return t.ptm.Close()
}
