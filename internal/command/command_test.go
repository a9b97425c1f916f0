package command

import (
	"flag"
	"io"
	"os"
	"testing"
)

func newFlagSet(cmd Command) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.SetupFlags(fs)
	return fs
}

// unsetenv removes keys for the duration of the test. An empty variable
// still overrides the config file, so tests must not just set it to "".
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
