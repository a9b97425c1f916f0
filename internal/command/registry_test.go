package command

import (
	"context"
	"io"
	"slices"
	"testing"
)

type stubCommand struct {
	*BaseCommand
	ran []string
}

func newStubCommand(name string) *stubCommand {
	return &stubCommand{BaseCommand: NewBaseCommand(name, "Stub "+name, name+" [args]")}
}

func (c *stubCommand) Execute(_ context.Context, args []string, _, _ io.Writer) error {
	c.ran = append(c.ran, args...)
	return nil
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(newStubCommand("beta"))
	registry.Register(newStubCommand("alpha"))

	cmd, err := registry.Get("alpha")
	if err != nil {
		t.Fatalf("Get(alpha): %v", err)
	}
	if cmd.Name() != "alpha" || cmd.Description() != "Stub alpha" || cmd.Usage() != "alpha [args]" {
		t.Errorf("unexpected command: %s %q %q", cmd.Name(), cmd.Description(), cmd.Usage())
	}

	if _, err := registry.Get("gamma"); err == nil {
		t.Error("expected error for unknown command")
	}

	if got := registry.List(); !slices.Equal(got, []string{"alpha", "beta"}) {
		t.Errorf("List() = %v", got)
	}
}

func TestRegistryReplace(t *testing.T) {
	registry := NewRegistry()
	first := newStubCommand("x")
	second := newStubCommand("x")
	registry.Register(first)
	registry.Register(second)

	cmd, err := registry.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	if cmd != Command(second) {
		t.Error("expected the later registration to win")
	}
	if len(registry.List()) != 1 {
		t.Errorf("expected one command, got %v", registry.List())
	}
}
