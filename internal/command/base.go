// Package command implements the zr subcommands.
package command

import (
	"context"
	"flag"
	"io"
)

// Command is a subcommand of zr.
type Command interface {
	Name() string
	Description() string
	Usage() string

	// SetupFlags registers the command's flags. It is called once, before
	// the arguments are parsed.
	SetupFlags(fs *flag.FlagSet)

	// Execute runs the command with the arguments left after flag parsing.
	// Long running commands stop when ctx is done.
	Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

// BaseCommand holds the descriptive fields shared by every command. Embed it
// and implement Execute.
type BaseCommand struct {
	name        string
	description string
	usage       string
}

// NewBaseCommand creates a new BaseCommand.
func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{
		name:        name,
		description: description,
		usage:       usage,
	}
}

// Name returns the command name.
func (c *BaseCommand) Name() string {
	return c.name
}

// Description returns the command description.
func (c *BaseCommand) Description() string {
	return c.description
}

// Usage returns the command usage.
func (c *BaseCommand) Usage() string {
	return c.usage
}

// SetupFlags registers no flags.
func (c *BaseCommand) SetupFlags(*flag.FlagSet) {}

// noArgs rejects positional arguments.
func noArgs(args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return nil
	}
	_, _ = io.WriteString(stderr, "unexpected arguments: "+joinArgs(args)+"\n")
	return errUnexpectedArgs
}
