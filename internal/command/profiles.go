package command

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/joeycumines/zombie-run/internal/config"
	"github.com/joeycumines/zombie-run/internal/savefile"
)

// ProfilesCommand lists the discovered save files.
type ProfilesCommand struct {
	*BaseCommand
	config   *config.Config
	saveRoot string
	full     bool
}

// NewProfilesCommand creates a new profiles command.
func NewProfilesCommand(cfg *config.Config) *ProfilesCommand {
	return &ProfilesCommand{
		BaseCommand: NewBaseCommand(
			"profiles",
			"List the discovered save files",
			"profiles [--save-root dir] [--full]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the profiles command.
func (c *ProfilesCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.saveRoot, "save-root", "", "Directory holding the per-game save folders (overrides save.root)")
	fs.BoolVar(&c.full, "full", false, "Print full paths instead of the shortened display form")
}

// Execute lists the profiles in discovery order. The first one is the
// profile a session starts on.
func (c *ProfilesCommand) Execute(_ context.Context, args []string, stdout, stderr io.Writer) error {
	if err := noArgs(args, stderr); err != nil {
		return err
	}
	dcfg, err := discoverConfig(c.config, c.Name(), c.saveRoot)
	if err != nil {
		return err
	}
	locations, err := savefile.Discover(dcfg)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		_, _ = fmt.Fprintln(stderr, "No save files found.")
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	for i, loc := range locations {
		path := savefile.ShortenPath(loc.Path, savefile.MaxDisplayPathLength)
		if c.full {
			path = loc.Path
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i, loc.Game, path)
	}
	return w.Flush()
}

// discoverConfig reads the discovery settings from the environment, then
// applies the save root from flagRoot or the config file.
func discoverConfig(cfg *config.Config, command, flagRoot string) (savefile.DiscoverConfig, error) {
	dcfg, err := savefile.LoadDiscoverConfig()
	if err != nil {
		return dcfg, err
	}
	root := flagRoot
	if root == "" {
		root = config.DefaultSchema().Resolve(cfg, command, config.KeySaveRoot)
	}
	if root != "" {
		dcfg.Root = root
	}
	return dcfg, nil
}
