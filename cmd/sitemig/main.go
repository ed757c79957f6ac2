// Package main provides the sitemig command-line tool for migrating legacy
// site content into the content collection format.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sitemig/internal/config"
	"sitemig/internal/contentfs"
	"sitemig/internal/logger"
)

// DefaultConfigFile is loaded when --config is not given and the file exists.
const DefaultConfigFile = "sitemig.yaml"

const ruler = "----------------------------------------------------------------"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	dryRun     bool

	cfg *config.Config
	log *logger.Logger
	now func() time.Time
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.NewLogger(cfg.Logging.Level).With("run", uuid.NewString(), "command", cmd.Name())

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
		a.log.SetLevel(a.logLevel)
	}

	a.log.Debug("loaded config", "config", cfg.String())

	if a.dryRun {
		a.log.Info("dry run, no files will be written")
	}

	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		if !contentfs.Exists(DefaultConfigFile) {
			return config.Default(), nil
		}

		path = DefaultConfigFile
	}

	return config.LoadConfig(path)
}

func (a *app) writer() *contentfs.Writer {
	return contentfs.NewWriter(a.dryRun)
}

// path resolves a configured content path.
func (a *app) path(p string) string {
	return a.cfg.Path(p)
}

func (a *app) printMode(out io.Writer) {
	if a.dryRun {
		fmt.Fprintln(out, "👀 Dry-run mode (no changes will be written)")
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "sitemig",
		Short: "Migrate legacy site content to the content collection format",
		Long: `sitemig moves Jekyll-era articles, people and publications into
schema-validated content collections.

Typical order:
  sitemig authors        build the author name to id mapping
  sitemig people         create person files for mapped authors
  sitemig articles       rewrite article front matter
  sitemig validate       check migrated articles
  sitemig publications   split publications.md into records
  sitemig contributors   link publication authors to people`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to the YAML config file (default "+DefaultConfigFile+" if present)")
	flags.BoolVar(&a.dryRun, "dry-run", false, "report what would change without writing files")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newAuthorsCmd(a),
		newPeopleCmd(a),
		newArticlesCmd(a),
		newValidateCmd(a),
		newPublicationsCmd(a),
		newContributorsCmd(a),
		newJekyllCmd(a),
		newYAMLFixCmd(a),
		newSearchCmd(a),
		newConfigCmd(a),
	)

	return root
}

func main() {
	root := newRootCmd(&app{now: time.Now})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
