package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/config"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/store"
)

// appName is used for directories and display.
const appName = "kintree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	dataSource string
	cfg        config.Config
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Kintree lays out and renders family trees",
		Long: `Kintree reads a set of people with parent and spouse links, groups
married couples into units and lays the family out as a vertical,
horizontal or radial tree. Trees can be rendered to SVG, PNG, PDF, JSON
or Graphviz DOT, browsed in the terminal, or served over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $"+config.EnvFile+")")
	root.PersistentFlags().StringVarP(&c.dataSource, "data", "d", "", "people source: JSON file, SQLite database or mongodb:// URI")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.relationsCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetServerHooks(hooks)
	}
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	ch, err := c.cfg.Cache.Open(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// source resolves the store to read people from: the positional argument,
// else --data, else the config file.
func (c *CLI) source(args []string) (store.Config, error) {
	input := c.dataSource
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		if c.cfg.Store.DSN == "" {
			return store.Config{}, errors.New(errors.ErrCodeInvalidInput, "no people source: pass a file, --data or set [store] dsn in the config")
		}
		return c.cfg.Store, nil
	}
	return sourceConfig(input, c.cfg.Store), nil
}

// sourceConfig guesses the driver from the shape of input. Mongo database
// and collection names come from base.
func sourceConfig(input string, base store.Config) store.Config {
	switch {
	case strings.HasPrefix(input, "mongodb://"), strings.HasPrefix(input, "mongodb+srv://"):
		return store.Config{Driver: store.DriverMongo, DSN: input, Database: base.Database, Collection: base.Collection}
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".db", ".sqlite", ".sqlite3":
		return store.Config{Driver: store.DriverSQLite, DSN: input}
	}
	return store.Config{Driver: store.DriverJSON, DSN: input}
}

// openFamily loads the family with a spinner.
func (c *CLI) openFamily(ctx context.Context, runner *pipeline.Runner, args []string, refresh bool) (*pipeline.Family, error) {
	src, err := c.source(args)
	if err != nil {
		return nil, err
	}
	spinner := newSpinnerWithContext(ctx, "Loading people...")
	spinner.Start()
	fam, err := runner.Open(ctx, src, pipeline.Options{Refresh: refresh})
	if err != nil {
		spinner.StopWithError("Load failed")
		return nil, err
	}
	spinner.Stop()
	return fam, nil
}

// baseOptions returns pipeline options seeded from the config file.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		Mode:   c.cfg.Layout.Mode,
		Layout: c.cfg.Layout.Options(),
		Style:  c.cfg.Render.Style,
		Scale:  c.cfg.Render.Scale,
	}
}

// parseFormats splits a comma-separated format list.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
