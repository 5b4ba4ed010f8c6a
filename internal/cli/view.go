package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/pipeline"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags     layoutFlags
		exportDir string
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "view [source]",
		Short: "Browse a family tree in the terminal",
		Long: `Browse a family tree in the terminal.

Keys:
  + / -      zoom in and out around the center
  0          reset zoom
  f          fit the tree to the screen
  arrows     pan (also h j k l)
  m          cycle vertical, horizontal and radial layouts
  /          search by name
  e / p      export the whole tree as SVG or PNG
  q          quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			return c.runView(cmd.Context(), args, opts, flags, exportDir)
		},
	}

	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "style for exports: simple, clan")
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for exported files")
	flags.register(cmd, &opts)

	return cmd
}

func (c *CLI) runView(ctx context.Context, args []string, opts pipeline.Options, flags layoutFlags, exportDir string) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	fam, err := c.openFamily(ctx, runner, args, flags.refresh)
	if err != nil {
		return err
	}
	l, err := runner.Layout(ctx, fam, opts)
	if err != nil {
		return err
	}

	m, err := NewViewerModel(ctx, runner, fam, l, opts, c.cfg.Viewport.Options(), exportDir)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
