package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/pipeline"
	"github.com/matzehuels/kintree/pkg/tree"
)

// layoutFlags are the flags shared by commands that compute a layout.
type layoutFlags struct {
	noCache bool
	refresh bool
}

func (f *layoutFlags) register(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", opts.Mode, "layout mode: vertical, horizontal, radial")
	cmd.Flags().Float64Var(&opts.Layout.UnitWidth, "unit-width", opts.Layout.UnitWidth, "card width along the sibling axis")
	cmd.Flags().Float64Var(&opts.Layout.CardDepth, "card-depth", opts.Layout.CardDepth, "card size along the generation axis")
	cmd.Flags().Float64Var(&opts.Layout.SiblingGap, "sibling-gap", opts.Layout.SiblingGap, "gap between sibling subtrees")
	cmd.Flags().Float64Var(&opts.Layout.LevelGap, "level-gap", opts.Layout.LevelGap, "distance between generations")
	cmd.Flags().Float64Var(&opts.Layout.RingGap, "ring-gap", opts.Layout.RingGap, "distance between rings (radial)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "reload people even when a cached dataset exists")
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "layout [source]",
		Short: "Compute a family tree layout",
		Long: `Compute a family tree layout.

The layout command loads people, groups couples into units and positions
every card. The result is written as layout JSON, which other tools can
render or the 'render' command can regenerate in any format.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args, opts, output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file")
	flags.register(cmd, &opts)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, args []string, opts pipeline.Options, output string, flags layoutFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	fam, err := c.openFamily(ctx, runner, args, flags.refresh)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, fam, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if err := tree.WriteLayoutFile(l, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess(w, "Layout complete (%s)", l.Mode)
	printFile(w, output)
	fmt.Fprintln(w, familySummary(fam.Forest, fam.Len(), cacheLayer{"layout", cacheHit}))
	printNextStep(w, "Render", appName+" render -m "+l.Mode)
	return nil
}

// mergeConfig fills options the user left at their flag defaults with
// values from the config file, which is only loaded once flags are parsed.
func (c *CLI) mergeConfig(cmd *cobra.Command, opts *pipeline.Options) {
	base := c.baseOptions()
	changed := cmd.Flags().Changed
	if !changed("mode") {
		opts.Mode = base.Mode
	}
	if !changed("unit-width") {
		opts.Layout.UnitWidth = base.Layout.UnitWidth
	}
	if !changed("card-depth") {
		opts.Layout.CardDepth = base.Layout.CardDepth
	}
	if !changed("sibling-gap") {
		opts.Layout.SiblingGap = base.Layout.SiblingGap
	}
	if !changed("level-gap") {
		opts.Layout.LevelGap = base.Layout.LevelGap
	}
	if !changed("ring-gap") {
		opts.Layout.RingGap = base.Layout.RingGap
	}
	opts.Layout.SpouseGap = base.Layout.SpouseGap
	if cmd.Flags().Lookup("style") != nil && !changed("style") {
		opts.Style = base.Style
	}
	if cmd.Flags().Lookup("scale") != nil && !changed("scale") {
		opts.Scale = base.Scale
	}
}
