package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// filterFlags hold the raw filter flag values; they are parsed together so
// an untouched set means "no filter".
type filterFlags struct {
	clan       string
	generation string
	gender     string
	living     string
	deceased   string
	query      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.clan, "clan", "", "only show members of this clan")
	cmd.Flags().StringVar(&f.generation, "generation", "", "only show this generation")
	cmd.Flags().StringVar(&f.gender, "gender", "", "only show this gender: male, female, other")
	cmd.Flags().StringVar(&f.living, "living", "", "show living people (default true)")
	cmd.Flags().StringVar(&f.deceased, "deceased", "", "show deceased people (default true)")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "highlight people matching this name")
}

// parse returns nil when no filter flag was given.
func (f filterFlags) parse() (*filter.Filter, error) {
	if f == (filterFlags{}) {
		return nil, nil
	}
	flt, err := filter.ParseFilter(f.clan, f.generation, f.gender, f.living, f.deceased, f.query)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return &flt, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		flags   layoutFlags
		filters filterFlags
	)
	opts := c.baseOptions()
	opts.VizType = pipeline.VizTree

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a family tree to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a family tree to SVG, PNG, PDF, JSON or DOT.

Tree output (-t tree) draws couples side by side with their children below.
Node-link output (-t nodelink) hands the same structure to Graphviz.

Filter flags dim people who do not match; --query highlights name matches.`,
		Example: `  kintree render family.json -f svg,png
  kintree render family.db -m radial --style clan -o clan
  kintree render -d family.json --clan Okafor --living=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			opts.Formats = parseFormats(formats)
			flt, err := filters.parse()
			if err != nil {
				return err
			}
			opts.Filter = flt
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args, opts, output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "family", "output path without extension")
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatSVG, "output formats, comma separated: svg, png, pdf, json, dot")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: tree, nodelink")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: simple, clan")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include lifespans in node-link labels")
	flags.register(cmd, &opts)
	filters.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, args []string, opts pipeline.Options, output string, flags layoutFlags) error {
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
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

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, fam, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(paths)))

	printSuccess(w, "Rendered %s tree", result.Layout.Mode)
	for _, p := range paths {
		printFile(w, p)
	}
	fmt.Fprintln(w, familySummary(result.Family.Forest, result.Stats.People,
		cacheLayer{"layout", result.CacheInfo.LayoutHit},
		cacheLayer{"render", result.CacheInfo.RenderHit}))
	return nil
}

// writeArtifacts writes each artifact to base.<format> and returns the paths
// in format order.
func writeArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
