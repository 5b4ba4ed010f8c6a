package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/internal/api"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		flags layoutFlags
	)
	opts := c.baseOptions()

	cmd := &cobra.Command{
		Use:   "serve [source]",
		Short: "Serve a family tree over HTTP",
		Long: `Serve a family tree over HTTP.

The people are loaded once at startup. Query parameters on /api/tree and
/api/tree/export.{format} override the layout and render settings given
here.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeConfig(cmd, &opts)
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), args, addr, opts, flags)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "listen address")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "default style: simple, clan")
	flags.register(cmd, &opts)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, w io.Writer, args []string, addr string, opts pipeline.Options, flags layoutFlags) error {
	if err := opts.ValidateForRender(); err != nil {
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

	srv := api.New(fam, runner, api.WithDefaults(opts), api.WithLogger(c.Logger))
	printSuccess(w, "Serving %d people", fam.Len())
	printKeyValue(w, "Address", addr)
	fmt.Fprintln(w)
	return srv.ListenAndServe(ctx, addr)
}
