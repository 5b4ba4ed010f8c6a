package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/store"
	"github.com/matzehuels/kintree/pkg/tree"
)

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <source> <destination>",
		Short: "Copy people from one store into another",
		Long: `Copy people from one store into another.

Records are normalized on the way and merged into the destination by id.
A JSON destination that does not exist yet is created.`,
		Example: `  kintree import family.json family.db
  kintree import family.db mongodb://localhost:27017`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.runImport(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Imported %d people", n)
			printFile(cmd.OutOrStdout(), args[1])
			return nil
		},
	}
}

func (c *CLI) runImport(ctx context.Context, from, to string) (int, error) {
	src, err := store.Open(ctx, sourceConfig(from, c.cfg.Store))
	if err != nil {
		return 0, err
	}
	defer src.Close()

	records, err := src.People(ctx)
	if err != nil {
		return 0, err
	}
	records = person.ToRecords(person.Normalize(records))

	dstCfg := sourceConfig(to, c.cfg.Store)
	if dstCfg.Driver == store.DriverJSON {
		if _, err := os.Stat(to); os.IsNotExist(err) {
			if err := tree.WriteDatasetFile(tree.Dataset{People: []person.Record{}}, to); err != nil {
				return 0, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create %s", to)
			}
		}
	}
	dst, err := store.Open(ctx, dstCfg)
	if err != nil {
		return 0, err
	}
	defer dst.Close()

	w, ok := dst.(store.Writer)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnsupported, "%s store is read-only", dstCfg.Driver)
	}
	if err := w.Put(ctx, records); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write %s", to)
	}
	c.Logger.Debug("imported people", "from", from, "to", to, "count", len(records))
	return len(records), nil
}
