package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/filter"
	"github.com/matzehuels/kintree/pkg/person"
	"github.com/matzehuels/kintree/pkg/relations"
)

// relationsCommand creates the relations command.
func (c *CLI) relationsCommand() *cobra.Command {
	var (
		extended bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "relations <person-id> [source]",
		Short: "List the relatives of a person",
		Long: `List the parents, spouses, children and siblings of a person.

With --extended the paternal and maternal uncles and aunts are added,
each with their spouse.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidatePersonID(id); err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			fam, err := c.openFamily(cmd.Context(), runner, args[1:], refresh)
			if err != nil {
				return err
			}
			rel, err := fam.Index.Derive(id)
			if extended {
				rel, err = fam.Index.DeriveExtended(id)
			}
			if err != nil {
				return err
			}
			writeRelations(cmd.OutOrStdout(), rel)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&extended, "extended", "e", false, "include uncles and aunts")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload people even when a cached dataset exists")
	return cmd
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "search <query> [source]",
		Short: "Find people by name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateQuery(args[0]); err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			fam, err := c.openFamily(cmd.Context(), runner, args[1:], refresh)
			if err != nil {
				return err
			}
			found := filter.Search(fam.People, args[0])
			if len(found) == 0 {
				printInfo(cmd.OutOrStdout(), "No matches for %q", args[0])
				return nil
			}
			rows := make([][]string, len(found))
			for i, p := range found {
				rows[i] = personRow("", p)[1:]
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Born", "ID"}, rows, false))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload people even when a cached dataset exists")
	return cmd
}

func writeRelations(w io.Writer, rel relations.Relations) {
	fmt.Fprintln(w, StyleTitle.Render(rel.Focal.DisplayName()))
	rows := relationRows(rel)
	if len(rows) == 0 {
		fmt.Fprintln(w, StyleDim.Render("  no recorded relatives"))
		return
	}
	fmt.Fprintln(w, renderTable([]string{"Relation", "Name", "Years", "ID"}, rows, true))
}

// relationRows flattens rel into table rows, nearest relatives first.
func relationRows(rel relations.Relations) [][]string {
	var rows [][]string
	add := func(label string, people ...person.Person) {
		for _, p := range people {
			rows = append(rows, personRow(label, p))
		}
	}
	if rel.Father != nil {
		add("father", *rel.Father)
	}
	if rel.Mother != nil {
		add("mother", *rel.Mother)
	}
	add("spouse", rel.Spouses...)
	add("son", rel.Sons...)
	add("daughter", rel.Daughters...)
	add("child", rel.OtherChildren...)
	add("sibling", rel.Siblings...)

	avuncular := func(label string, list []relations.Avuncular) {
		for _, a := range list {
			add(label, a.Person)
			if len(a.Spouses) > 0 {
				add(a.SpouseLabel(), a.Spouses[0])
			}
		}
	}
	avuncular("paternal uncle", rel.PaternalUncles)
	avuncular("paternal aunt", rel.PaternalAunts)
	avuncular("maternal uncle", rel.MaternalUncles)
	avuncular("maternal aunt", rel.MaternalAunts)
	return rows
}

func personRow(label string, p person.Person) []string {
	years := p.Lifespan()
	if years == "" {
		years = markEmpty
	}
	return []string{label, p.DisplayName(), years, p.ID}
}
