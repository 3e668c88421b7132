package cli

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/group"
	groupio "github.com/matzehuels/permgroup/pkg/io"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/pipeline"
)

// build constructs the system for def. The caller must Release it.
func (c *CLI) build(ctx context.Context, def *groupio.Definition) (*group.System, error) {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	return runner.Build(ctx, def, c.pipelineOptions())
}

// orbitCommand creates the orbit command.
func (c *CLI) orbitCommand() *cobra.Command {
	var (
		gf     groupFlags
		point  int
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "orbit [definition] --point N",
		Short: "Print the orbit of a point",
		Args:  groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			if err := errors.ValidatePoint(point, def.Degree); err != nil {
				return err
			}
			sys, err := c.build(cmd.Context(), def)
			if err != nil {
				return err
			}
			defer sys.Release()

			orbit := group.OrbitOf(point, sys)
			if sorted {
				slices.Sort(orbit)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatInts(orbit))
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().IntVarP(&point, "point", "p", 0, "point whose orbit to print")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "sort the orbit instead of listing it in discovery order")

	return cmd
}

// memberCommand creates the member command.
func (c *CLI) memberCommand() *cobra.Command {
	var (
		gf    groupFlags
		perms []string
	)

	cmd := &cobra.Command{
		Use:   "member [definition] --perm CYCLES...",
		Short: "Test permutations for membership",
		Example: `  permgroup member a5.yaml --perm "(0 1 2)" --perm "(0 1)"`,
		Args: groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			if len(perms) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "no permutation given: pass --perm")
			}
			candidates := make([]*perm.Perm, len(perms))
			for i, s := range perms {
				p, err := perm.ParseCycles(s, def.Degree)
				if err != nil {
					return fmt.Errorf("--perm %s: %w", s, err)
				}
				candidates[i] = p
			}

			sys, err := c.build(cmd.Context(), def)
			if err != nil {
				return err
			}
			defer sys.Release()

			out := cmd.OutOrStdout()
			for i, p := range candidates {
				fmt.Fprintf(out, "%s\t%t\n", perms[i], sys.IsMember(p))
			}
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().StringArrayVarP(&perms, "perm", "p", nil, "permutation in cycle notation (repeatable)")

	return cmd
}

// chainCommand creates the chain command.
func (c *CLI) chainCommand() *cobra.Command {
	var gf groupFlags

	cmd := &cobra.Command{
		Use:   "chain [definition]",
		Short: "Print the stabilizer chain level by level",
		Args:  groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			sys, err := c.build(cmd.Context(), def)
			if err != nil {
				return err
			}
			defer sys.Release()

			fmt.Fprintln(cmd.OutOrStdout(), chainTable(sys))
			return nil
		},
	}

	gf.register(cmd)
	return cmd
}

// chainTable renders one row per chain level.
func chainTable(sys *group.System) string {
	var rows [][]string
	for i, l := range sys.Levels() {
		lv := pipeline.DescribeLevel(l)
		rows = append(rows, []string{
			fmt.Sprint(i),
			fmt.Sprint(lv.Fixed),
			fmt.Sprint(len(lv.Orbit)),
			formatInts(lv.Orbit),
			strings.Join(lv.Generators[1:], " "),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "Fixes", "Size", "Orbit", "Stabilizer generators").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// elementsCommand creates the elements command.
func (c *CLI) elementsCommand() *cobra.Command {
	var (
		gf    groupFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "elements [definition]",
		Short: "List group elements in cycle notation",
		Args:  groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			if limit < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--limit must not be negative")
			}
			sys, err := c.build(cmd.Context(), def)
			if err != nil {
				return err
			}
			defer sys.Release()

			if limit > 0 && sys.Order().Cmp(big.NewInt(int64(limit))) > 0 {
				c.Logger.Warn("listing a prefix of the group", "order", sys.Order(), "limit", limit)
			}
			out := cmd.OutOrStdout()
			for _, p := range sys.Elements(limit) {
				fmt.Fprintln(out, perm.FormatCycles(p))
			}
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 1000, "maximum number of elements; 0 lists all")

	return cmd
}
