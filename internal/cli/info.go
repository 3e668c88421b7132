package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/pipeline"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		gf       groupFlags
		asJSON   bool
		elements int
	)

	cmd := &cobra.Command{
		Use:   "info [definition]",
		Short: "Summarize a group: order, base, orbit lengths, strong generators",
		Example: `  permgroup info s5.toml
  permgroup info -n 4 -g "(0 1 2 3)" -g "(0 2)" --elements 8`,
		Args: groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := c.pipelineOptions()
			opts.ElementLimit = elements

			spin := startSpinner(ctx, "Building stabilizer chain...")
			opts.Progress = spin.buildProgress(def.DisplayName())
			prog := newProgress(loggerFromContext(ctx))
			summary, cached, err := runner.Analyze(ctx, def, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done("Analyzed "+def.DisplayName(), "order", summary.Order, "cached", cached)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(out, summary, cached)
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().IntVar(&elements, "elements", 0, fmt.Sprintf("also list up to this many elements (max %d)", pipeline.MaxElementLimit))

	return cmd
}

func printSummary(w io.Writer, s *pipeline.Summary, cached bool) {
	name := s.Name
	if name == "" {
		name = "group"
	}
	fmt.Fprintln(w, StyleTitle.Render(name))
	printKeyValue(w, "degree", fmt.Sprint(s.Degree))
	printKeyValue(w, "order", StyleNumber.Render(s.Order))
	printKeyValue(w, "base", formatInts(s.Base))
	printKeyValue(w, "orbit lengths", formatInts(s.OrbitLengths))
	printKeyValue(w, "generators", strings.Join(s.Generators, " "))
	printKeyValue(w, "strong gens", strings.Join(s.StrongGenerators, " "))
	if len(s.Elements) > 0 {
		printKeyValue(w, "elements", strings.Join(s.Elements, " "))
	}
	printStats(w, len(s.Levels), len(s.StrongGenerators), cached)
}

func formatInts(xs []int) string {
	if len(xs) == 0 {
		return "-"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
