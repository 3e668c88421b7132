package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path; empty writes to stdout
	format   string   // "dot" or "svg"
	title    string   // graph title
	labels   []string // point names, by point
	elements bool     // show transversal elements on nodes
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		gf   groupFlags
		opts renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [definition]",
		Short: "Draw the Schreier trees of the stabilizer chain",
		Long: `Render draws one cluster per chain level. Each cluster is the Schreier
tree of the level: the fixed point at the root, and an edge labelled gK from
a point to every point first reached through generator K.`,
		Example: `  permgroup render s5.toml -o s5.svg
  permgroup render -n 4 -g "(0 1 2 3)" -f dot --labels a,b,c,d`,
		Args: groupArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := gf.definition(args)
			if err != nil {
				return err
			}
			if opts.format == "" {
				opts.format = formatFromOutput(opts.output)
			}
			if opts.format != render.FormatDOT && opts.format != render.FormatSVG {
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want dot or svg)", opts.format)
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := startSpinner(ctx, "Rendering...")
			popts := c.pipelineOptions()
			popts.Progress = spin.buildProgress(def.DisplayName())
			data, cached, err := runner.Render(ctx, def, opts.format, render.Options{
				Labels:   opts.labels,
				Elements: opts.elements,
				Title:    opts.title,
			}, popts)
			if err != nil {
				spin.StopWithError("Rendering failed")
				return err
			}
			c.Logger.Debug("rendered", "format", opts.format, "bytes", len(data), "cached", cached)

			if opts.output == "" {
				spin.Stop()
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				spin.Stop()
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			spin.StopWithSuccess("Rendered " + def.DisplayName())
			printFile(opts.output)
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, dot (default from --output extension, else svg)")
	cmd.Flags().StringVar(&opts.title, "title", "", "graph title")
	cmd.Flags().StringSliceVar(&opts.labels, "labels", nil, "point names in point order, comma-separated")
	cmd.Flags().BoolVar(&opts.elements, "elements", false, "show the transversal element of every node")
	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{render.FormatSVG, render.FormatDOT}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// formatFromOutput picks the format from the output extension, defaulting
// to svg.
func formatFromOutput(output string) string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".dot", ".gv":
		return render.FormatDOT
	}
	return render.FormatSVG
}
