package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/errors"
	groupio "github.com/matzehuels/permgroup/pkg/io"
)

// groupFlags selects the group a command works on: a definition file
// argument, or --degree with one --gen per generator.
type groupFlags struct {
	degree int
	gens   []string
	name   string
	base   []int
}

func (f *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.degree, "degree", "n", 0, "number of points, for a group given by --gen")
	cmd.Flags().StringArrayVarP(&f.gens, "gen", "g", nil, `generator in cycle notation, e.g. "(0 1)(2 3)" (repeatable)`)
	cmd.Flags().StringVar(&f.name, "name", "", "group name")
	cmd.Flags().IntSliceVar(&f.base, "base", nil, "preferred base points, comma-separated")
}

// definition returns the selected group definition, validated.
func (f *groupFlags) definition(args []string) (*groupio.Definition, error) {
	inline := f.degree != 0 || len(f.gens) > 0
	var def *groupio.Definition
	switch {
	case len(args) > 0 && inline:
		return nil, errors.New(errors.ErrCodeInvalidInput, "pass either a definition file or --degree/--gen, not both")
	case len(args) > 0:
		loaded, err := groupio.Load(args[0])
		if err != nil {
			return nil, err
		}
		def = loaded
	case inline:
		def = &groupio.Definition{Degree: f.degree, Generators: f.gens}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "no group given: pass a definition file or --degree and --gen")
	}
	if f.name != "" {
		def.Name = f.name
	}
	if len(f.base) > 0 {
		def.Base = f.base
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// groupArgs accepts at most one definition file.
var groupArgs = cobra.MaximumNArgs(1)
