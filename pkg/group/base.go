package group

import (
	"fmt"

	"github.com/matzehuels/permgroup/pkg/perm"
)

// BasePointPolicy chooses the point fixed by a new chain level. It receives
// the first non-identity generator that reaches the level and must return a
// point that generator moves.
type BasePointPolicy func(p perm.Source) int

// FirstMoved picks the smallest point moved by p.
func FirstMoved(p perm.Source) int {
	i, ok := perm.Moved(p)
	if !ok {
		panic(fmt.Sprintf("group: base point requested for the identity %v", perm.FormatCycles(p)))
	}
	return i
}

// Preferred picks the first point of base moved by p, falling back to
// FirstMoved when p fixes all of them.
func Preferred(base []int) BasePointPolicy {
	base = append([]int(nil), base...)
	return func(p perm.Source) int {
		for _, b := range base {
			if b >= 0 && b < p.Degree() && !perm.Fixes(p, b) {
				return b
			}
		}
		return FirstMoved(p)
	}
}
