// Package group implements permutation groups given by generating sets and
// the Schreier–Sims stabilizer chain built on top of them.
//
// # Overview
//
// A [Generated] group is a mutable generating set whose first element is
// always the identity. A [Stabilizer] derives the generating set of the
// subgroup fixing one point from the generators of a parent group:
//
//   - [Basic] keeps the parent generators that already fix the point. It is
//     cheap but approximate: Accurate reports false.
//   - [Schreier] builds Schreier generators t_u·g·t_{g(u)}^-1 from a
//     transversal and is exact: Accurate reports true.
//
// A [Chain] links Schreier stabilizers for successive base points and
// decides membership by sifting. [System] ties a generated group to a chain
// so that redundant generators are rejected on insertion.
//
// # Delta Propagation
//
// Every update carries only what changed. AddGenerator and AddGenerators
// take a [Next] continuation receiving the generating set and the index
// where the newly added generators start; downstream structures never
// rescan what they have already seen.
//
//	sys := group.NewSystem(provider.NewHeap(5))
//	defer sys.Release()
//	sys.AddGenerator(perm.MustParseCycles("(0 1)", 5))
//	sys.AddGenerator(perm.MustParseCycles("(0 1 2 3 4)", 5))
//	sys.Order() // 120
//
// # Ownership
//
// Permutations are obtained from a [provider.Provider]. Every structure
// releases exactly the handles it copied when Release is called. Generators
// passed downstream through Next are borrowed: they stay valid until the
// structure that produced them is released.
//
// # Errors
//
// The package does not return errors. Contract violations such as a degree
// mismatch panic; expected negative outcomes such as a point outside an
// orbit are reported through a boolean.
package group

import (
	"github.com/matzehuels/permgroup/pkg/orbit"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Group is a permutation group given by generators.
type Group interface {
	// Degree returns the number of points the group acts on.
	Degree() int

	// Generators returns the generating set, identity first. The slice is
	// owned by the group and must not be modified.
	Generators() []*perm.Perm

	// Provider returns the provider the group's permutations come from.
	Provider() provider.Provider
}

// Stabilizer is the subgroup of a parent group fixing one point.
type Stabilizer interface {
	Group

	// Fixed returns the point fixed by every generator.
	Fixed() int

	// Accurate reports whether the generators are guaranteed to generate
	// the whole stabilizer rather than a subgroup of it.
	Accurate() bool

	// AddGenerators incorporates parent generators gens[oldEnd:], given
	// that gens[:oldEnd] were incorporated before. next, if non-nil, is
	// called whenever the stabilizer's own generating set grows.
	AddGenerators(gens []*perm.Perm, oldEnd int, next Next)

	// Release returns every permutation the stabilizer owns.
	Release()
}

// Next receives a generating set in which gens[:oldEnd] were already known
// and gens[oldEnd:] are new.
type Next func(gens []*perm.Perm, oldEnd int)

// DupCheck decides whether cand is redundant with respect to the current
// generating set gens.
type DupCheck func(gens []*perm.Perm, cand perm.Source) bool

// NeverDuplicate accepts every candidate.
func NeverDuplicate([]*perm.Perm, perm.Source) bool { return false }

// LinearScan rejects a candidate equal to an existing generator.
func LinearScan(gens []*perm.Perm, cand perm.Source) bool {
	for _, g := range gens {
		if perm.Equal(g, cand) {
			return true
		}
	}
	return false
}

// OrbitOf returns the orbit of w under g, in discovery order.
func OrbitOf(w int, g Group) []int {
	return orbit.Of(w, g.Generators())
}

// IsTrivial reports whether g is generated by the identity alone.
func IsTrivial(g Group) bool {
	for _, p := range g.Generators() {
		if !perm.IsIdentity(p) {
			return false
		}
	}
	return true
}

func orNever(dup DupCheck) DupCheck {
	if dup == nil {
		return NeverDuplicate
	}
	return dup
}
