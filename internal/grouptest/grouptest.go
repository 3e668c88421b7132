// Package grouptest provides brute-force reference computations for tests
// of the group machinery. Everything here enumerates group elements and is
// only suitable for small degrees.
package grouptest

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/permgroup/pkg/perm"
)

// Key returns a map key identifying the images of p.
func Key(p perm.Source) string {
	images := make([]int, p.Degree())
	for i := range images {
		images[i] = p.Get(i)
	}
	return fmt.Sprint(images)
}

// Closure returns every element of the group generated by gens, identity
// first. n is the degree; it is used when gens is empty.
func Closure(n int, gens []*perm.Perm) []*perm.Perm {
	id := perm.Identity(n)
	seen := map[string]bool{Key(id): true}
	elems := []*perm.Perm{id}
	for i := 0; i < len(elems); i++ {
		for _, g := range gens {
			q := perm.Copy(perm.Mult(elems[i], g))
			k := Key(q)
			if !seen[k] {
				seen[k] = true
				elems = append(elems, q)
			}
		}
	}
	return elems
}

// Set indexes elems by Key.
func Set(elems []*perm.Perm) map[string]bool {
	out := make(map[string]bool, len(elems))
	for _, e := range elems {
		out[Key(e)] = true
	}
	return out
}

// Orbit returns the sorted orbit of w under the given group elements.
func Orbit(w int, elems []*perm.Perm) []int {
	seen := make(map[int]bool)
	for _, e := range elems {
		seen[e.Get(w)] = true
	}
	out := make([]int, 0, len(seen))
	for u := range seen {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// Stabilizer returns the elements of elems fixing every point in points.
func Stabilizer(elems []*perm.Perm, points ...int) []*perm.Perm {
	var out []*perm.Perm
outer:
	for _, e := range elems {
		for _, p := range points {
			if e.Get(p) != p {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// Sorted returns a sorted copy of points.
func Sorted(points []int) []int {
	out := slices.Clone(points)
	slices.Sort(out)
	return out
}

// Parse parses each cycle string as a permutation of degree n.
func Parse(n int, cycles ...string) []*perm.Perm {
	out := make([]*perm.Perm, len(cycles))
	for i, c := range cycles {
		out[i] = perm.MustParseCycles(c, n)
	}
	return out
}

// Random returns k uniformly random permutations of degree n drawn from a
// generator seeded with seed.
func Random(seed uint64, n, k int) []*perm.Perm {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]*perm.Perm, k)
	for i := range out {
		images := perm.Seq(n)
		r.Shuffle(n, func(a, b int) { images[a], images[b] = images[b], images[a] })
		out[i] = perm.MustFromImages(images...)
	}
	return out
}

// Fixture is a named generating set used across tests.
type Fixture struct {
	Name   string
	Degree int
	Cycles []string
	Order  int
}

// Fixtures lists small groups with known orders.
var Fixtures = []Fixture{
	{"trivial", 4, nil, 1},
	{"degree one", 1, nil, 1},
	{"S3", 3, []string{"(0 1)", "(0 1 2)"}, 6},
	{"C5", 5, []string{"(0 1 2 3 4)"}, 5},
	{"V4", 4, []string{"(0 1)(2 3)", "(0 2)(1 3)"}, 4},
	{"D4", 4, []string{"(0 1 2 3)", "(0 2)"}, 8},
	{"A4", 4, []string{"(0 1 2)", "(1 2 3)"}, 12},
	{"S4", 4, []string{"(0 1)", "(0 1 2 3)"}, 24},
	{"S5 redundant", 5, []string{"(0 1)", "(0 1 2 3 4)", "(1 2)"}, 120},
	{"A5", 5, []string{"(0 1 2)", "(0 1 2 3 4)"}, 60},
	{"intransitive", 6, []string{"(0 1 2)", "(3 4)"}, 6},
	{"with identity", 4, []string{"(0)", "(0 1)"}, 2},
	{"S3 x S3", 6, []string{"(0 1)", "(0 1 2)", "(3 4)", "(3 4 5)"}, 36},
}

// Perms parses the fixture's generators.
func (f Fixture) Perms() []*perm.Perm { return Parse(f.Degree, f.Cycles...) }
