// Package transversal maintains Schreier transversals: for each point u in
// the orbit of a root w, a permutation t_u with t_u(w) == u.
//
// [Explicit] stores every t_u as a materialized permutation obtained from a
// provider, together with the predecessor point and the generator that
// discovered u. The predecessor links form the Schreier tree of the orbit.
package transversal

import (
	"fmt"
	"strings"

	"github.com/matzehuels/permgroup/pkg/orbit"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Visit is called while the transversal grows. gens[gen] maps u to img.
// For a new point, t is the freshly stored t_img; for a known point it is
// t_u. t is owned by the transversal and must not be released or modified.
type Visit func(u, img, gen int, t *perm.Perm)

// Explicit is a transversal holding one permutation per orbit point.
type Explicit struct {
	prov  provider.Provider
	orbit *orbit.Orbit
	perms []*perm.Perm
	pred  []int
	via   []int
}

// New returns the transversal of the orbit {root}; t_root is the identity.
func New(root int, prov provider.Provider) *Explicit {
	return &Explicit{
		prov:  prov,
		orbit: orbit.New(prov.Degree(), root),
		perms: []*perm.Perm{prov.MakeIdentity()},
		pred:  []int{root},
		via:   []int{-1},
	}
}

// Update extends the orbit with gens[oldEnd:] as in [orbit.Orbit.Update].
// For every newly discovered point img, t_img = t_u·g is stored before
// onNew is called. Either callback may be nil. Update reports whether the
// orbit is unchanged.
func (t *Explicit) Update(gens []*perm.Perm, oldEnd int, onNew, onDup Visit) bool {
	return t.orbit.Update(gens, oldEnd,
		func(u, img, gen int) {
			tImg := t.prov.Copy(perm.Mult(t.Element(u), gens[gen]))
			t.perms = append(t.perms, tImg)
			t.pred = append(t.pred, u)
			t.via = append(t.via, gen)
			if onNew != nil {
				onNew(u, img, gen, tImg)
			}
		},
		func(u, img, gen int) {
			if onDup != nil {
				onDup(u, img, gen, t.Element(u))
			}
		})
}

// Element returns t_u. It panics if u is not in the orbit.
func (t *Explicit) Element(u int) *perm.Perm {
	return t.perms[t.orbit.Position(u)]
}

// Predecessor returns the point from which u was discovered. The root is
// its own predecessor. It panics if u is not in the orbit.
func (t *Explicit) Predecessor(u int) int {
	return t.pred[t.orbit.Position(u)]
}

// Via returns the index of the generator that mapped Predecessor(u) to u,
// or -1 for the root. It panics if u is not in the orbit.
func (t *Explicit) Via(u int) int {
	return t.via[t.orbit.Position(u)]
}

// Root returns the base point of the orbit.
func (t *Explicit) Root() int { return t.pred[0] }

// Orbit returns the underlying orbit. It must not be updated directly.
func (t *Explicit) Orbit() *orbit.Orbit { return t.orbit }

// Contains reports whether u is in the orbit.
func (t *Explicit) Contains(u int) bool { return t.orbit.Contains(u) }

// Len returns the orbit length.
func (t *Explicit) Len() int { return t.orbit.Len() }

// Release returns every stored permutation to the provider. The
// transversal must not be used afterwards.
func (t *Explicit) Release() {
	for _, p := range t.perms {
		t.prov.Release(p)
	}
	t.perms = nil
}

// String renders the Schreier tree one point per line.
func (t *Explicit) String() string {
	var b strings.Builder
	for i, u := range t.orbit.Points() {
		fmt.Fprintf(&b, "%d -> %d: %s\n", t.pred[i], u, perm.FormatCycles(t.perms[i]))
	}
	return b.String()
}
