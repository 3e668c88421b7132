// Package orbit computes orbits of points under a growing set of generators.
//
// An [Orbit] holds the points reachable from a base point w in discovery
// order, w first, together with a membership index. It only ever grows:
// [Orbit.Update] extends it when generators are appended, visiting each
// (point, generator) pair exactly once across all calls.
//
//	o := orbit.New(n, w)
//	o.Update(gens, 0, onNew, onDup)        // all of gens are new
//	gens = append(gens, g)
//	o.Update(gens, len(gens)-1, onNew, onDup) // only g is new
//
// Two membership indexes are available. [New] keeps the position of every
// point and supports [Orbit.Position]; [NewBitset] keeps membership only.
package orbit

import (
	"fmt"

	"github.com/matzehuels/permgroup/pkg/perm"
)

// Visit is called while an orbit grows. The point u was mapped to img by
// gens[gen].
type Visit func(u, img, gen int)

// Orbit is the orbit of a base point. The zero value is not usable.
type Orbit struct {
	points []int
	in     index
}

// New returns the orbit {w} over points [0, n), indexed by position. The
// point range is widened to include w, so degree 0 and 1 orbits are valid.
func New(n, w int) *Orbit {
	checkBase(w)
	return newOrbit(newPositionIndex(max(n, w+1)), w)
}

// NewBitset returns the orbit {w} over points [0, n), indexed by a
// membership bitset. Position is not supported.
func NewBitset(n, w int) *Orbit {
	checkBase(w)
	return newOrbit(newBitsetIndex(max(n, w+1)), w)
}

func checkBase(w int) {
	if w < 0 {
		panic(fmt.Sprintf("orbit: negative base point %d", w))
	}
}

func newOrbit(in index, w int) *Orbit {
	o := &Orbit{in: in}
	o.Clear(w)
	return o
}

// Clear resets the orbit to {w}. w must lie in the orbit's point range.
func (o *Orbit) Clear(w int) {
	if w < 0 || w >= o.in.size() {
		panic(fmt.Sprintf("orbit: base point %d out of range [0;%d[", w, o.in.size()))
	}
	o.in.clear(w, o.points)
	o.points = append(o.points[:0], w)
}

// Update extends the orbit with generators gens[oldEnd:], given that
// gens[:oldEnd] have already been applied. The new generators are first
// applied to every point known before the call; then every generator is
// applied to every point discovered from there on, including points found
// during that sweep. onNew is called for each unseen image and onDup for
// each image already in the orbit; either may be nil. Update reports whether
// the orbit is unchanged.
func (o *Orbit) Update(gens []*perm.Perm, oldEnd int, onNew, onDup Visit) (unchanged bool) {
	if oldEnd < 0 || oldEnd > len(gens) {
		panic(fmt.Sprintf("orbit: old end %d outside generator range [0;%d]", oldEnd, len(gens)))
	}
	prevEnd := len(o.points)
	for gi := oldEnd; gi < len(gens); gi++ {
		g := gens[gi]
		for i := 0; i < prevEnd; i++ {
			o.visit(o.points[i], g.Get(o.points[i]), gi, onNew, onDup)
		}
	}
	for i := prevEnd; i < len(o.points); i++ {
		u := o.points[i]
		for gi, g := range gens {
			o.visit(u, g.Get(u), gi, onNew, onDup)
		}
	}
	return prevEnd == len(o.points)
}

func (o *Orbit) visit(u, img, gen int, onNew, onDup Visit) {
	if !o.in.contains(img) {
		o.points = append(o.points, img)
		o.in.add(img, len(o.points))
		if onNew != nil {
			onNew(u, img, gen)
		}
		return
	}
	if onDup != nil {
		onDup(u, img, gen)
	}
}

// Root returns the base point.
func (o *Orbit) Root() int { return o.points[0] }

// Points returns the orbit in discovery order. The slice is shared with the
// orbit and must not be modified; it is invalidated by Update and Clear.
func (o *Orbit) Points() []int { return o.points }

// Len returns the number of points in the orbit.
func (o *Orbit) Len() int { return len(o.points) }

// Contains reports whether u is in the orbit. Points outside [0, n) are
// never contained.
func (o *Orbit) Contains(u int) bool {
	return u >= 0 && u < o.in.size() && o.in.contains(u)
}

// Position returns the index of u in Points. It panics if u is not in the
// orbit or the orbit was built with NewBitset.
func (o *Orbit) Position(u int) int {
	if !o.Contains(u) {
		panic(fmt.Sprintf("orbit: point %d is not in the orbit of %d", u, o.Root()))
	}
	pos, ok := o.in.position(u)
	if !ok {
		panic("orbit: position lookup requires a position index")
	}
	return pos
}

// Of returns the orbit of w under gens, in discovery order. The degree is
// taken from the first generator; with no generators the orbit is {w}.
func Of(w int, gens []*perm.Perm) []int {
	n := 0
	if len(gens) > 0 {
		n = gens[0].Degree()
	}
	o := NewBitset(n, w)
	o.Update(gens, 0, nil, nil)
	return o.Points()
}
