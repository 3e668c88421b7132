package group

import (
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Basic approximates a stabilizer by keeping the parent generators that fix
// the point. It never synthesizes new elements, so its generators may span
// only part of the true stabilizer.
//
// Kept generators are borrowed from the parent; only the identity is owned.
type Basic struct {
	fixed int
	prov  provider.Provider
	dup   DupCheck
	gens  []*perm.Perm
}

// NewBasic returns the basic stabilizer of fixed. nil dup means
// NeverDuplicate.
func NewBasic(fixed int, prov provider.Provider, dup DupCheck) *Basic {
	return &Basic{
		fixed: fixed,
		prov:  prov,
		dup:   orNever(dup),
		gens:  []*perm.Perm{prov.MakeIdentity()},
	}
}

func (b *Basic) Degree() int                 { return b.prov.Degree() }
func (b *Basic) Generators() []*perm.Perm    { return b.gens }
func (b *Basic) Provider() provider.Provider { return b.prov }
func (b *Basic) Fixed() int                  { return b.fixed }
func (b *Basic) Accurate() bool              { return false }

func (b *Basic) AddGenerators(gens []*perm.Perm, oldEnd int, next Next) {
	old := len(b.gens)
	for _, g := range gens[oldEnd:] {
		if perm.Fixes(g, b.fixed) && !b.dup(b.gens, g) {
			b.gens = append(b.gens, g)
		}
	}
	if len(b.gens) != old && next != nil {
		next(b.gens, old)
	}
}

// Release returns the identity. Borrowed generators stay with the parent.
func (b *Basic) Release() {
	if len(b.gens) > 0 {
		b.prov.Release(b.gens[0])
	}
	b.gens = nil
}
