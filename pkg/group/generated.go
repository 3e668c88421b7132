package group

import (
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Generated is a group represented by its generating set alone.
type Generated struct {
	prov provider.Provider
	dup  DupCheck
	gens []*perm.Perm
}

// NewGenerated returns the trivial group over prov's degree. dup decides
// which added generators are kept; nil means NeverDuplicate.
func NewGenerated(prov provider.Provider, dup DupCheck) *Generated {
	return &Generated{
		prov: prov,
		dup:  orNever(dup),
		gens: []*perm.Perm{prov.MakeIdentity()},
	}
}

func (g *Generated) Degree() int                 { return g.prov.Degree() }
func (g *Generated) Generators() []*perm.Perm    { return g.gens }
func (g *Generated) Provider() provider.Provider { return g.prov }

// AddGenerator adds a copy of p unless the duplicate check rejects it. When
// p is added, next (if non-nil) is called with the new generator as the
// only new entry. AddGenerator reports whether p was added.
func (g *Generated) AddGenerator(p perm.Source, next Next) bool {
	c := g.prov.Copy(p)
	if g.dup(g.gens, c) {
		g.prov.Release(c)
		return false
	}
	g.gens = append(g.gens, c)
	if next != nil {
		next(g.gens, len(g.gens)-1)
	}
	return true
}

// Release returns every generator, the identity included.
func (g *Generated) Release() {
	for _, p := range g.gens {
		g.prov.Release(p)
	}
	g.gens = nil
}
