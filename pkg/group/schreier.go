package group

import (
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
	"github.com/matzehuels/permgroup/pkg/transversal"
)

// Schreier is the exact stabilizer of a point. It keeps a transversal of
// the point's orbit under the parent generators and turns every redundant
// edge u -g-> g(u) of the Schreier graph into the generator
// t_u·g·t_{g(u)}^-1.
type Schreier struct {
	prov  provider.Provider
	dup   DupCheck
	trans *transversal.Explicit
	// inv[i] is the inverse of the transversal element at orbit position i.
	// inv[0] is the identity shared with gens[0].
	inv  []*perm.Perm
	gens []*perm.Perm
}

// NewSchreier returns the Schreier stabilizer of fixed. nil dup means
// NeverDuplicate.
func NewSchreier(fixed int, prov provider.Provider, dup DupCheck) *Schreier {
	id := prov.MakeIdentity()
	return &Schreier{
		prov:  prov,
		dup:   orNever(dup),
		trans: transversal.New(fixed, prov),
		inv:   []*perm.Perm{id},
		gens:  []*perm.Perm{id},
	}
}

func (s *Schreier) Degree() int                 { return s.prov.Degree() }
func (s *Schreier) Generators() []*perm.Perm    { return s.gens }
func (s *Schreier) Provider() provider.Provider { return s.prov }
func (s *Schreier) Fixed() int                  { return s.trans.Root() }
func (s *Schreier) Accurate() bool              { return true }

// Transversal returns the transversal of the fixed point's orbit.
func (s *Schreier) Transversal() *transversal.Explicit { return s.trans }

// InverseElement returns t_u^-1. It panics if u is not in the orbit.
func (s *Schreier) InverseElement(u int) *perm.Perm {
	return s.inv[s.trans.Orbit().Position(u)]
}

func (s *Schreier) AddGenerators(gens []*perm.Perm, oldEnd int, next Next) {
	root := s.Fixed()
	onNew := func(_, img, _ int, tImg *perm.Perm) {
		inv := s.prov.Make()
		perm.InverseInto(inv, tImg)
		s.inv = append(s.inv, inv)
	}
	onDup := func(u, img, gen int, tU *perm.Perm) {
		g := gens[gen]
		// root ~~t_u~~> u --g--> img ~~t_img^-1~~> root
		borrowed := u == root && img == root
		var cand *perm.Perm
		switch {
		case borrowed:
			cand = g
		case u == root:
			cand = s.prov.Copy(perm.Mult(g, s.InverseElement(img)))
		case img == root:
			cand = s.prov.Copy(perm.Mult(tU, g))
		default:
			cand = s.prov.Copy(perm.Mult(perm.Mult(tU, g), s.InverseElement(img)))
		}
		if s.dup(s.gens, cand) {
			if !borrowed {
				s.prov.Release(cand)
			}
			return
		}
		if borrowed {
			cand = s.prov.Copy(g)
		}
		s.gens = append(s.gens, cand)
		if next != nil {
			next(s.gens, len(s.gens)-1)
		}
	}
	s.trans.Update(gens, oldEnd, onNew, onDup)
}

// SiftFactor returns t_img^-1 where img = p(Fixed()), so that p·t_img^-1
// fixes the point. It returns false if img is not in the orbit. The factor
// is owned by the stabilizer.
func (s *Schreier) SiftFactor(p perm.Source) (*perm.Perm, bool) {
	img := p.Get(s.Fixed())
	if !s.trans.Contains(img) {
		return nil, false
	}
	return s.InverseElement(img), true
}

// Sift returns a new permutation p·t_img^-1 fixing the point, or false if
// p(Fixed()) is not in the orbit. The caller releases the result.
func (s *Schreier) Sift(p perm.Source) (*perm.Perm, bool) {
	f, ok := s.SiftFactor(p)
	if !ok {
		return nil, false
	}
	return s.prov.Copy(perm.Mult(p, f)), true
}

// Release returns the generators, the inverse transversal and the
// transversal. The shared identity is released once.
func (s *Schreier) Release() {
	if s.gens == nil {
		return
	}
	for _, g := range s.gens {
		s.prov.Release(g)
	}
	for _, p := range s.inv[1:] {
		s.prov.Release(p)
	}
	s.trans.Release()
	s.gens, s.inv = nil, nil
}
