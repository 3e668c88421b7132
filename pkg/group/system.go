package group

import (
	"fmt"
	"math/big"

	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// System is a generating system: a generated group together with its
// stabilizer chain. A generator is only added when it is not already a
// member of the group, so the generating set stays free of redundancy with
// respect to insertion order.
//
// A System is not safe for concurrent use.
type System struct {
	prov   provider.Provider
	policy BasePointPolicy
	gen    *Generated
	chain  *Chain
}

// Option configures a System.
type Option func(*System)

// WithBasePolicy sets the policy choosing base points for new chain levels.
func WithBasePolicy(policy BasePointPolicy) Option {
	return func(s *System) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithBase prefers the given base points, in order. See Preferred.
func WithBase(base []int) Option {
	return WithBasePolicy(Preferred(base))
}

// NewSystem returns the trivial group over prov's degree.
func NewSystem(prov provider.Provider, opts ...Option) *System {
	s := &System{prov: prov, policy: FirstMoved}
	for _, opt := range opts {
		opt(s)
	}
	s.gen = NewGenerated(prov, func(_ []*perm.Perm, cand perm.Source) bool {
		return s.IsMember(cand)
	})
	return s
}

func (s *System) Degree() int                 { return s.prov.Degree() }
func (s *System) Generators() []*perm.Perm    { return s.gen.Generators() }
func (s *System) Provider() provider.Provider { return s.prov }

// AddGenerator adds a copy of p unless p is already a member of the group.
// It reports whether the group grew. p must have the system's degree.
func (s *System) AddGenerator(p perm.Source) bool {
	s.checkDegree(p)
	return s.gen.AddGenerator(p, func(gens []*perm.Perm, oldEnd int) {
		if s.chain == nil {
			s.chain = NewChain(s.policy(gens[oldEnd]), s.prov, s.policy)
		}
		s.chain.AddGenerators(gens, oldEnd)
	})
}

// IsMember reports whether p is an element of the group. p must have the
// system's degree.
func (s *System) IsMember(p perm.Source) bool {
	s.checkDegree(p)
	if s.chain == nil {
		return perm.Equal(p, s.gen.Generators()[0])
	}
	return s.chain.IsMemberOfParent(p)
}

func (s *System) checkDegree(p perm.Source) {
	if p.Degree() != s.Degree() {
		panic(fmt.Sprintf("group: permutation of degree %d given to a group of degree %d", p.Degree(), s.Degree()))
	}
}

// Chain returns the first level of the stabilizer chain, or nil while the
// group is trivial.
func (s *System) Chain() *Chain { return s.chain }

// Levels returns every chain level from the top.
func (s *System) Levels() []*Chain {
	if s.chain == nil {
		return nil
	}
	return s.chain.Levels()
}

// Base returns the base points of the chain, top first.
func (s *System) Base() []int {
	levels := s.Levels()
	base := make([]int, len(levels))
	for i, l := range levels {
		base[i] = l.Fixed()
	}
	return base
}

// OrbitLengths returns the length of the base point orbit at every level.
func (s *System) OrbitLengths() []int {
	levels := s.Levels()
	out := make([]int, len(levels))
	for i, l := range levels {
		out[i] = l.Stabilizer().Transversal().Len()
	}
	return out
}

// Order returns the number of elements of the group: the product of the
// orbit lengths along the chain.
func (s *System) Order() *big.Int {
	order := big.NewInt(1)
	for _, n := range s.OrbitLengths() {
		order.Mul(order, big.NewInt(int64(n)))
	}
	return order
}

// StrongGenerators returns the non-identity generators of the group and of
// every chain level, without repeats. The result is borrowed from the
// system.
func (s *System) StrongGenerators() []*perm.Perm {
	var out []*perm.Perm
	add := func(gens []*perm.Perm) {
		for _, g := range gens {
			if !perm.IsIdentity(g) && !LinearScan(out, g) {
				out = append(out, g)
			}
		}
	}
	add(s.Generators())
	for _, l := range s.Levels() {
		add(l.Generators())
	}
	return out
}

// Elements returns group elements as products of transversal elements,
// deepest level first. If limit > 0 at most limit elements are returned.
// The result is freshly allocated and owned by the caller.
func (s *System) Elements(limit int) []*perm.Perm {
	levels := s.Levels()
	n := s.Degree()
	if len(levels) == 0 {
		return []*perm.Perm{perm.Identity(n)}
	}
	orbits := make([][]int, len(levels))
	for i, l := range levels {
		orbits[i] = l.Stabilizer().Transversal().Orbit().Points()
	}
	idx := make([]int, len(levels))
	var out []*perm.Perm
	w := perm.NewWord()
	for limit <= 0 || len(out) < limit {
		w.Reset()
		for i := len(levels) - 1; i >= 0; i-- {
			w.Push(levels[i].Stabilizer().Transversal().Element(orbits[i][idx[i]]))
		}
		out = append(out, perm.Copy(w))

		// mixed-radix increment, top level fastest
		i := 0
		for ; i < len(idx); i++ {
			idx[i]++
			if idx[i] < len(orbits[i]) {
				break
			}
			idx[i] = 0
		}
		if i == len(idx) {
			break
		}
	}
	return out
}

// Release releases the chain and the generating set.
func (s *System) Release() {
	if s.chain != nil {
		s.chain.Release()
		s.chain = nil
	}
	s.gen.Release()
}
