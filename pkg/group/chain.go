package group

import (
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Chain is one level of a stabilizer chain: the Schreier stabilizer of a
// base point within the group of the level above, and the next level, which
// is created when this level receives its first non-identity generator.
//
// A candidate Schreier generator is dropped when it is already a member of
// the group represented by the levels below, so each level's generating set
// holds no element the deeper levels can already produce.
type Chain struct {
	prov   provider.Provider
	policy BasePointPolicy
	stab   *Schreier
	next   *Chain
}

// NewChain returns a chain level fixing fixed. A nil policy selects
// FirstMoved for the levels created below it.
func NewChain(fixed int, prov provider.Provider, policy BasePointPolicy) *Chain {
	if policy == nil {
		policy = FirstMoved
	}
	c := &Chain{prov: prov, policy: policy}
	c.stab = NewSchreier(fixed, prov, c.isDuplicate)
	return c
}

func (c *Chain) isDuplicate(_ []*perm.Perm, cand perm.Source) bool {
	if c.next == nil {
		return perm.IsIdentity(cand)
	}
	return c.next.IsMemberOfParent(cand)
}

// AddGenerators incorporates generators gens[oldEnd:] of the group above
// this level and pushes every resulting stabilizer generator down the
// chain.
func (c *Chain) AddGenerators(gens []*perm.Perm, oldEnd int) {
	c.stab.AddGenerators(gens, oldEnd, func(sgens []*perm.Perm, sOld int) {
		if c.next == nil {
			c.next = NewChain(c.policy(sgens[sOld]), c.prov, c.policy)
		}
		c.next.AddGenerators(sgens, sOld)
	})
}

// IsMemberOfParent reports whether p belongs to the group whose generators
// were fed to this level. p is sifted through every level: where the
// running product moves the level's base point, the inverse transversal
// element is appended; if the image lies outside the level's orbit, p is
// not a member. p is a member iff the final product is the identity.
func (c *Chain) IsMemberOfParent(p perm.Source) bool {
	w := perm.NewWord(p)
	for l := c; l != nil; l = l.next {
		// With no factor appended yet the word is p itself.
		var cur perm.Source = w
		if w.Len() == 1 {
			cur = p
		}
		f := l.Fixed()
		if cur.Get(f) == f {
			continue
		}
		factor, ok := l.stab.SiftFactor(cur)
		if !ok {
			return false
		}
		w.Push(factor)
	}
	if w.Len() == 1 {
		return perm.IsIdentity(p)
	}
	return perm.IsIdentity(w)
}

// Fixed returns the base point of this level.
func (c *Chain) Fixed() int { return c.stab.Fixed() }

// Stabilizer returns the level's Schreier stabilizer.
func (c *Chain) Stabilizer() *Schreier { return c.stab }

// Next returns the level below, or nil.
func (c *Chain) Next() *Chain { return c.next }

// Levels returns this level followed by every level below it.
func (c *Chain) Levels() []*Chain {
	var out []*Chain
	for l := c; l != nil; l = l.next {
		out = append(out, l)
	}
	return out
}

func (c *Chain) Degree() int                 { return c.prov.Degree() }
func (c *Chain) Generators() []*perm.Perm    { return c.stab.Generators() }
func (c *Chain) Provider() provider.Provider { return c.prov }

// Release releases every level from the bottom up.
func (c *Chain) Release() {
	if c.next != nil {
		c.next.Release()
		c.next = nil
	}
	c.stab.Release()
}
