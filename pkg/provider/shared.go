package provider

import "github.com/matzehuels/permgroup/pkg/perm"

// Shared allocates fresh handles and never reclaims them explicitly; the
// garbage collector frees a permutation once the last reference is dropped.
type Shared struct {
	degree int
}

// NewShared returns a Shared provider for permutations of degree n.
func NewShared(n int) *Shared { return &Shared{degree: n} }

func (s *Shared) Degree() int                     { return s.degree }
func (s *Shared) Make() *perm.Perm                { return perm.New(s.degree) }
func (s *Shared) MakeIdentity() *perm.Perm        { return perm.Identity(s.degree) }
func (s *Shared) Copy(src perm.Source) *perm.Perm { return copyOf(s.degree, src) }

// Release is a no-op.
func (s *Shared) Release(*perm.Perm) {}

func copyOf(n int, src perm.Source) *perm.Perm {
	p := perm.New(n)
	perm.CopyInto(p, src)
	return p
}
