package provider

import (
	"fmt"

	"github.com/matzehuels/permgroup/pkg/perm"
)

// Heap allocates a new permutation for every request and records which
// handles are outstanding.
type Heap struct {
	degree int
	live   map[*perm.Perm]struct{}
}

// NewHeap returns a Heap provider for permutations of degree n.
func NewHeap(n int) *Heap {
	return &Heap{degree: n, live: make(map[*perm.Perm]struct{})}
}

func (h *Heap) Degree() int { return h.degree }

func (h *Heap) Make() *perm.Perm {
	return h.track(perm.New(h.degree))
}

func (h *Heap) MakeIdentity() *perm.Perm {
	return h.track(perm.Identity(h.degree))
}

func (h *Heap) Copy(src perm.Source) *perm.Perm {
	return h.track(copyOf(h.degree, src))
}

// Release forgets p. It panics if p is not outstanding.
func (h *Heap) Release(p *perm.Perm) {
	if p == nil {
		return
	}
	if _, ok := h.live[p]; !ok {
		panic(fmt.Sprintf("provider: release of unknown or already released permutation %v", p))
	}
	delete(h.live, p)
}

// Live returns the number of handles made but not yet released.
func (h *Heap) Live() int { return len(h.live) }

func (h *Heap) track(p *perm.Perm) *perm.Perm {
	h.live[p] = struct{}{}
	return p
}
