package provider

import (
	"fmt"

	"github.com/matzehuels/permgroup/pkg/perm"
)

// Pooled wraps another provider and keeps released handles for reuse. At
// most capacity handles are retained; excess releases go to the inner
// provider.
type Pooled struct {
	inner    Provider
	capacity int
	pool     []*perm.Perm
	inPool   map[*perm.Perm]struct{}
}

// NewPooled returns a pooling provider over inner.
func NewPooled(capacity int, inner Provider) *Pooled {
	return &Pooled{
		inner:    inner,
		capacity: capacity,
		pool:     make([]*perm.Perm, 0, capacity),
		inPool:   make(map[*perm.Perm]struct{}, capacity),
	}
}

func (p *Pooled) Degree() int { return p.inner.Degree() }

func (p *Pooled) Make() *perm.Perm {
	if q, ok := p.take(); ok {
		return q
	}
	return p.inner.Make()
}

func (p *Pooled) MakeIdentity() *perm.Perm {
	if q, ok := p.take(); ok {
		perm.SetIdentity(q)
		return q
	}
	return p.inner.MakeIdentity()
}

func (p *Pooled) Copy(src perm.Source) *perm.Perm {
	if q, ok := p.take(); ok {
		perm.CopyInto(q, src)
		return q
	}
	return p.inner.Copy(src)
}

// Release pools q, or hands it to the inner provider when the pool is full.
// Releasing a handle that is already pooled panics.
func (p *Pooled) Release(q *perm.Perm) {
	if q == nil {
		return
	}
	if _, ok := p.inPool[q]; ok {
		panic(fmt.Sprintf("provider: permutation %v released twice", q))
	}
	if len(p.pool) >= p.capacity {
		p.inner.Release(q)
		return
	}
	p.pool = append(p.pool, q)
	p.inPool[q] = struct{}{}
}

// Pooled returns the number of handles waiting in the pool.
func (p *Pooled) Pooled() int { return len(p.pool) }

// Drain releases every pooled handle to the inner provider.
func (p *Pooled) Drain() {
	for _, q := range p.pool {
		delete(p.inPool, q)
		p.inner.Release(q)
	}
	p.pool = p.pool[:0]
}

func (p *Pooled) take() (*perm.Perm, bool) {
	if len(p.pool) == 0 {
		return nil, false
	}
	q := p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]
	delete(p.inPool, q)
	return q, true
}
