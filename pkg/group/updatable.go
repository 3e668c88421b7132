package group

import (
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// Updatable binds a stabilizer to a parent group that may keep growing.
// It remembers how many parent generators were incorporated and pulls only
// the rest on Update.
type Updatable struct {
	parent Group
	stab   Stabilizer
	dirty  int
}

// NewUpdatable attaches stab to parent and incorporates the parent's
// current generators. The parent identity at index 0 is never passed on.
func NewUpdatable(parent Group, stab Stabilizer) *Updatable {
	u := &Updatable{parent: parent, stab: stab, dirty: 1}
	u.Update()
	return u
}

// NewBasicUpdatable returns an Updatable basic stabilizer of fixed within
// parent, using LinearScan for duplicates.
func NewBasicUpdatable(fixed int, parent Group) *Updatable {
	return NewUpdatable(parent, NewBasic(fixed, parent.Provider(), LinearScan))
}

// NewSchreierUpdatable returns an Updatable Schreier stabilizer of fixed
// within parent, using LinearScan for duplicates.
func NewSchreierUpdatable(fixed int, parent Group) *Updatable {
	return NewUpdatable(parent, NewSchreier(fixed, parent.Provider(), LinearScan))
}

// Update incorporates the parent generators added since the last call. A
// parent that is itself Updatable is brought up to date first. Update
// reports whether the stabilizer gained generators.
func (u *Updatable) Update() bool {
	if p, ok := u.parent.(*Updatable); ok {
		p.Update()
	}
	gens := u.parent.Generators()
	if u.dirty >= len(gens) {
		return false
	}
	before := len(u.stab.Generators())
	u.stab.AddGenerators(gens, u.dirty, nil)
	u.dirty = len(gens)
	return len(u.stab.Generators()) != before
}

// Pending returns the number of parent generators not yet incorporated.
func (u *Updatable) Pending() int {
	return max(len(u.parent.Generators())-u.dirty, 0)
}

func (u *Updatable) Degree() int                 { return u.stab.Degree() }
func (u *Updatable) Generators() []*perm.Perm    { return u.stab.Generators() }
func (u *Updatable) Provider() provider.Provider { return u.stab.Provider() }
func (u *Updatable) Fixed() int                  { return u.stab.Fixed() }
func (u *Updatable) Accurate() bool              { return u.stab.Accurate() }

// Stabilizer returns the wrapped stabilizer.
func (u *Updatable) Stabilizer() Stabilizer { return u.stab }

// Release releases the wrapped stabilizer.
func (u *Updatable) Release() { u.stab.Release() }
