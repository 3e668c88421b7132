// Package provider hands out and recycles permutation handles.
//
// Every component of the group machinery obtains the permutations it keeps
// from a [Provider] and gives each one back exactly once through Release.
// Three implementations are available:
//
//   - [Heap]: a fresh allocation per handle; tracks live handles so leaks and
//     double releases are detected.
//   - [Pooled]: retains released handles, up to a capacity, for reuse.
//   - [Shared]: leaves reclamation to the garbage collector; Release is a
//     no-op.
//
// Releasing a handle twice, or releasing a handle the provider never issued,
// is a programming error and panics for Heap and Pooled.
package provider

import (
	"github.com/matzehuels/permgroup/pkg/perm"
)

// Provider allocates permutations of a fixed degree.
type Provider interface {
	// Degree returns the degree of every permutation the provider makes.
	Degree() int

	// Make returns a permutation with unspecified images.
	Make() *perm.Perm

	// MakeIdentity returns the identity permutation.
	MakeIdentity() *perm.Perm

	// Copy materializes src into a new, independent handle.
	Copy(src perm.Source) *perm.Perm

	// Release returns p to the provider. It must be called exactly once per
	// handle obtained from Make, MakeIdentity or Copy. A nil p is ignored.
	Release(p *perm.Perm)
}

// Kind names a provider implementation in configuration files and flags.
type Kind string

// Provider kinds accepted by [New].
const (
	KindHeap   Kind = "heap"
	KindPooled Kind = "pooled"
	KindShared Kind = "shared"
)

// DefaultPoolCapacity is the pool size used when none is configured.
const DefaultPoolCapacity = 64

// New constructs a provider of the given kind and degree. An empty kind
// selects Heap. For KindPooled, capacity bounds the pool; a non-positive
// capacity selects DefaultPoolCapacity. Unknown kinds return false.
func New(kind Kind, degree, capacity int) (Provider, bool) {
	switch kind {
	case "", KindHeap:
		return NewHeap(degree), true
	case KindPooled:
		if capacity <= 0 {
			capacity = DefaultPoolCapacity
		}
		return NewPooled(capacity, NewHeap(degree)), true
	case KindShared:
		return NewShared(degree), true
	default:
		return nil, false
	}
}

// Kinds lists the accepted provider kinds, for help text and completion.
func Kinds() []string {
	return []string{string(KindHeap), string(KindPooled), string(KindShared)}
}
