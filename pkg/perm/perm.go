package perm

import (
	"fmt"

	"github.com/matzehuels/permgroup/pkg/errors"
)

// Source is the read capability of a permutation of degree n: the image of
// every point in [0, n). Any representation satisfying Source can be fed to
// the orbit engine, the stabilizers and the chain.
type Source interface {
	Get(i int) int
	Degree() int
}

// Mutable is a Source whose images can be overwritten.
type Mutable interface {
	Source
	Put(i, image int)
}

// Perm is the concrete array-backed permutation. Providers hand out *Perm
// handles; the pointer identity is what a provider tracks.
type Perm struct {
	images []int
}

// New returns a permutation of degree n with unspecified images. Callers
// must Put every point before reading it.
func New(n int) *Perm {
	return &Perm{images: make([]int, n)}
}

// Identity returns the identity permutation of degree n.
func Identity(n int) *Perm {
	return &Perm{images: Seq(n)}
}

// FromImages builds a permutation from its image list, where images[i] is
// the image of point i. The slice is copied. An error is returned if the
// list is not a bijection on [0, len(images)).
func FromImages(images []int) (*Perm, error) {
	n := len(images)
	seen := make([]bool, n)
	for i, img := range images {
		if img < 0 || img >= n {
			return nil, errors.New(errors.ErrCodePointOutOfRange, "image %d of point %d out of range [0;%d[", img, i, n)
		}
		if seen[img] {
			return nil, errors.New(errors.ErrCodePointReused, "image %d used more than once", img)
		}
		seen[img] = true
	}
	p := New(n)
	copy(p.images, images)
	return p, nil
}

// MustFromImages is like FromImages but panics on invalid input.
// It is intended for tests and package-level fixtures.
func MustFromImages(images ...int) *Perm {
	p, err := FromImages(images)
	if err != nil {
		panic(fmt.Sprintf("perm: %v", err))
	}
	return p
}

// Get returns the image of i.
func (p *Perm) Get(i int) int { return p.images[i] }

// Put sets the image of i.
func (p *Perm) Put(i, image int) { p.images[i] = image }

// Degree returns the number of points p acts on.
func (p *Perm) Degree() int { return len(p.images) }

// Images returns a copy of the image list.
func (p *Perm) Images() []int {
	out := make([]int, len(p.images))
	copy(out, p.images)
	return out
}

// String renders p in cycle notation.
func (p *Perm) String() string {
	return FormatCycles(p)
}

// Copy materializes src into a fresh permutation.
func Copy(src Source) *Perm {
	p := New(src.Degree())
	CopyInto(p, src)
	return p
}

// CopyInto overwrites dst with the images of src. Both must have the same
// degree.
func CopyInto(dst Mutable, src Source) {
	n := dst.Degree()
	if src.Degree() != n {
		panic(fmt.Sprintf("perm: degree mismatch %d != %d", src.Degree(), n))
	}
	// Evaluate first: src may be a lazy view over dst.
	tmp := make([]int, n)
	for i := range n {
		tmp[i] = src.Get(i)
	}
	for i, img := range tmp {
		dst.Put(i, img)
	}
}

// SetIdentity overwrites p with the identity.
func SetIdentity(p Mutable) {
	for i := range p.Degree() {
		p.Put(i, i)
	}
}

// Inverse returns the inverse of src as a new permutation.
func Inverse(src Source) *Perm {
	p := New(src.Degree())
	InverseInto(p, src)
	return p
}

// InverseInto overwrites dst with the inverse of src.
func InverseInto(dst Mutable, src Source) {
	for i := range src.Degree() {
		dst.Put(src.Get(i), i)
	}
}

// Equal reports whether a and b agree at every point of their shared degree.
func Equal(a, b Source) bool {
	n := min(a.Degree(), b.Degree())
	for i := range n {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}

// IsIdentity reports whether p fixes every point.
func IsIdentity(p Source) bool {
	_, moved := Moved(p)
	return !moved
}

// Moved returns the smallest point not fixed by p.
func Moved(p Source) (int, bool) {
	for i := range p.Degree() {
		if p.Get(i) != i {
			return i, true
		}
	}
	return 0, false
}

// Fixes reports whether p fixes point i.
func Fixes(p Source, i int) bool {
	return p.Get(i) == i
}
