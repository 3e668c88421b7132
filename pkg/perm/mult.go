package perm

// Product is the lazy composition of two permutations. Points are mapped
// through Left first and then through Right, so Get(i) == Right(Left(i)).
// Nothing is materialized until the product is copied.
type Product struct {
	Left, Right Source
}

// Mult returns the lazy product left·right.
func Mult(left, right Source) Product {
	return Product{Left: left, Right: right}
}

// Get returns right(left(i)).
func (m Product) Get(i int) int { return m.Right.Get(m.Left.Get(i)) }

// Degree returns the degree of the left factor.
func (m Product) Degree() int { return m.Left.Degree() }

// Word is a lazily evaluated product of factors applied left to right. The
// word holds non-owning references; the factors must outlive it.
type Word struct {
	factors []Source
}

// NewWord returns a word over the given factors.
func NewWord(factors ...Source) *Word {
	w := &Word{factors: make([]Source, 0, len(factors))}
	w.factors = append(w.factors, factors...)
	return w
}

// Push appends a factor; it is applied after all current factors.
func (w *Word) Push(p Source) {
	w.factors = append(w.factors, p)
}

// Reset drops all factors but keeps the backing storage.
func (w *Word) Reset() {
	w.factors = w.factors[:0]
}

// Len returns the number of factors.
func (w *Word) Len() int { return len(w.factors) }

// Empty reports whether the word has no factors.
func (w *Word) Empty() bool { return len(w.factors) == 0 }

// At returns the i-th factor.
func (w *Word) At(i int) Source { return w.factors[i] }

// Get maps i through every factor in order.
func (w *Word) Get(i int) int {
	for _, f := range w.factors {
		i = f.Get(i)
	}
	return i
}

// Degree returns the degree of the first factor, or 0 for an empty word.
func (w *Word) Degree() int {
	if len(w.factors) == 0 {
		return 0
	}
	return w.factors[0].Degree()
}
