package orbit

// index tracks orbit membership. clear receives the previous orbit so that
// only touched entries are reset; orbits are assumed sparse.
type index interface {
	size() int
	clear(w int, prev []int)
	contains(u int) bool
	add(img, position int)
	position(u int) (int, bool)
}

// positionIndex maps a point to its 1-based rank in the orbit, 0 meaning
// absent.
type positionIndex struct {
	rank []int
}

func newPositionIndex(n int) *positionIndex {
	return &positionIndex{rank: make([]int, n)}
}

func (x *positionIndex) size() int { return len(x.rank) }

func (x *positionIndex) clear(w int, prev []int) {
	for _, u := range prev {
		x.rank[u] = 0
	}
	x.rank[w] = 1
}

func (x *positionIndex) contains(u int) bool { return x.rank[u] != 0 }

func (x *positionIndex) add(img, position int) { x.rank[img] = position }

func (x *positionIndex) position(u int) (int, bool) { return x.rank[u] - 1, true }

type bitsetIndex struct {
	n    int
	bits []uint64
}

func newBitsetIndex(n int) *bitsetIndex {
	return &bitsetIndex{n: n, bits: make([]uint64, (n+63)/64)}
}

func (x *bitsetIndex) size() int { return x.n }

func (x *bitsetIndex) clear(w int, prev []int) {
	for _, u := range prev {
		x.bits[u/64] &^= 1 << (u % 64)
	}
	x.bits[w/64] |= 1 << (w % 64)
}

func (x *bitsetIndex) contains(u int) bool { return x.bits[u/64]&(1<<(u%64)) != 0 }

func (x *bitsetIndex) add(img, _ int) { x.bits[img/64] |= 1 << (img % 64) }

func (x *bitsetIndex) position(int) (int, bool) { return 0, false }
