package group

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/permgroup/internal/grouptest"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

func buildSystem(prov provider.Provider, gens []*perm.Perm, opts ...Option) *System {
	s := NewSystem(prov, opts...)
	for _, p := range gens {
		s.AddGenerator(p)
	}
	return s
}

func TestSystemMembership(t *testing.T) {
	for _, f := range grouptest.Fixtures {
		t.Run(f.Name, func(t *testing.T) {
			h := provider.NewHeap(f.Degree)
			s := buildSystem(h, f.Perms())

			elems := grouptest.Set(grouptest.Closure(f.Degree, f.Perms()))
			for _, p := range perm.All(f.Degree) {
				want := elems[grouptest.Key(p)]
				if got := s.IsMember(p); got != want {
					t.Errorf("IsMember(%v) = %v, want %v", p, got, want)
				}
			}

			if got := s.Order().Int64(); got != int64(f.Order) {
				t.Errorf("Order() = %d, want %d", got, f.Order)
			}

			s.Release()
			if h.Live() != 0 {
				t.Errorf("Live() = %d after Release", h.Live())
			}
		})
	}
}

func TestSystemRandom(t *testing.T) {
	for seed := range uint64(24) {
		n := 3 + int(seed%4)
		gens := grouptest.Random(seed, n, 1+int(seed%3))
		h := provider.NewHeap(n)
		s := buildSystem(h, gens)

		elems := grouptest.Closure(n, gens)
		if got := s.Order().Int64(); got != int64(len(elems)) {
			t.Errorf("seed %d: Order() = %d, want %d", seed, got, len(elems))
		}
		set := grouptest.Set(elems)
		for _, p := range perm.All(n) {
			if s.IsMember(p) != set[grouptest.Key(p)] {
				t.Errorf("seed %d: IsMember(%v) = %v", seed, p, !set[grouptest.Key(p)])
			}
		}

		s.Release()
		if h.Live() != 0 {
			t.Errorf("seed %d: Live() = %d after Release", seed, h.Live())
		}
	}
}

func TestSystemRejectsMembers(t *testing.T) {
	s := NewSystem(provider.NewShared(5))
	gens := grouptest.Parse(5, "(0 1)", "(0 1 2 3 4)", "(1 2)")

	if s.AddGenerator(perm.Identity(5)) {
		t.Error("identity was added to the trivial group")
	}
	if !s.AddGenerator(gens[0]) || !s.AddGenerator(gens[1]) {
		t.Fatal("generators of S5 were rejected")
	}
	if s.AddGenerator(gens[2]) {
		t.Error("(1 2) was added although S5 is already generated")
	}
	if len(s.Generators()) != 3 {
		t.Errorf("len(Generators()) = %d, want 3", len(s.Generators()))
	}
}

func TestSystemChainShape(t *testing.T) {
	s := buildSystem(provider.NewShared(5), grouptest.Parse(5, "(0 1)", "(0 1 2 3 4)", "(1 2)"))

	if diff := cmp.Diff([]int{0, 1, 2, 3}, s.Base()); diff != "" {
		t.Errorf("Base() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 4, 3, 2}, s.OrbitLengths()); diff != "" {
		t.Errorf("OrbitLengths() mismatch (-want +got):\n%s", diff)
	}

	levels := s.Levels()
	for i, l := range levels {
		gens := l.Generators()
		if len(gens) == 0 || !perm.IsIdentity(gens[0]) {
			t.Errorf("level %d generators do not start with the identity", i)
		}
		// Each level fixes its own base point and every base point above.
		for _, p := range gens {
			for _, b := range s.Base()[:i+1] {
				if !perm.Fixes(p, b) {
					t.Errorf("level %d generator %v moves base point %d", i, p, b)
				}
			}
		}
		if (l.Next() == nil) != (i == len(levels)-1) {
			t.Errorf("level %d Next() = %v", i, l.Next())
		}
	}
	if !IsTrivial(levels[len(levels)-1]) {
		t.Error("deepest level is not trivial")
	}
}

func TestSystemBasePolicy(t *testing.T) {
	gens := grouptest.Parse(5, "(0 1 2 3 4)", "(0 1)")
	s := buildSystem(provider.NewShared(5), gens, WithBase([]int{4, 3, 2, 1, 0}))
	base := s.Base()
	if len(base) == 0 || base[0] != 4 {
		t.Fatalf("Base() = %v, want 4 first", base)
	}
	seen := make(map[int]bool)
	for _, b := range base {
		if seen[b] {
			t.Errorf("base point %d repeated in %v", b, base)
		}
		seen[b] = true
	}
	if s.Order().Int64() != 120 {
		t.Errorf("Order() = %v, want 120", s.Order())
	}
}

func TestSystemTrivial(t *testing.T) {
	h := provider.NewHeap(3)
	s := NewSystem(h)
	if s.Chain() != nil || len(s.Base()) != 0 {
		t.Errorf("trivial system has chain %v", s.Base())
	}
	if !s.IsMember(perm.Identity(3)) || s.IsMember(perm.MustParseCycles("(0 1)", 3)) {
		t.Error("trivial membership is wrong")
	}
	if s.Order().Int64() != 1 {
		t.Errorf("Order() = %v, want 1", s.Order())
	}
	if len(s.Elements(0)) != 1 {
		t.Errorf("len(Elements()) = %d, want 1", len(s.Elements(0)))
	}
	s.Release()
	if h.Live() != 0 {
		t.Errorf("Live() = %d after Release", h.Live())
	}
}

func TestSystemElements(t *testing.T) {
	for _, f := range grouptest.Fixtures {
		t.Run(f.Name, func(t *testing.T) {
			s := buildSystem(provider.NewShared(f.Degree), f.Perms())
			elems := s.Elements(0)
			if len(elems) != f.Order {
				t.Fatalf("len(Elements()) = %d, want %d", len(elems), f.Order)
			}
			want := grouptest.Set(grouptest.Closure(f.Degree, f.Perms()))
			if diff := cmp.Diff(want, grouptest.Set(elems)); diff != "" {
				t.Errorf("Elements() mismatch (-want +got):\n%s", diff)
			}
			if !perm.IsIdentity(elems[0]) {
				t.Errorf("first element %v is not the identity", elems[0])
			}
			if f.Order > 3 && len(s.Elements(3)) != 3 {
				t.Errorf("len(Elements(3)) = %d", len(s.Elements(3)))
			}
		})
	}
}

func TestStrongGenerators(t *testing.T) {
	s := buildSystem(provider.NewShared(4), grouptest.Parse(4, "(0 1)", "(0 1 2 3)"))
	strong := s.StrongGenerators()
	for i, p := range strong {
		if perm.IsIdentity(p) {
			t.Errorf("strong generator %d is the identity", i)
		}
		for _, q := range strong[:i] {
			if perm.Equal(p, q) {
				t.Errorf("strong generator %v repeated", p)
			}
		}
	}
	// Together they generate the whole group.
	if got := len(grouptest.Closure(4, strong)); got != 24 {
		t.Errorf("strong generators generate %d elements, want 24", got)
	}
}

func TestSiftAbsenceAtTopLevel(t *testing.T) {
	s := buildSystem(provider.NewShared(6), grouptest.Parse(6, "(0 1 2)", "(3 4)"))
	top := s.Chain().Stabilizer()
	for _, p := range perm.All(6) {
		_, ok := top.SiftFactor(p)
		if ok != top.Transversal().Contains(p.Get(top.Fixed())) {
			t.Fatalf("SiftFactor(%v) ok = %v", p, ok)
		}
	}
}

func TestSystemPooled(t *testing.T) {
	inner := provider.NewHeap(5)
	pool := provider.NewPooled(16, inner)
	s := buildSystem(pool, grouptest.Parse(5, "(0 1 2)", "(0 1 2 3 4)"))
	if s.Order().Int64() != 60 {
		t.Errorf("Order() = %v, want 60", s.Order())
	}
	s.Release()
	pool.Drain()
	if inner.Live() != 0 {
		t.Errorf("inner.Live() = %d after Release and Drain", inner.Live())
	}
}

func TestDegreeMismatchPanics(t *testing.T) {
	s := NewSystem(provider.NewShared(3))
	defer func() {
		if recover() == nil {
			t.Error("AddGenerator with the wrong degree did not panic")
		}
	}()
	s.AddGenerator(perm.Identity(4))
}
