package group

import (
	"testing"

	"github.com/matzehuels/permgroup/internal/grouptest"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

func TestGeneratedIdentityFirst(t *testing.T) {
	g := NewGenerated(provider.NewShared(4), nil)
	if len(g.Generators()) != 1 || !perm.IsIdentity(g.Generators()[0]) {
		t.Fatalf("new group generators = %v", g.Generators())
	}
	if !IsTrivial(g) {
		t.Error("IsTrivial() = false for a new group")
	}
	g.AddGenerator(perm.MustParseCycles("(0 1)", 4), nil)
	if !perm.IsIdentity(g.Generators()[0]) {
		t.Error("identity is no longer first")
	}
	if IsTrivial(g) {
		t.Error("IsTrivial() = true after adding (0 1)")
	}
}

func TestDupPolicies(t *testing.T) {
	tests := []struct {
		name     string
		dup      DupCheck
		wantSize int
		wantAdd  bool
	}{
		{"linear scan", LinearScan, 2, false},
		{"never duplicate", NeverDuplicate, 3, true},
		{"nil means never", nil, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := provider.NewHeap(3)
			g := NewGenerated(h, tt.dup)
			g.AddGenerator(perm.MustParseCycles("(0 1 2)", 3), nil)

			added := g.AddGenerator(perm.Identity(3), nil)
			if added != tt.wantAdd {
				t.Errorf("AddGenerator(identity) = %v, want %v", added, tt.wantAdd)
			}
			if len(g.Generators()) != tt.wantSize {
				t.Errorf("len(Generators()) = %d, want %d", len(g.Generators()), tt.wantSize)
			}

			g.Release()
			if h.Live() != 0 {
				t.Errorf("Live() = %d after Release", h.Live())
			}
		})
	}
}

func TestGeneratedNext(t *testing.T) {
	g := NewGenerated(provider.NewShared(4), LinearScan)
	gens := grouptest.Parse(4, "(0 1)", "(1 2 3)", "(0 1)")

	var calls []int
	next := func(all []*perm.Perm, oldEnd int) {
		calls = append(calls, oldEnd)
		if len(all) != oldEnd+1 {
			t.Errorf("next got %d generators with oldEnd %d", len(all), oldEnd)
		}
	}
	for _, p := range gens {
		g.AddGenerator(p, next)
	}

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("next oldEnd values = %v, want [1 2]", calls)
	}
}

func TestGeneratedCopies(t *testing.T) {
	g := NewGenerated(provider.NewShared(3), nil)
	p := perm.MustParseCycles("(0 1)", 3)
	g.AddGenerator(p, nil)
	p.Put(0, 0)
	p.Put(1, 1)
	if perm.FormatCycles(g.Generators()[1]) != "(0 1)" {
		t.Errorf("stored generator changed with its source: %v", g.Generators()[1])
	}
}

func TestOrbitOf(t *testing.T) {
	g := NewGenerated(provider.NewShared(5), nil)
	for _, p := range grouptest.Parse(5, "(0 1)", "(0 1 2 3 4)") {
		g.AddGenerator(p, nil)
	}
	got := OrbitOf(0, g)
	want := []int{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("OrbitOf(0) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OrbitOf(0) = %v, want %v", got, want)
		}
	}
}
