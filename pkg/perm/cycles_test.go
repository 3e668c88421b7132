package perm

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/permgroup/pkg/errors"
)

func TestReadCycles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]int
	}{
		{"single", "(0 1 2)", [][]int{{0, 1, 2}}},
		{"two cycles", "(0 1)(2 3)", [][]int{{0, 1}, {2, 3}}},
		{"padded", "  ( 0  1 ) ( 2 )  ", [][]int{{0, 1}, {2}}},
		{"multi digit", "(10 11 12)", [][]int{{10, 11, 12}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCycles(tt.input)
			if err != nil {
				t.Fatalf("ReadCycles(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadCycles(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseCycles(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		degree   int
		want     []int
		wantCode errors.Code
	}{
		{"transposition", "(0 1)", 3, []int{1, 0, 2}, ""},
		{"three cycle", "(0 1 2)", 3, []int{1, 2, 0}, ""},
		{"disjoint", "(0 2)(1 3)", 4, []int{2, 3, 0, 1}, ""},
		{"identity", "(0)", 3, []int{0, 1, 2}, ""},
		{"fixed singleton", "(1)(0 2)", 3, []int{2, 1, 0}, ""},

		{"empty", "", 3, nil, errors.ErrCodeInvalidCycle},
		{"blank", "   ", 3, nil, errors.ErrCodeInvalidCycle},
		{"no parens", "0 1", 3, nil, errors.ErrCodeInvalidCycle},
		{"unterminated", "(0 1", 3, nil, errors.ErrCodeInvalidCycle},
		{"empty cycle", "()", 3, nil, errors.ErrCodeInvalidCycle},
		{"letter", "(0 a)", 3, nil, errors.ErrCodeInvalidCycle},
		{"negative", "(-1 0)", 3, nil, errors.ErrCodeInvalidCycle},
		{"trailing garbage", "(0 1)x", 3, nil, errors.ErrCodeInvalidCycle},
		{"out of range", "(0 5)", 3, nil, errors.ErrCodePointOutOfRange},
		{"out of range first", "(3 0)", 3, nil, errors.ErrCodePointOutOfRange},
		{"reused across cycles", "(0 1)(1 2)", 3, nil, errors.ErrCodePointReused},
		{"reused within cycle", "(0 0)", 3, nil, errors.ErrCodePointReused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseCycles(tt.input, tt.degree)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ParseCycles(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCycles(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, p.Images()); diff != "" {
				t.Errorf("ParseCycles(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestReadCyclesIntoResets(t *testing.T) {
	p := MustParseCycles("(0 1 2)", 4)
	if err := ReadCyclesInto("(2 3)", p); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{0, 1, 3, 2}, p.Images()); diff != "" {
		t.Errorf("ReadCyclesInto mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCycles(t *testing.T) {
	tests := []struct {
		images []int
		want   string
	}{
		{[]int{0, 1, 2}, "(0)"},
		{[]int{1, 0, 2}, "(0 1)"},
		{[]int{1, 2, 0, 4, 3}, "(0 1 2)(3 4)"},
		{[]int{0, 2, 1}, "(1 2)"},
		{[]int{2, 0, 1}, "(0 2 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatCycles(MustFromImages(tt.images...)); got != tt.want {
				t.Errorf("FormatCycles(%v) = %q, want %q", tt.images, got, tt.want)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, p := range All(5) {
		q, err := ParseCycles(FormatCycles(p), 5)
		if err != nil {
			t.Fatalf("ParseCycles(FormatCycles(%v)): %v", p.Images(), err)
		}
		if !Equal(p, q) {
			t.Errorf("round trip of %v gave %v", p.Images(), q.Images())
		}
	}
}

func TestFormatGenerators(t *testing.T) {
	gens := []*Perm{
		MustParseCycles("(0 1)", 5),
		MustParseCycles("(0 1 2 3 4)", 5),
	}
	want := "<(0 1), (0 1 2 3 4)>"
	if got := FormatGenerators(gens); got != want {
		t.Errorf("FormatGenerators() = %q, want %q", got, want)
	}
	if got := FormatGenerators([]*Perm{}); got != "<>" {
		t.Errorf("FormatGenerators(empty) = %q, want %q", got, "<>")
	}
}
