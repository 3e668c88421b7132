package perm

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/permgroup/pkg/errors"
)

// ReadCycles parses cycle notation such as "(0 1 2)(3 4)" into its cycles
// without interpreting them. Whitespace between tokens is ignored. At least
// one cycle is required and every cycle must contain at least one point.
func ReadCycles(s string) ([][]int, error) {
	var cycles [][]int
	i := skipSpace(s, 0)
	if i == len(s) {
		return nil, errors.New(errors.ErrCodeInvalidCycle, "could not parse cycle notation for permutation: empty input")
	}
	for i < len(s) {
		if s[i] != '(' {
			return nil, errors.New(errors.ErrCodeInvalidCycle, "could not parse cycle notation for permutation: expected '(' at offset %d", i)
		}
		i = skipSpace(s, i+1)
		var cycle []int
		for i < len(s) && s[i] != ')' {
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if j == i {
				return nil, errors.New(errors.ErrCodeInvalidCycle, "could not parse cycle notation for permutation: expected point at offset %d", i)
			}
			v, err := strconv.Atoi(s[i:j])
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidCycle, err, "could not parse point %q", s[i:j])
			}
			cycle = append(cycle, v)
			i = skipSpace(s, j)
		}
		if i == len(s) {
			return nil, errors.New(errors.ErrCodeInvalidCycle, "could not parse cycle notation for permutation: unterminated cycle")
		}
		if len(cycle) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidCycle, "could not parse cycle notation for permutation: empty cycle at offset %d", i)
		}
		cycles = append(cycles, cycle)
		i = skipSpace(s, i+1)
	}
	return cycles, nil
}

func skipSpace(s string, i int) int {
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}
	return i
}

// ParseCycles parses cycle notation into a permutation of degree n. Points
// missing from the notation are fixed. It returns an error with code
// ErrCodeInvalidCycle for malformed text, ErrCodePointOutOfRange for a point
// outside [0, n) and ErrCodePointReused for a point that appears twice.
func ParseCycles(s string, n int) (*Perm, error) {
	p := Identity(n)
	if err := ReadCyclesInto(s, p); err != nil {
		return nil, err
	}
	return p, nil
}

// MustParseCycles is like ParseCycles but panics on error.
func MustParseCycles(s string, n int) *Perm {
	p, err := ParseCycles(s, n)
	if err != nil {
		panic("perm: " + err.Error())
	}
	return p
}

// ReadCyclesInto resets p to the identity and applies the cycles in s.
func ReadCyclesInto(s string, p Mutable) error {
	n := p.Degree()
	SetIdentity(p)
	cycles, err := ReadCycles(s)
	if err != nil {
		return err
	}
	hit := make([]bool, n)
	for _, c := range cycles {
		for k := range c {
			dom, img := c[k], c[(k+1)%len(c)]
			if err := checkPoint(dom, n); err != nil {
				return err
			}
			if err := checkPoint(img, n); err != nil {
				return err
			}
			if hit[dom] {
				return errors.New(errors.ErrCodePointReused, "element %d already used", dom)
			}
			hit[dom] = true
			p.Put(dom, img)
		}
	}
	return nil
}

func checkPoint(i, n int) error {
	if i < n {
		return nil
	}
	return errors.New(errors.ErrCodePointOutOfRange, "element %d out of range [0;%d[", i, n)
}

// FormatCycles writes p in cycle notation, omitting fixed points. Each cycle
// starts at its smallest point. The identity is written as "(0)".
func FormatCycles(p Source) string {
	n := p.Degree()
	var b strings.Builder
	printed := make([]bool, n)
	for i := range n {
		if printed[i] || p.Get(i) == i {
			continue
		}
		b.WriteByte('(')
		b.WriteString(strconv.Itoa(i))
		printed[i] = true
		for next := p.Get(i); next != i; next = p.Get(next) {
			printed[next] = true
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(next))
		}
		b.WriteByte(')')
	}
	if b.Len() == 0 {
		return "(0)"
	}
	return b.String()
}

// FormatGenerators writes a generating set as "<g1, g2, ...>".
func FormatGenerators[P Source](gens []P) string {
	var b strings.Builder
	b.WriteByte('<')
	for i, g := range gens {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatCycles(g))
	}
	b.WriteByte('>')
	return b.String()
}
