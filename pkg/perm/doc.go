// Package perm provides the permutation abstraction used by the group
// machinery: a read capability ([Source]), a mutable capability ([Mutable]),
// the array-backed [Perm] handle, lazy composition ([Mult], [Word]) and the
// cycle-notation text format.
//
// # Composition
//
// Products are applied left to right. For permutations a and b,
//
//	perm.Mult(a, b).Get(i) == b.Get(a.Get(i))
//
// [Mult] and [Word] never allocate a result; they are views that evaluate
// Get on demand. Use [Copy] (or a provider's Copy) to materialize them.
//
// # Cycle Notation
//
// Permutations are written as space-separated, 0-indexed points in
// parentheses per cycle:
//
//	p, err := perm.ParseCycles("(0 1 2)(3 4)", 5)
//	fmt.Println(perm.FormatCycles(p)) // (0 1 2)(3 4)
//
// The identity is written "(0)". Parsing fails with a distinct error code for
// malformed text, an out-of-range point, or a point used twice; see
// [github.com/matzehuels/permgroup/pkg/errors].
//
// # Enumeration
//
// [Generate] and [All] enumerate the full symmetric group with Heap's
// algorithm. They are meant for brute-force checks on small degrees.
package perm
