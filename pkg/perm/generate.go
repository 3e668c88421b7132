package perm

import "slices"

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the image list of the identity permutation of degree n.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the order of the symmetric group S_n.
// For n <= 1, Factorial returns 1.
//
// Note that factorials grow extremely fast: 13! = 6,227,020,800 exceeds 32-bit int.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] as image lists using
// Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// Generate is the brute-force reference for membership and stabilizer
// checks on small degrees; always pass a limit when n is large.
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	p := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
		if limit > 0 {
			capacity = min(capacity, limit)
		}
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(p))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			result = append(result, slices.Clone(p))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// All returns every permutation of degree n as *Perm values. It is Generate
// without a limit, wrapped for use with the rest of the package.
func All(n int) []*Perm {
	lists := Generate(n, 0)
	out := make([]*Perm, len(lists))
	for i, images := range lists {
		out[i] = &Perm{images: images}
	}
	return out
}
