// Package io reads and writes group definition files.
//
// # Overview
//
// A definition names a permutation group by its degree and a list of
// generators in cycle notation. Definitions drive the command line, the HTTP
// API and the stores, and their [Definition.Fingerprint] keys the summary
// cache.
//
// # Formats
//
// Three encodings are supported and chosen by file extension:
//
//   - .toml
//   - .yaml or .yml
//   - .json
//
// The same definition in TOML:
//
//	name = "S5"
//	degree = 5
//	generators = ["(0 1)", "(0 1 2 3 4)"]
//	base = [0, 1]
//
// and in JSON:
//
//	{"name": "S5", "degree": 5, "generators": ["(0 1)", "(0 1 2 3 4)"]}
//
// # Fields
//
// Required:
//   - degree: number of points, between 1 and [errors.MaxDegree]
//   - generators: cycle notation strings, points 0-indexed
//
// Optional:
//   - name: display name
//   - base: preferred base points, tried in order when new chain levels are
//     created
//
// [errors.MaxDegree]: https://pkg.go.dev/github.com/matzehuels/permgroup/pkg/errors#MaxDegree
package io
