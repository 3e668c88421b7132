package pipeline

import (
	"github.com/matzehuels/permgroup/pkg/group"
	groupio "github.com/matzehuels/permgroup/pkg/io"
	"github.com/matzehuels/permgroup/pkg/perm"
)

// Summary describes a built group. It is what the summary cache stores and
// what the API returns.
type Summary struct {
	Name             string   `json:"name,omitempty"`
	Fingerprint      string   `json:"fingerprint"`
	Degree           int      `json:"degree"`
	Generators       []string `json:"generators"`
	Order            string   `json:"order"`
	Base             []int    `json:"base"`
	OrbitLengths     []int    `json:"orbit_lengths"`
	StrongGenerators []string `json:"strong_generators"`
	Levels           []Level  `json:"levels"`
	Elements         []string `json:"elements,omitempty"`
}

// Level describes one chain level.
type Level struct {
	Fixed       int      `json:"fixed"`
	Orbit       []int    `json:"orbit"`
	Generators  []string `json:"generators"`
	Predecessor []int    `json:"predecessor"`
}

// Summarize describes sys, which was built from def.
func Summarize(def *groupio.Definition, sys *group.System, elementLimit int) *Summary {
	s := &Summary{
		Name:             def.Name,
		Fingerprint:      def.Fingerprint(),
		Degree:           sys.Degree(),
		Generators:       formatAll(sys.Generators()[1:]),
		Order:            sys.Order().String(),
		Base:             sys.Base(),
		OrbitLengths:     sys.OrbitLengths(),
		StrongGenerators: formatAll(sys.StrongGenerators()),
		Levels:           []Level{},
	}
	for _, l := range sys.Levels() {
		s.Levels = append(s.Levels, DescribeLevel(l))
	}
	if elementLimit > 0 {
		s.Elements = formatAll(sys.Elements(elementLimit))
	}
	return s
}

// DescribeLevel lists a level's orbit in discovery order together with the
// predecessor of each orbit point in its Schreier tree.
func DescribeLevel(l *group.Chain) Level {
	t := l.Stabilizer().Transversal()
	points := t.Orbit().Points()
	lv := Level{
		Fixed:       l.Fixed(),
		Orbit:       append([]int(nil), points...),
		Generators:  formatAll(l.Generators()),
		Predecessor: make([]int, len(points)),
	}
	for i, u := range points {
		lv.Predecessor[i] = t.Predecessor(u)
	}
	return lv
}

func formatAll(ps []*perm.Perm) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = perm.FormatCycles(p)
	}
	return out
}
