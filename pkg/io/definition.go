package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/perm"
)

// Definition describes a permutation group by its generators.
type Definition struct {
	Name       string   `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Degree     int      `json:"degree" toml:"degree" yaml:"degree"`
	Generators []string `json:"generators" toml:"generators" yaml:"generators"`
	Base       []int    `json:"base,omitempty" toml:"base,omitempty" yaml:"base,omitempty"`
}

// Format is a definition file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported definition file %q (want .toml, .yaml or .json)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f == "yml" {
		f = FormatYAML
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", s)
}

// Validate checks the degree, every generator and the base points.
// Generator errors keep the code of the underlying cycle notation error.
func (d *Definition) Validate() error {
	if d.Name != "" {
		if err := errors.ValidateGroupName(d.Name); err != nil {
			return err
		}
	}
	if err := errors.ValidateDegree(d.Degree); err != nil {
		return err
	}
	if _, err := d.Perms(); err != nil {
		return err
	}
	seen := make(map[int]bool, len(d.Base))
	for _, b := range d.Base {
		if err := errors.ValidatePoint(b, d.Degree); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "base point")
		}
		if seen[b] {
			return errors.New(errors.ErrCodeInvalidDefinition, "base point %d listed twice", b)
		}
		seen[b] = true
	}
	return nil
}

// Perms parses the generators.
func (d *Definition) Perms() ([]*perm.Perm, error) {
	out := make([]*perm.Perm, len(d.Generators))
	for i, s := range d.Generators {
		p, err := perm.ParseCycles(s, d.Degree)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "generator %d %q", i, s)
		}
		out[i] = p
	}
	return out, nil
}

// Fingerprint identifies the group a definition describes. Definitions
// differing only in name or in how cycles are written share a fingerprint.
// The definition must be valid.
func (d *Definition) Fingerprint() string {
	h := xxhash.New()
	fmt.Fprintf(h, "degree=%d;", d.Degree)
	for _, s := range d.Generators {
		if p, err := perm.ParseCycles(s, d.Degree); err == nil {
			s = perm.FormatCycles(p)
		}
		fmt.Fprintf(h, "gen=%s;", s)
	}
	fmt.Fprintf(h, "base=%v", d.Base)
	return fmt.Sprintf("%016x", h.Sum64())
}

// DisplayName returns the name, or the generators when the name is empty.
func (d *Definition) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return "<" + strings.Join(d.Generators, ", ") + ">"
}
