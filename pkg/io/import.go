package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/permgroup/pkg/errors"
)

// Read decodes a definition in the given format and validates it.
//
// Read returns an *errors.Error with code INVALID_FORMAT when r does not
// hold a well-formed document, and the validation error from
// [Definition.Validate] otherwise. Read does not close r.
func Read(r io.Reader, format Format) (*Definition, error) {
	var def Definition
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&def)
		if undecoded := md.Undecoded(); err == nil && len(undecoded) > 0 {
			err = fmt.Errorf("unknown field %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&def)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads the definition file at path, choosing the format from its
// extension.
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	def, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
