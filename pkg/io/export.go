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

// Write encodes def in the given format. The output can be read back with
// [Read].
func Write(w io.Writer, def *Definition, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(def)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(def)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(def); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// Save writes def to path in the format matching its extension.
func Save(def *Definition, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, def, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
