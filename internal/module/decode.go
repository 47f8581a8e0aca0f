// SPDX-License-Identifier: MPL-2.0

package module

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"vconsole/pkg/cueutil"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
	formatYAML = "yaml"
)

//go:embed module_schema.cue
var moduleSchema string

// formatOf picks the source format from the label's extension. Anything
// that is not TOML or YAML is read as CUE.
func formatOf(label string) string {
	switch strings.ToLower(filepath.Ext(label)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatCUE
	}
}

// Decode parses a module source and validates it against the #Module
// schema. label names the source in errors and selects its format.
func Decode(source []byte, label string, maxFileSize int64) (*Module, error) {
	if err := cueutil.CheckFileSize(source, maxFileSize, label); err != nil {
		return nil, err
	}

	data := source
	switch formatOf(label) {
	case formatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(source, &raw); err != nil {
			return nil, fmt.Errorf("%s: invalid TOML: %w", label, err)
		}
		var err error
		if data, err = toJSON(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
	case formatYAML:
		var raw map[string]any
		if err := yaml.Unmarshal(source, &raw); err != nil {
			return nil, fmt.Errorf("%s: invalid YAML: %w", label, err)
		}
		var err error
		if data, err = toJSON(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
	}

	result, err := cueutil.ParseAndDecodeString[Module](
		moduleSchema,
		data,
		"#Module",
		cueutil.WithFilename(label),
		cueutil.WithMaxFileSize(maxFileSize),
	)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// toJSON re-encodes a decoded TOML or YAML document as JSON, which CUE
// compiles as a plain data value.
func toJSON(raw map[string]any) ([]byte, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert module to CUE data: %w", err)
	}
	return data, nil
}
