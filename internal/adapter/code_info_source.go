// Package adapter contains the file-backed infrastructure of the targetpath CLI.
package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/targetpath/internal/model"
)

// Format is a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension, falling back to def.
func FormatForPath(path m.Path, def Format) Format {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	return def
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unsupported format %q", name)
}

// CodeInfoSource loads analyzer output.
type CodeInfoSource interface {
	Load(path m.Path) (*m.CodeInfo, error)
}

// LocalCodeInfoSource reads analyzer output from JSON or YAML files.
type LocalCodeInfoSource struct{}

// NewLocalCodeInfoSource constructs a LocalCodeInfoSource.
func NewLocalCodeInfoSource() *LocalCodeInfoSource {
	return &LocalCodeInfoSource{}
}

// Load reads and decodes the code info at path.
func (s *LocalCodeInfoSource) Load(path m.Path) (*m.CodeInfo, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read code info %s: %w", path, err)
	}

	var info m.CodeInfo
	if err := decode(content, FormatForPath(path, FormatJSON), &info); err != nil {
		return nil, fmt.Errorf("failed to decode code info %s: %w", path, err)
	}

	if info.CodeTree == nil {
		return nil, fmt.Errorf("code info %s has no code_tree", path)
	}

	return &info, nil
}

func decode(content []byte, format Format, out any) error {
	if format == FormatYAML {
		return yaml.Unmarshal(content, out)
	}

	return json.Unmarshal(content, out)
}

func encode(format Format, in any) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(in)
	}

	content, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(content, '\n'), nil
}
