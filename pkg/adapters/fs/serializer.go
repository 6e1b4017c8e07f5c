package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/twodo/pkg/core"
)

// Serializer reads and writes a note list in one file format.
type Serializer interface {
	// Parse reads a note list from r.
	Parse(r io.Reader) ([]core.Note, error)
	// Serialize converts a note list to bytes.
	Serialize(notes []core.Note) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(true),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks the serializer for a file name or a bare format name ("json", "yaml").
func SerializerFor(nameOrFormat string) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(nameOrFormat))
	if ext == "" {
		ext = "." + strings.ToLower(nameOrFormat)
	}
	s, ok := DefaultSerializers()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (want json or yaml)", nameOrFormat)
	}
	return s, nil
}

// --- JSON Serializer ---

// JSONSerializer handles the slot layout: a JSON array of notes.
type JSONSerializer struct {
	// Indent pretty-prints the output.
	Indent bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(indent bool) *JSONSerializer {
	return &JSONSerializer{Indent: indent}
}

func (s *JSONSerializer) Parse(r io.Reader) ([]core.Note, error) {
	var notes []core.Note
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return notes, nil
}

func (s *JSONSerializer) Serialize(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	if s.Indent {
		return json.MarshalIndent(notes, "", "  ")
	}
	return json.Marshal(notes)
}

// --- YAML Serializer ---

// YAMLSerializer writes a note list as a YAML sequence.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var notes []core.Note
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&notes); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return notes, nil
}

func (s *YAMLSerializer) Serialize(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
