package provider

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFixtures reads a YAML snapshot and validates every record.
func LoadFixtures(path string) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: read %s: %w", ErrInvalidFixtures, path, err)
	}
	return ParseFixtures(raw)
}

// ParseFixtures decodes a YAML snapshot. Unknown keys are rejected.
func ParseFixtures(raw []byte) (Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decode: %w", ErrInvalidFixtures, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidFixtures, err)
	}
	return s.Clone(), nil
}
