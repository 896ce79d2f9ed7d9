package clip

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteClip writes a clip to a YAML file.
func WriteClip(c *Clip, path string) error {
	if c.Version == "" {
		c.Version = Version
	}
	return writeYAML(c, path)
}

// ReadClip reads and validates a clip from a YAML file.
func ReadClip(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode parses and validates a clip. Unknown fields are rejected.
func Decode(r io.Reader) (*Clip, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Clip
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidClip)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidClip, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func writeYAML(v any, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
