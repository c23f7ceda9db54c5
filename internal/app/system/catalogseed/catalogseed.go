// Package catalogseed reads the person type entries an installation ships
// with. A seed file looks like:
//
//	person_types:
//	  - name: Estudiante
//	  - name: Bibliotecario
//	    description: Library staff
package catalogseed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dalemusser/stratalibrary/internal/domain/models"
	"gopkg.in/yaml.v3"
)

// ErrEmptyName is returned when an entry has a blank name.
var ErrEmptyName = errors.New("person type name is empty")

type entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type file struct {
	PersonTypes []entry `yaml:"person_types"`
}

// Parse decodes a seed document. Unknown keys are rejected, and so are
// two entries whose names differ only by case.
func Parse(r io.Reader) ([]models.PersonType, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.PersonType{}, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	out := make([]models.PersonType, 0, len(f.PersonTypes))
	seen := make(map[string]int, len(f.PersonTypes))
	for i, e := range f.PersonTypes {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("entry %d: %w", i+1, ErrEmptyName)
		}
		key := strings.ToLower(name)
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("entry %d: %q repeats entry %d", i+1, name, first)
		}
		seen[key] = i + 1
		out = append(out, models.PersonType{Name: name, Description: strings.TrimSpace(e.Description)})
	}
	return out, nil
}

// Load reads and parses the seed file at path.
func Load(path string) ([]models.PersonType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}
