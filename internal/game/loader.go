package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rawCatalog mirrors the catalog override file schema.
type rawCatalog struct {
	Boxes []BoxDefinition       `yaml:"boxes,omitempty"`
	Types map[Category][]string `yaml:"types,omitempty"`
}

// Load builds the catalog: the built-in defaults, optionally merged
// with a YAML override file. An empty path or a missing file means
// defaults only. The merged result is validated before being returned.
func Load(path string) (*Catalog, error) {
	merged := DefaultCatalog()

	if path != "" {
		raw, err := readYAML(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		merged = mergeCatalog(merged, raw)
	}

	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// readYAML loads an override file. Missing files return a zero raw
// catalog, no error.
func readYAML(path string) (rawCatalog, error) {
	var raw rawCatalog
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rawCatalog{}, nil
		}
		return rawCatalog{}, err
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return rawCatalog{}, err
	}
	return raw, nil
}

// mergeCatalog overlays raw onto base: boxes replace by id (new ids
// append in declared order), type rosters replace per category when
// provided.
func mergeCatalog(base *Catalog, raw rawCatalog) *Catalog {
	boxes := append([]BoxDefinition(nil), base.Boxes...)
	for _, b := range raw.Boxes {
		replaced := false
		for i := range boxes {
			if boxes[i].ID == b.ID {
				boxes[i] = b
				replaced = true
				break
			}
		}
		if !replaced {
			boxes = append(boxes, b)
		}
	}

	types := make(map[Category][]string, len(base.Types))
	for cat, list := range base.Types {
		types[cat] = append([]string(nil), list...)
	}
	for cat, list := range raw.Types {
		types[cat] = append([]string(nil), list...)
	}

	return NewCatalog(boxes, types)
}
