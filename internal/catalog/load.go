// internal/catalog/load.go
//
// YAML catalog loader.
//
// Context
// -------
// The catalog file is a single YAML document with a top-level `recipes`
// list.  Loading goes through Koanf's file provider and YAML parser,
// the same pipeline the config package uses, then each entry is checked
// with go-playground/validator.  Duplicate ids abort the load; the rest
// of the service indexes recipes by id and silent shadowing would be
// painful to debug.
package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var v = validator.New()

// Load reads and validates the recipe catalog at path.
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("catalog read %s: %w", path, err)
	}

	var doc struct {
		Recipes []Recipe `koanf:"recipes"`
	}
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("catalog unmarshal: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Recipes))
	for i := range doc.Recipes {
		rec := &doc.Recipes[i]
		if err := v.Struct(rec); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}

	zap.S().Infow("catalog loaded", "file", path, "recipes", len(doc.Recipes))
	return New(doc.Recipes), nil
}
