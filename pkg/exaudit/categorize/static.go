package categorize

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// AnySheet is the key of the fallback entry in a categories file.
const AnySheet = "*"

// File is the on-disk layout of a categories file:
//
//	sheets:
//	  Measurements:
//	    unique: [Sample ID, Mass]
//	  "*":
//	    unique: [ID]
type File struct {
	Sheets map[string]models.ColumnCategorization `yaml:"sheets"`
}

// Static returns fixed categorizations keyed by sheet name.
type Static struct {
	bySheet map[string]models.ColumnCategorization
}

// NewStatic returns a Static categorizer. The AnySheet entry, if present,
// applies to sheets without their own entry.
func NewStatic(bySheet map[string]models.ColumnCategorization) *Static {
	m := make(map[string]models.ColumnCategorization, len(bySheet))
	for k, v := range bySheet {
		m[k] = v
	}
	return &Static{bySheet: m}
}

// LoadStatic reads a YAML categories file.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("parse categories file %s: %w", path, err)
	}
	return NewStatic(f.Sheets), nil
}

// Categorize implements ColumnCategorizer.
func (s *Static) Categorize(_ context.Context, sheet *models.Sheet) (models.ColumnCategorization, error) {
	if c, ok := s.bySheet[sheet.Name]; ok {
		return c, nil
	}
	return s.bySheet[AnySheet], nil
}
