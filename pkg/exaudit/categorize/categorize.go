// Package categorize assigns roles to the columns of a sheet. The detectors
// only consume the "unique" role: columns whose values should not repeat.
package categorize

import (
	"context"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// ColumnCategorizer decides which logical columns of a sheet play which role.
type ColumnCategorizer interface {
	Categorize(ctx context.Context, sheet *models.Sheet) (models.ColumnCategorization, error)
}

// Func adapts a plain function to ColumnCategorizer.
type Func func(ctx context.Context, sheet *models.Sheet) (models.ColumnCategorization, error)

// Categorize calls fn.
func (fn Func) Categorize(ctx context.Context, sheet *models.Sheet) (models.ColumnCategorization, error) {
	return fn(ctx, sheet)
}

// Chain tries categorizers in order and returns the first categorization
// that assigns at least one role.
type Chain []ColumnCategorizer

// Categorize implements ColumnCategorizer.
func (c Chain) Categorize(ctx context.Context, sheet *models.Sheet) (models.ColumnCategorization, error) {
	for _, cat := range c {
		if err := ctx.Err(); err != nil {
			return models.ColumnCategorization{}, err
		}
		res, err := cat.Categorize(ctx, sheet)
		if err != nil {
			return models.ColumnCategorization{}, err
		}
		if !res.IsEmpty() {
			return res, nil
		}
	}
	return models.ColumnCategorization{}, nil
}
