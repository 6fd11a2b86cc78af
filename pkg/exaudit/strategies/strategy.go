// Package strategies holds the detectors that look for fabricated or
// duplicated numbers in a sheet.
package strategies

import (
	"context"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// Dependencies carries what a strategy may need beyond the sheet itself.
type Dependencies struct {
	// Categorization assigns roles to the sheet's columns.
	Categorization models.ColumnCategorization
	// PreviousResults holds the results of strategies that already ran on
	// the same sheet. They must not be modified.
	PreviousResults []models.Result
	// Memo caches entropy signatures across strategies and sheets; may be nil.
	Memo *entropy.Memo
}

// Strategy is one detection pass over a sheet.
type Strategy interface {
	Name() models.StrategyName
	Execute(ctx context.Context, sheet *models.Sheet, deps Dependencies) (models.Result, error)
}

// ColumnResolver maps a logical column name to physical column indices.
// *models.Sheet implements it.
type ColumnResolver interface {
	ColumnIndices(name string) []int
}

// Default returns the standard strategy pipeline in execution order.
func Default(dup DuplicateRowParams, seq SequenceParams, num IndividualNumberParams) []Strategy {
	return []Strategy{
		NewIndividualNumbers(num),
		NewRepeatedSequenceFinder(seq),
		NewDuplicateRowDetector(dup),
	}
}
