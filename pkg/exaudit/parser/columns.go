package parser

import "github.com/ukaji3/exaudit-go/pkg/exaudit/models"

// NumericColumnParams holds parameters for numeric column detection.
type NumericColumnParams struct {
	// NumericRatioMin is the minimum share of non-empty data cells that must
	// be numeric.
	NumericRatioMin float64 `yaml:"numeric_ratio_min" envconfig:"NUMERIC_RATIO_MIN" default:"0.5" validate:"gte=0,lte=1"`
	// MinNumericCells is the minimum number of numeric data cells.
	MinNumericCells int `yaml:"min_numeric_cells" envconfig:"MIN_NUMERIC_CELLS" default:"2" validate:"gte=1"`
}

// DefaultNumericColumnParams returns default numeric column parameters.
func DefaultNumericColumnParams() NumericColumnParams {
	return NumericColumnParams{
		NumericRatioMin: 0.5,
		MinNumericCells: 2,
	}
}

// DetectNumericColumns returns the columns of matrix whose data rows are
// predominantly numeric.
func DetectNumericColumns(matrix [][]models.EnhancedCell, params NumericColumnParams) []int {
	if len(matrix) < 2 {
		return nil
	}

	width := 0
	for _, row := range matrix {
		if len(row) > width {
			width = len(row)
		}
	}

	var result []int
	for col := 0; col < width; col++ {
		nonEmpty, numeric := countColumnCells(matrix, col)
		if numeric < params.MinNumericCells || nonEmpty == 0 {
			continue
		}
		if float64(numeric)/float64(nonEmpty) >= params.NumericRatioMin {
			result = append(result, col)
		}
	}
	return result
}

// countColumnCells counts non-empty and numeric data cells of one column.
func countColumnCells(matrix [][]models.EnhancedCell, col int) (nonEmpty, numeric int) {
	for r := 1; r < len(matrix); r++ {
		row := matrix[r]
		if col >= len(row) || row[col].Raw == "" {
			continue
		}
		nonEmpty++
		if row[col].Analyzable {
			numeric++
		}
	}
	return
}

// findDataBounds finds the first and last non-empty rows, or -1, -1.
func findDataBounds(rows [][]string) (minRow, maxRow int) {
	minRow, maxRow = -1, -1
	for rowIdx, row := range rows {
		for _, cell := range row {
			if cell != "" {
				if minRow < 0 {
					minRow = rowIdx
				}
				maxRow = rowIdx
				break
			}
		}
	}
	return
}
