// Package parser turns excelize worksheets into analyzable sheets.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// BuildMatrix converts raw rows into cells. rowOffset is the 0-based sheet
// row of rows[0] and only affects cell references.
func BuildMatrix(rows [][]string, rowOffset int) [][]models.EnhancedCell {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	matrix := make([][]models.EnhancedCell, len(rows))
	for r, row := range rows {
		cells := make([]models.EnhancedCell, width)
		for c := 0; c < width; c++ {
			cell := models.EnhancedCell{
				Row: r,
				Col: c,
				Ref: models.CellRef(r+rowOffset, c),
			}
			if c < len(row) {
				cell.Raw = row[c]
				// The header row never holds data.
				if r > 0 {
					cell.Value, cell.Analyzable = parseValue(row[c])
				}
			}
			cells[c] = cell
		}
		matrix[r] = cells
	}
	return matrix
}

// parseValue parses a raw cell value as a finite number. Text, blanks,
// formula errors (#DIV/0!, #N/A, ...) and spelled-out NaN/Inf are rejected.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return 0, false
	}
	// ParseFloat also accepts hex floats, "NaN" and "Inf"; spreadsheets never
	// store numbers that way.
	if strings.ContainsAny(s, "xXnNiI_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
