// Package models defines the data structures shared by the loader, the
// detection strategies and the renderers.
package models

import "github.com/xuri/excelize/v2"

// EnhancedCell is one cell of a sheet matrix with its numeric interpretation.
type EnhancedCell struct {
	// Row is the 0-based row index in the matrix (0 is the header row).
	Row int `json:"row"`
	// Col is the 0-based column index.
	Col int `json:"col"`
	// Ref is the A1-style cell name, stable across runs.
	Ref string `json:"ref"`
	// Raw is the unformatted cell content.
	Raw string `json:"raw,omitempty"`
	// Value is the numeric value when Analyzable is true.
	Value float64 `json:"value,omitempty"`
	// Analyzable is true only for clean, finite numbers. Text, blanks and
	// formula errors are not analyzable.
	Analyzable bool `json:"analyzable"`
}

// CellRef returns the A1 name of a 0-based row/column pair.
func CellRef(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	return name
}

// Equal reports whether both cells are analyzable and hold the same number.
func (c EnhancedCell) Equal(other EnhancedCell) bool {
	return c.Analyzable && other.Analyzable && c.Value == other.Value
}
