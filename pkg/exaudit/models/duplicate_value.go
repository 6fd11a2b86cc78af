package models

import "github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"

// DuplicateValue is a single high-entropy number occurring in several cells.
type DuplicateValue struct {
	Value     float64           `json:"value"`
	Signature entropy.Signature `json:"signature"`
	// EntropyScore is the score of one occurrence.
	EntropyScore float64 `json:"entropy_score"`
	// MatrixSizeAdjustedEntropyScore weighs repeat occurrences against the
	// sheet size.
	MatrixSizeAdjustedEntropyScore float64 `json:"matrix_size_adjusted_entropy_score"`
	// CellIDs lists every occurrence in row-major order.
	CellIDs   []string `json:"cell_ids"`
	SheetName string   `json:"sheet_name"`
}

// Occurrences returns the number of cells holding the value.
func (d DuplicateValue) Occurrences() int {
	return len(d.CellIDs)
}
