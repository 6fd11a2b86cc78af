package models

import (
	"fmt"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
)

// DuplicateRow is a pair of rows sharing values in columns that should be
// unique. It is immutable once built.
type DuplicateRow struct {
	// Rows holds the two 0-based matrix row indices, lower first.
	Rows [2]int `json:"rows"`
	// SharedValues are the values found in both rows.
	SharedValues []float64 `json:"shared_values"`
	// SharedColumns are the column indices of SharedValues, index-aligned.
	SharedColumns []int `json:"shared_columns"`
	// TotalSharedCount is len(SharedValues).
	TotalSharedCount int `json:"total_shared_count"`
	// RowEntropyScore is the summed entropy score of SharedValues.
	RowEntropyScore float64 `json:"row_entropy_score"`
	// MatrixSizeAdjustedEntropyScore discounts large sheets.
	MatrixSizeAdjustedEntropyScore float64 `json:"matrix_size_adjusted_entropy_score"`
	// ComparedColumnCount is the number of columns the rows were compared on.
	ComparedColumnCount int `json:"compared_column_count"`
	// NumberCount is the owning sheet's numeric cell count.
	NumberCount int `json:"number_count"`
	// SheetName is the owning sheet.
	SheetName string `json:"sheet_name"`
}

// NewDuplicateRow scores a row pair. memo may be nil.
func NewDuplicateRow(rows [2]int, sharedValues []float64, sharedColumns []int, sheet *Sheet, comparedColumns int, memo *entropy.Memo) (*DuplicateRow, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}
	if rows[0] == rows[1] {
		return nil, fmt.Errorf("row %d: %w", rows[0], ErrSameRow)
	}
	if len(sharedValues) != len(sharedColumns) {
		return nil, ErrMisalignedShared
	}
	if len(sharedValues) == 0 {
		return nil, ErrEmptySequence
	}
	if rows[0] > rows[1] {
		rows[0], rows[1] = rows[1], rows[0]
	}

	score, err := memo.SequenceScore(sharedValues)
	if err != nil {
		return nil, fmt.Errorf("score rows %d and %d: %w", rows[0], rows[1], err)
	}

	return &DuplicateRow{
		Rows:                           rows,
		SharedValues:                   append([]float64(nil), sharedValues...),
		SharedColumns:                  append([]int(nil), sharedColumns...),
		TotalSharedCount:               len(sharedValues),
		RowEntropyScore:                score,
		MatrixSizeAdjustedEntropyScore: score / sheet.LogNumberCountModifier,
		ComparedColumnCount:            comparedColumns,
		NumberCount:                    sheet.NumNumericCells,
		SheetName:                      sheet.Name,
	}, nil
}
