package models

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
)

// Position is one end of a repeated sequence.
type Position struct {
	// Column is the 0-based column index.
	Column int `json:"column"`
	// StartRow is the 0-based row of the first value.
	StartRow int `json:"start_row"`
	// CellID is the A1 name of the first cell.
	CellID string `json:"cell_id"`
}

// RepeatedColumnSequence is a run of values found at two places in a sheet.
// It is immutable once built.
type RepeatedColumnSequence struct {
	// Positions are the two ends of the repetition.
	Positions [2]Position `json:"positions"`
	// Values are the shared values in order.
	Values []float64 `json:"values"`
	// SequenceEntropyScore is the summed entropy score of Values.
	SequenceEntropyScore float64 `json:"sequence_entropy_score"`
	// AdjustedSequenceEntropyScore discounts regular (counter-like) runs.
	AdjustedSequenceEntropyScore float64 `json:"adjusted_sequence_entropy_score"`
	// MatrixSizeAdjustedEntropyScore further discounts large sheets.
	MatrixSizeAdjustedEntropyScore float64 `json:"matrix_size_adjusted_entropy_score"`
	// NumberCount is the owning sheet's numeric cell count.
	NumberCount int `json:"number_count"`
	// SheetName is the owning sheet.
	SheetName string `json:"sheet_name"`
}

// NewRepeatedColumnSequence scores the values shared by two positions of
// sheet. memo may be nil.
func NewRepeatedColumnSequence(positions [2]Position, values []float64, sheet *Sheet, memo *entropy.Memo) (*RepeatedColumnSequence, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}
	if len(values) == 0 {
		return nil, ErrEmptySequence
	}
	if positions[0].Column == positions[1].Column && positions[0].StartRow == positions[1].StartRow {
		return nil, ErrSamePosition
	}

	raw, err := memo.SequenceScore(values)
	if err != nil {
		return nil, fmt.Errorf("score sequence at %s: %w", positions[0].CellID, err)
	}
	regularity := entropy.SequenceRegularity(values)
	adjusted := raw * (1 - regularity.MostCommonIntervalSizePercentage)

	return &RepeatedColumnSequence{
		Positions:                      positions,
		Values:                         append([]float64(nil), values...),
		SequenceEntropyScore:           raw,
		AdjustedSequenceEntropyScore:   adjusted,
		MatrixSizeAdjustedEntropyScore: adjusted / sheet.LogNumberCountModifier,
		NumberCount:                    sheet.NumNumericCells,
		SheetName:                      sheet.Name,
	}, nil
}

// SuspicionLevel classifies MatrixSizeAdjustedEntropyScore.
func (s *RepeatedColumnSequence) SuspicionLevel() SuspicionLevel {
	return ClassifySuspicion(s.MatrixSizeAdjustedEntropyScore)
}

// Len returns the number of shared values.
func (s *RepeatedColumnSequence) Len() int {
	return len(s.Values)
}

// MarshalJSON adds the derived suspicion level.
func (s RepeatedColumnSequence) MarshalJSON() ([]byte, error) {
	type plain RepeatedColumnSequence
	return json.Marshal(struct {
		plain
		SuspicionLevel SuspicionLevel `json:"suspicion_level"`
	}{plain(s), s.SuspicionLevel()})
}
