package models

import "time"

// StrategyName identifies a detection strategy.
type StrategyName string

const (
	StrategyIndividualNumbers       StrategyName = "individualNumbers"
	StrategyRepeatedColumnSequences StrategyName = "repeatedColumnSequences"
	StrategyDuplicateRows           StrategyName = "duplicateRows"
)

// StrategyResult holds the fields common to every strategy result.
type StrategyResult struct {
	Name          StrategyName  `json:"name"`
	ExecutionTime time.Duration `json:"execution_time_ns"`
}

// Result is implemented by every strategy result.
type Result interface {
	Base() *StrategyResult
	// Findings returns the number of reported items.
	Findings() int
}

// IndividualNumbersResult lists repeated high-entropy values.
type IndividualNumbersResult struct {
	StrategyResult
	DuplicateValues []DuplicateValue `json:"duplicate_values"`
}

func (r *IndividualNumbersResult) Base() *StrategyResult { return &r.StrategyResult }
func (r *IndividualNumbersResult) Findings() int         { return len(r.DuplicateValues) }

// RepeatedColumnSequencesResult lists suspicious repeated column segments.
type RepeatedColumnSequencesResult struct {
	StrategyResult
	Sequences []RepeatedColumnSequence `json:"sequences"`
	// Truncated is set when the output cap stopped the search early.
	Truncated bool `json:"truncated,omitempty"`
}

func (r *RepeatedColumnSequencesResult) Base() *StrategyResult { return &r.StrategyResult }
func (r *RepeatedColumnSequencesResult) Findings() int         { return len(r.Sequences) }

// DuplicateRowsResult lists suspicious row pairs, highest score first.
type DuplicateRowsResult struct {
	StrategyResult
	DuplicateRows []DuplicateRow `json:"duplicate_rows"`
	// Truncated is set when the output cap stopped the search early.
	Truncated bool `json:"truncated,omitempty"`
}

func (r *DuplicateRowsResult) Base() *StrategyResult { return &r.StrategyResult }
func (r *DuplicateRowsResult) Findings() int         { return len(r.DuplicateRows) }
