package exaudit

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoSheets indicates no worksheet of the input could be loaded.
var ErrNoSheets = errors.New("no loadable sheets")

// StageCategorize names the categorization step in a DetectionError.
const StageCategorize = "categorize"

// DetectionError represents an error while auditing one sheet.
type DetectionError struct {
	SheetName string
	Strategy  string // a strategy name, or StageCategorize
	Err       error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("detection error in sheet %q (%s): %v", e.SheetName, e.Strategy, e.Err)
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

// NewDetectionError creates a new DetectionError.
func NewDetectionError(sheetName, strategy string, err error) *DetectionError {
	return &DetectionError{
		SheetName: sheetName,
		Strategy:  strategy,
		Err:       err,
	}
}
