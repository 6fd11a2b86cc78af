package models

import "time"

// SheetReport collects every strategy result for one sheet.
type SheetReport struct {
	SheetName       string               `json:"sheet_name"`
	NumRows         int                  `json:"num_rows"`
	NumNumericCells int                  `json:"num_numeric_cells"`
	Categorization  ColumnCategorization `json:"categorization"`
	// Results are ordered as the strategies ran.
	Results []Result `json:"results"`
}

// Findings returns the total number of findings across strategies.
func (r SheetReport) Findings() int {
	n := 0
	for _, res := range r.Results {
		n += res.Findings()
	}
	return n
}

// Report is the outcome of auditing one workbook.
type Report struct {
	// RunID identifies this audit run.
	RunID string `json:"run_id"`
	// BookName is the workbook file name (no path).
	BookName  string        `json:"book_name"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	// Sheets are ordered as in the workbook.
	Sheets []SheetReport `json:"sheets"`
}
