package parser

import (
	"fmt"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
	"github.com/xuri/excelize/v2"
)

// DefaultMaxRows caps the rows read per sheet.
const DefaultMaxRows = 5000

// LoadOptions configures sheet loading.
type LoadOptions struct {
	// MaxRows caps the number of rows read per sheet, header included.
	// Zero means DefaultMaxRows; a negative value disables the cap.
	MaxRows int
	// Columns configures numeric column detection.
	Columns NumericColumnParams
}

// DefaultLoadOptions returns default load options.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		MaxRows: DefaultMaxRows,
		Columns: DefaultNumericColumnParams(),
	}
}

// SheetError records a sheet that could not be loaded.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("load sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// LoadSheets loads every worksheet of f. Sheets that fail to load are
// skipped and reported in the returned errors.
func LoadSheets(f *excelize.File, opts LoadOptions) ([]*models.Sheet, []error) {
	var (
		sheets []*models.Sheet
		errs   []error
	)
	for _, name := range f.GetSheetList() {
		sheet, err := LoadSheet(f, name, opts)
		if err != nil {
			errs = append(errs, &SheetError{SheetName: name, Err: err})
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets, errs
}

// LoadSheet reads one worksheet. Leading blank rows are skipped so that the
// first non-empty row becomes the header row.
func LoadSheet(f *excelize.File, sheetName string, opts LoadOptions) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	first, last := findDataBounds(rows)
	if first < 0 {
		return models.NewSheet(sheetName, nil, nil, nil), nil
	}
	rows = rows[first : last+1]

	maxRows := opts.MaxRows
	if maxRows == 0 {
		maxRows = DefaultMaxRows
	}
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	headers, err := MergedHeaders(f, sheetName, first+1, rows[0])
	if err != nil {
		return nil, fmt.Errorf("merged headers: %w", err)
	}

	return BuildSheet(sheetName, rows, first, headers, opts.Columns), nil
}

// BuildSheet assembles a sheet from raw rows whose first row is the header.
// headers may be nil to use rows[0] verbatim.
func BuildSheet(name string, rows [][]string, rowOffset int, headers []string, params NumericColumnParams) *models.Sheet {
	matrix := BuildMatrix(rows, rowOffset)
	if headers != nil && len(matrix) > 0 {
		for len(headers) < len(matrix[0]) {
			headers = append(headers, "")
		}
	}
	return models.NewSheet(name, headers, matrix, DetectNumericColumns(matrix, params))
}
