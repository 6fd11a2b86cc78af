package parser

import (
	"path/filepath"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbook opens an xlsx file and loads every worksheet. The error is
// non-nil only when the file cannot be opened; per-sheet failures are
// returned separately.
func LoadWorkbook(path string, opts LoadOptions) (*models.Workbook, []error, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets, errs := LoadSheets(f, opts)
	return &models.Workbook{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, errs, nil
}
