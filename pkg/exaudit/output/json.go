// Package output renders audit reports.
package output

import (
	"encoding/json"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// ToJSON serializes a report.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// SheetToJSON serializes one sheet report.
func SheetToJSON(sheet *models.SheetReport, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(sheet, "", "  ")
	}
	return json.Marshal(sheet)
}
