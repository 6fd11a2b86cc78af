package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// WriteText renders a report as plain text tables, one block per sheet and
// strategy.
func WriteText(w io.Writer, report *models.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Workbook: %s\nRun: %s\n", report.BookName, report.RunID)
	for _, sheet := range report.Sheets {
		fmt.Fprintf(tw, "\nSheet %q: %d rows, %d numeric cells, %d findings\n",
			sheet.SheetName, sheet.NumRows, sheet.NumNumericCells, sheet.Findings())
		if len(sheet.Categorization.Unique) > 0 {
			fmt.Fprintf(tw, "Unique columns: %s\n", strings.Join(sheet.Categorization.Unique, ", "))
		}
		for _, res := range sheet.Results {
			writeResult(tw, res)
		}
	}
	return tw.Flush()
}

func writeResult(w io.Writer, res models.Result) {
	base := res.Base()
	fmt.Fprintf(w, "\n  %s: %d (%s)\n", base.Name, res.Findings(), base.ExecutionTime)
	if res.Findings() == 0 {
		return
	}

	switch r := res.(type) {
	case *models.IndividualNumbersResult:
		fmt.Fprintln(w, "  value\tscore\tadjusted\tcells")
		for _, v := range r.DuplicateValues {
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%s\n",
				formatValue(v.Value), v.EntropyScore, v.MatrixSizeAdjustedEntropyScore, strings.Join(v.CellIDs, " "))
		}
	case *models.RepeatedColumnSequencesResult:
		fmt.Fprintln(w, "  from\tto\tlength\tadjusted\tlevel")
		for _, s := range r.Sequences {
			fmt.Fprintf(w, "  %s\t%s\t%d\t%.2f\t%s\n",
				s.Positions[0].CellID, s.Positions[1].CellID, s.Len(), s.MatrixSizeAdjustedEntropyScore, s.SuspicionLevel())
		}
		if r.Truncated {
			fmt.Fprintln(w, "  (truncated)")
		}
	case *models.DuplicateRowsResult:
		fmt.Fprintln(w, "  rows\tshared\tscore\tadjusted\tvalues")
		for _, d := range r.DuplicateRows {
			fmt.Fprintf(w, "  %d, %d\t%d/%d\t%.2f\t%.2f\t%s\n",
				d.Rows[0], d.Rows[1], d.TotalSharedCount, d.ComparedColumnCount,
				d.RowEntropyScore, d.MatrixSizeAdjustedEntropyScore, formatValues(d.SharedValues))
		}
		if r.Truncated {
			fmt.Fprintln(w, "  (truncated)")
		}
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, " ")
}
