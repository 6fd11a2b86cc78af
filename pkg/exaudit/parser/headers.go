package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRange is a rectangular block of cells, 1-based and inclusive.
type cellRange struct {
	R1, C1, R2, C2 int
}

// MergedHeaders expands header text across merged cells. headerRow is the
// 1-based sheet row of the header; row holds its raw values. Every column a
// merged block spans receives the block's text, so the logical name resolves
// to all of them.
func MergedHeaders(f *excelize.File, sheetName string, headerRow int, row []string) ([]string, error) {
	headers := append([]string(nil), row...)

	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	for _, mc := range merges {
		rng := parseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if rng == nil || headerRow < rng.R1 || headerRow > rng.R2 {
			continue
		}
		text := mc.GetCellValue()
		for len(headers) < rng.C2 {
			headers = append(headers, "")
		}
		for c := rng.C1; c <= rng.C2; c++ {
			headers[c-1] = text
		}
	}

	return headers, nil
}

// parseRange parses a range string like $A$1:$D$10.
func parseRange(rangeStr string) *cellRange {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &cellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
