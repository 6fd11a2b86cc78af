package models

import "fmt"

// buildSheet makes a sheet from a header row and data rows. Numbers become
// analyzable cells, nil becomes a blank, anything else text.
func buildSheet(name string, header []string, rows [][]any, numeric []int) *Sheet {
	matrix := make([][]EnhancedCell, 0, len(rows)+1)
	head := make([]EnhancedCell, len(header))
	for c, h := range header {
		head[c] = EnhancedCell{Row: 0, Col: c, Ref: CellRef(0, c), Raw: h}
	}
	matrix = append(matrix, head)
	for i, row := range rows {
		r := i + 1
		cells := make([]EnhancedCell, len(row))
		for c, v := range row {
			cell := EnhancedCell{Row: r, Col: c, Ref: CellRef(r, c)}
			switch x := v.(type) {
			case nil:
			case float64:
				cell.Value, cell.Analyzable, cell.Raw = x, true, fmt.Sprint(x)
			case int:
				cell.Value, cell.Analyzable, cell.Raw = float64(x), true, fmt.Sprint(x)
			default:
				cell.Raw = fmt.Sprint(x)
			}
			cells[c] = cell
		}
		matrix = append(matrix, cells)
	}
	return NewSheet(name, nil, matrix, numeric)
}
