package strategies

import (
	"fmt"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// buildSheet makes a sheet whose every column is numeric. nil becomes a
// blank cell and strings become text.
func buildSheet(name string, header []string, rows [][]any) *models.Sheet {
	matrix := make([][]models.EnhancedCell, 0, len(rows)+1)
	head := make([]models.EnhancedCell, len(header))
	numeric := make([]int, len(header))
	for c, h := range header {
		head[c] = models.EnhancedCell{Row: 0, Col: c, Ref: models.CellRef(0, c), Raw: h}
		numeric[c] = c
	}
	matrix = append(matrix, head)
	for i, row := range rows {
		r := i + 1
		cells := make([]models.EnhancedCell, len(row))
		for c, v := range row {
			cell := models.EnhancedCell{Row: r, Col: c, Ref: models.CellRef(r, c)}
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
	return models.NewSheet(name, nil, matrix, numeric)
}

// mapResolver resolves names from a fixed table.
type mapResolver map[string][]int

func (m mapResolver) ColumnIndices(name string) []int {
	return m[name]
}
