package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

func sampleReport() *models.Report {
	return &models.Report{
		RunID:    "run-1",
		BookName: "book.xlsx",
		Sheets: []models.SheetReport{{
			SheetName:       "Data",
			NumRows:         5,
			NumNumericCells: 12,
			Categorization:  models.ColumnCategorization{Unique: []string{"A", "B"}},
			Results: []models.Result{
				&models.IndividualNumbersResult{
					StrategyResult: models.StrategyResult{Name: models.StrategyIndividualNumbers, ExecutionTime: time.Millisecond},
					DuplicateValues: []models.DuplicateValue{{
						Value: 4821.37, Signature: 482137, EntropyScore: 5.68,
						MatrixSizeAdjustedEntropyScore: 8.47, CellIDs: []string{"A2", "A3"}, SheetName: "Data",
					}},
				},
				&models.RepeatedColumnSequencesResult{
					StrategyResult: models.StrategyResult{Name: models.StrategyRepeatedColumnSequences},
					Sequences: []models.RepeatedColumnSequence{{
						Positions: [2]models.Position{
							{Column: 1, StartRow: 1, CellID: "B2"},
							{Column: 2, StartRow: 7, CellID: "C8"},
						},
						Values:                         []float64{4821.37, 9023.18, 3318.64},
						MatrixSizeAdjustedEntropyScore: 10.5,
					}},
				},
				&models.DuplicateRowsResult{
					StrategyResult: models.StrategyResult{Name: models.StrategyDuplicateRows},
					DuplicateRows: []models.DuplicateRow{{
						Rows: [2]int{1, 3}, SharedValues: []float64{4821.37, 9023.18}, SharedColumns: []int{0, 1},
						TotalSharedCount: 2, ComparedColumnCount: 2, RowEntropyScore: 11.64, MatrixSizeAdjustedEntropyScore: 8.67,
					}},
					Truncated: true,
				},
			},
		}},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "book.xlsx", decoded["book_name"])

	sheets := decoded["sheets"].([]any)
	results := sheets[0].(map[string]any)["results"].([]any)
	require.Len(t, results, 3)
	assert.Equal(t, "individualNumbers", results[0].(map[string]any)["name"])

	seq := results[1].(map[string]any)["sequences"].([]any)[0].(map[string]any)
	assert.Equal(t, "medium", seq["suspicion_level"])
	assert.Equal(t, true, results[2].(map[string]any)["truncated"])

	pretty, err := ToJSON(sampleReport(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"run_id\": \"run-1\"")
}

func TestSheetToJSON(t *testing.T) {
	sheet := sampleReport().Sheets[0]
	data, err := SheetToJSON(&sheet, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sheet_name":"Data"`)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Workbook: book.xlsx")
	assert.Contains(t, out, `Sheet "Data": 5 rows, 12 numeric cells, 3 findings`)
	assert.Contains(t, out, "Unique columns: A, B")
	assert.Contains(t, out, "A2 A3")
	assert.Contains(t, out, "B2")
	assert.Contains(t, out, "medium")
	assert.Contains(t, out, "4821.37 9023.18")
	assert.Contains(t, out, "(truncated)")
}
