package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeBook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Sample ID", "Mass"},
		{4821.37, 9023.18},
		{4821.37, 9023.18},
		{3318.64, 7745.29},
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunJSON(t *testing.T) {
	dir := t.TempDir()
	book := writeBook(t, dir)
	categories := filepath.Join(dir, "categories.yaml")
	require.NoError(t, os.WriteFile(categories, []byte("sheets:\n  \"*\":\n    unique: [Sample ID, Mass]\n"), 0o600))
	metrics := filepath.Join(dir, "exaudit.prom")
	outPath := filepath.Join(dir, "report.json")

	_, err := execute(t, book, "--categories", categories, "--output", outPath, "--metrics-textfile", metrics, "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var report struct {
		BookName string `json:"book_name"`
		Sheets   []struct {
			Results []struct {
				Name          string `json:"name"`
				DuplicateRows []any  `json:"duplicate_rows"`
			} `json:"results"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "book.xlsx", report.BookName)
	require.Len(t, report.Sheets, 1)
	require.Len(t, report.Sheets[0].Results, 3)
	assert.Equal(t, "duplicateRows", report.Sheets[0].Results[2].Name)
	assert.Len(t, report.Sheets[0].Results[2].DuplicateRows, 1)

	_, err = os.Stat(metrics)
	assert.NoError(t, err)
}

func TestRunText(t *testing.T) {
	book := writeBook(t, t.TempDir())

	out, err := execute(t, book, "--format", "text", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Workbook: book.xlsx")
	assert.Contains(t, out, "individualNumbers")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.xlsx"), "--log-level", "error")
	assert.Error(t, err)

	book := writeBook(t, t.TempDir())
	_, err = execute(t, book, "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t)
	assert.Error(t, err)
}
