package models

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// duplicateHeaderSuffix matches the suffixes spreadsheet tools append to
// repeated headers: "Sample ID (2)", "Sample ID.1", "Sample ID_3".
var duplicateHeaderSuffix = regexp.MustCompile(`(\s*\(\d+\)|[._]\d+)$`)

// Sheet is an analyzable view of one worksheet.
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Matrix holds the cells row-major; row 0 is the header row.
	Matrix [][]EnhancedCell `json:"-"`
	// Headers holds one logical column name per column. Merged header cells
	// repeat their text across every spanned column.
	Headers []string `json:"headers"`
	// NumRows is the number of matrix rows including the header row.
	NumRows int `json:"num_rows"`
	// NumNumericCells counts analyzable cells below the header row.
	NumNumericCells int `json:"num_numeric_cells"`
	// NumericColumnIndices lists the columns treated as numeric.
	NumericColumnIndices []int `json:"numeric_column_indices"`
	// LogNumberCountModifier discounts scores on larger sheets, where
	// coincidental matches are more likely. It is always >= 1.
	LogNumberCountModifier float64 `json:"log_number_count_modifier"`

	columnsByName map[string][]int
	numeric       map[int]bool
}

// NewSheet builds a Sheet. When headers is nil the raw contents of row 0 are
// used.
func NewSheet(name string, headers []string, matrix [][]EnhancedCell, numericColumns []int) *Sheet {
	if headers == nil && len(matrix) > 0 {
		headers = make([]string, len(matrix[0]))
		for i, c := range matrix[0] {
			headers[i] = c.Raw
		}
	}

	s := &Sheet{
		Name:                 name,
		Matrix:               matrix,
		Headers:              headers,
		NumRows:              len(matrix),
		NumericColumnIndices: append([]int(nil), numericColumns...),
		columnsByName:        make(map[string][]int),
		numeric:              make(map[int]bool, len(numericColumns)),
	}
	sort.Ints(s.NumericColumnIndices)
	for _, c := range s.NumericColumnIndices {
		s.numeric[c] = true
	}

	for r := 1; r < len(matrix); r++ {
		for _, c := range matrix[r] {
			if c.Analyzable {
				s.NumNumericCells++
			}
		}
	}
	s.LogNumberCountModifier = LogNumberCountModifier(s.NumNumericCells)

	for i, h := range headers {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		s.addColumnName(key, i)
		if base := normalizeHeader(duplicateHeaderSuffix.ReplaceAllString(strings.TrimSpace(h), "")); base != "" && base != key {
			s.addColumnName(base, i)
		}
	}

	return s
}

// LogNumberCountModifier returns the size correction for a sheet holding n
// numeric cells.
func LogNumberCountModifier(n int) float64 {
	return math.Log10(float64(n) + 10)
}

func (s *Sheet) addColumnName(key string, col int) {
	cols := s.columnsByName[key]
	for _, c := range cols {
		if c == col {
			return
		}
	}
	s.columnsByName[key] = append(cols, col)
}

// ColumnIndices resolves a logical column name to physical column indices.
// Matching ignores case and surrounding whitespace; merged, duplicated and
// suffixed headers resolve to every column they cover.
func (s *Sheet) ColumnIndices(name string) []int {
	return s.columnsByName[normalizeHeader(name)]
}

// IsNumericColumn reports whether col is one of NumericColumnIndices.
func (s *Sheet) IsNumericColumn(col int) bool {
	return s.numeric[col]
}

// Cell returns the cell at row/col, or false when out of range.
func (s *Sheet) Cell(row, col int) (EnhancedCell, bool) {
	if row < 0 || row >= len(s.Matrix) || col < 0 || col >= len(s.Matrix[row]) {
		return EnhancedCell{}, false
	}
	return s.Matrix[row][col], true
}

// Row returns a matrix row, or nil when out of range.
func (s *Sheet) Row(row int) []EnhancedCell {
	if row < 0 || row >= len(s.Matrix) {
		return nil
	}
	return s.Matrix[row]
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
