package strategies

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

const (
	// MinIndexedSignature is the smallest signature a value needs to be
	// indexed. Years (signature 100), 0, 1 and round numbers stay out.
	MinIndexedSignature entropy.Signature = 200
	// MinSizeAdjustedRowEntropyScore is the size-adjusted score a row pair
	// must exceed to be reported.
	MinSizeAdjustedRowEntropyScore = 4.0
	// MinSharedColumns is the number of shared columns a row pair needs.
	MinSharedColumns = 2
	// MaxDuplicateRows caps the number of reported row pairs.
	MaxDuplicateRows = 1000
)

// DuplicateRowParams holds the duplicate row thresholds.
type DuplicateRowParams struct {
	MinIndexedSignature            entropy.Signature `yaml:"min_indexed_signature" envconfig:"MIN_INDEXED_SIGNATURE" default:"200"`
	MinSizeAdjustedRowEntropyScore float64           `yaml:"min_size_adjusted_row_entropy_score" envconfig:"MIN_SIZE_ADJUSTED_ROW_ENTROPY_SCORE" default:"4" validate:"gte=0"`
	MinSharedColumns               int               `yaml:"min_shared_columns" envconfig:"MIN_SHARED_COLUMNS" default:"2" validate:"gte=1"`
	// MaxDuplicateRows stops the search once reached; 0 disables the cap.
	MaxDuplicateRows int `yaml:"max_duplicate_rows" envconfig:"MAX_DUPLICATE_ROWS" default:"1000" validate:"gte=0"`
}

// DefaultDuplicateRowParams returns the default thresholds.
func DefaultDuplicateRowParams() DuplicateRowParams {
	return DuplicateRowParams{
		MinIndexedSignature:            MinIndexedSignature,
		MinSizeAdjustedRowEntropyScore: MinSizeAdjustedRowEntropyScore,
		MinSharedColumns:               MinSharedColumns,
		MaxDuplicateRows:               MaxDuplicateRows,
	}
}

// DuplicateRowDetector finds row pairs that share several high-entropy values
// in columns expected to hold unique identifiers.
type DuplicateRowDetector struct {
	Params DuplicateRowParams
	// Resolver maps unique column names to columns. Nil uses the sheet.
	Resolver ColumnResolver
	Logger   *zap.Logger
}

// NewDuplicateRowDetector returns a detector with the given thresholds.
func NewDuplicateRowDetector(params DuplicateRowParams) *DuplicateRowDetector {
	return &DuplicateRowDetector{Params: params, Logger: zap.NewNop()}
}

// Name implements Strategy.
func (d *DuplicateRowDetector) Name() models.StrategyName {
	return models.StrategyDuplicateRows
}

// Execute implements Strategy.
func (d *DuplicateRowDetector) Execute(ctx context.Context, sheet *models.Sheet, deps Dependencies) (models.Result, error) {
	res, err := d.Detect(ctx, sheet, deps.Categorization, deps.Memo)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// valueGroup is the set of rows holding one value in one column.
type valueGroup struct {
	value float64
	rows  []int
}

// Detect runs the detector on one sheet. memo may be nil.
//
// The output cap is enforced strictly: once MaxDuplicateRows pairs are kept,
// no further pair is compared and the result is marked Truncated. Columns
// and value groups are visited in a fixed order so the truncated set is
// reproducible.
func (d *DuplicateRowDetector) Detect(ctx context.Context, sheet *models.Sheet, cat models.ColumnCategorization, memo *entropy.Memo) (*models.DuplicateRowsResult, error) {
	start := time.Now()
	result := &models.DuplicateRowsResult{
		StrategyResult: models.StrategyResult{Name: models.StrategyDuplicateRows},
		DuplicateRows:  []models.DuplicateRow{},
	}
	defer func() { result.ExecutionTime = time.Since(start) }()

	cols := d.uniqueColumns(sheet, cat)
	if len(cols) == 0 {
		return result, nil
	}

	groups, err := d.indexColumns(sheet, cols, memo)
	if err != nil {
		return nil, err
	}

	compared := make(map[uint64]struct{})
search:
	for _, col := range cols {
		for _, g := range groups[col] {
			if len(g.rows) < 2 {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for i := 0; i < len(g.rows); i++ {
				for j := i + 1; j < len(g.rows); j++ {
					key := pairKey(g.rows[i], g.rows[j])
					if _, done := compared[key]; done {
						continue
					}
					if d.Params.MaxDuplicateRows > 0 && len(result.DuplicateRows) >= d.Params.MaxDuplicateRows {
						result.Truncated = true
						break search
					}
					compared[key] = struct{}{}

					row, err := d.compareRows(sheet, g.rows[i], g.rows[j], cols, memo)
					if err != nil {
						return nil, err
					}
					if row.MatrixSizeAdjustedEntropyScore > d.Params.MinSizeAdjustedRowEntropyScore &&
						row.TotalSharedCount >= d.Params.MinSharedColumns {
						result.DuplicateRows = append(result.DuplicateRows, *row)
					}
				}
			}
		}
	}

	sortDuplicateRows(result.DuplicateRows)

	d.logger().Debug("duplicate rows detected",
		zap.String("sheet", sheet.Name),
		zap.Int("unique_columns", len(cols)),
		zap.Int("compared_pairs", len(compared)),
		zap.Int("duplicates", len(result.DuplicateRows)),
		zap.Bool("truncated", result.Truncated))

	return result, nil
}

// uniqueColumns resolves the unique column names to sorted, distinct numeric
// column indices.
func (d *DuplicateRowDetector) uniqueColumns(sheet *models.Sheet, cat models.ColumnCategorization) []int {
	var resolver ColumnResolver = sheet
	if d.Resolver != nil {
		resolver = d.Resolver
	}

	seen := make(map[int]bool)
	var cols []int
	for _, name := range cat.Unique {
		for _, col := range resolver.ColumnIndices(name) {
			if seen[col] || !sheet.IsNumericColumn(col) {
				continue
			}
			seen[col] = true
			cols = append(cols, col)
		}
	}
	sort.Ints(cols)
	return cols
}

// indexColumns groups the rows of each column by value, keeping only values
// whose signature reaches MinIndexedSignature. Groups are ordered by their
// first row.
func (d *DuplicateRowDetector) indexColumns(sheet *models.Sheet, cols []int, memo *entropy.Memo) (map[int][]*valueGroup, error) {
	groups := make(map[int][]*valueGroup, len(cols))
	for _, col := range cols {
		byValue := make(map[float64]*valueGroup)
		for r := 1; r < sheet.NumRows; r++ {
			cell, ok := sheet.Cell(r, col)
			if !ok || !cell.Analyzable {
				continue
			}
			sig, err := memo.Signature(cell.Value)
			if err != nil {
				return nil, err
			}
			if sig < d.Params.MinIndexedSignature {
				continue
			}
			g, ok := byValue[cell.Value]
			if !ok {
				g = &valueGroup{value: cell.Value}
				byValue[cell.Value] = g
				groups[col] = append(groups[col], g)
			}
			g.rows = append(g.rows, r)
		}
	}
	return groups, nil
}

// compareRows compares two rows across every unique column. Only values
// that would be indexed count as shared, so years and round numbers never
// add to a pair.
func (d *DuplicateRowDetector) compareRows(sheet *models.Sheet, r1, r2 int, cols []int, memo *entropy.Memo) (*models.DuplicateRow, error) {
	var (
		sharedValues  []float64
		sharedColumns []int
	)
	for _, col := range cols {
		c1, ok1 := sheet.Cell(r1, col)
		c2, ok2 := sheet.Cell(r2, col)
		if !ok1 || !ok2 || !c1.Equal(c2) {
			continue
		}
		sig, err := memo.Signature(c1.Value)
		if err != nil {
			return nil, err
		}
		if sig < d.Params.MinIndexedSignature {
			continue
		}
		sharedValues = append(sharedValues, c1.Value)
		sharedColumns = append(sharedColumns, col)
	}
	return models.NewDuplicateRow([2]int{r1, r2}, sharedValues, sharedColumns, sheet, len(cols), memo)
}

// pairKey packs an unordered row pair into one integer.
func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

// sortDuplicateRows orders by entropy score, then shared count, then rows.
func sortDuplicateRows(rows []models.DuplicateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.RowEntropyScore != b.RowEntropyScore {
			return a.RowEntropyScore > b.RowEntropyScore
		}
		if a.TotalSharedCount != b.TotalSharedCount {
			return a.TotalSharedCount > b.TotalSharedCount
		}
		if a.Rows[0] != b.Rows[0] {
			return a.Rows[0] < b.Rows[0]
		}
		return a.Rows[1] < b.Rows[1]
	})
}

func (d *DuplicateRowDetector) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
