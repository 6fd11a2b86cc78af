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
	// MinSequenceLength is the shortest run reported as a sequence.
	MinSequenceLength = 3
	// MaxValueOccurrences excludes values too common to seed a run.
	MaxValueOccurrences = 50
	// MaxSequences caps the number of reported sequences.
	MaxSequences = 1000
)

// SequenceParams holds the repeated sequence thresholds.
type SequenceParams struct {
	MinSequenceLength   int `yaml:"min_sequence_length" envconfig:"MIN_SEQUENCE_LENGTH" default:"3" validate:"gte=2"`
	MaxValueOccurrences int `yaml:"max_value_occurrences" envconfig:"MAX_VALUE_OCCURRENCES" default:"50" validate:"gte=2"`
	// MaxSequences stops the search once reached; 0 disables the cap.
	MaxSequences int `yaml:"max_sequences" envconfig:"MAX_SEQUENCES" default:"1000" validate:"gte=0"`
}

// DefaultSequenceParams returns the default thresholds.
func DefaultSequenceParams() SequenceParams {
	return SequenceParams{
		MinSequenceLength:   MinSequenceLength,
		MaxValueOccurrences: MaxValueOccurrences,
		MaxSequences:        MaxSequences,
	}
}

// RepeatedSequenceFinder looks for runs of values that appear twice in the
// numeric columns of a sheet, as left behind by copy and paste.
type RepeatedSequenceFinder struct {
	Params SequenceParams
	Logger *zap.Logger
}

// NewRepeatedSequenceFinder returns a finder with the given thresholds.
func NewRepeatedSequenceFinder(params SequenceParams) *RepeatedSequenceFinder {
	return &RepeatedSequenceFinder{Params: params, Logger: zap.NewNop()}
}

// Name implements Strategy.
func (f *RepeatedSequenceFinder) Name() models.StrategyName {
	return models.StrategyRepeatedColumnSequences
}

// Execute implements Strategy.
func (f *RepeatedSequenceFinder) Execute(ctx context.Context, sheet *models.Sheet, deps Dependencies) (models.Result, error) {
	res, err := f.Detect(ctx, sheet, deps.Memo)
	if err != nil {
		return nil, err
	}
	return res, nil
}

type cellPos struct {
	row, col int
}

// Detect finds repeated runs in sheet. memo may be nil.
func (f *RepeatedSequenceFinder) Detect(ctx context.Context, sheet *models.Sheet, memo *entropy.Memo) (*models.RepeatedColumnSequencesResult, error) {
	start := time.Now()
	result := &models.RepeatedColumnSequencesResult{
		StrategyResult: models.StrategyResult{Name: models.StrategyRepeatedColumnSequences},
		Sequences:      []models.RepeatedColumnSequence{},
	}
	defer func() { result.ExecutionTime = time.Since(start) }()

	// Column-major, so that for two positions in one column the earlier
	// one comes first.
	byValue := make(map[float64][]cellPos)
	var order []float64
	for _, col := range sheet.NumericColumnIndices {
		for r := 1; r < sheet.NumRows; r++ {
			cell, ok := sheet.Cell(r, col)
			if !ok || !cell.Analyzable {
				continue
			}
			if _, seen := byValue[cell.Value]; !seen {
				order = append(order, cell.Value)
			}
			byValue[cell.Value] = append(byValue[cell.Value], cellPos{row: r, col: col})
		}
	}

	candidates := 0
search:
	for _, v := range order {
		positions := byValue[v]
		if len(positions) < 2 || len(positions) > f.Params.MaxValueOccurrences {
			continue
		}
		sig, err := memo.Signature(v)
		if err != nil {
			return nil, err
		}
		if sig == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for i := 0; i < len(positions); i++ {
			for j := i + 1; j < len(positions); j++ {
				a, b := positions[i], positions[j]
				if !runStart(sheet, a, b) {
					continue
				}
				values := f.extend(sheet, a, b)
				if len(values) < f.Params.MinSequenceLength {
					continue
				}
				candidates++

				seq, err := models.NewRepeatedColumnSequence([2]models.Position{
					{Column: a.col, StartRow: a.row, CellID: models.CellRef(a.row, a.col)},
					{Column: b.col, StartRow: b.row, CellID: models.CellRef(b.row, b.col)},
				}, values, sheet, memo)
				if err != nil {
					return nil, err
				}
				if seq.SuspicionLevel() == models.SuspicionNone {
					continue
				}
				if f.Params.MaxSequences > 0 && len(result.Sequences) >= f.Params.MaxSequences {
					result.Truncated = true
					break search
				}
				result.Sequences = append(result.Sequences, *seq)
			}
		}
	}

	sort.SliceStable(result.Sequences, func(i, j int) bool {
		return result.Sequences[i].MatrixSizeAdjustedEntropyScore > result.Sequences[j].MatrixSizeAdjustedEntropyScore
	})

	f.logger().Debug("repeated sequences detected",
		zap.String("sheet", sheet.Name),
		zap.Int("candidates", candidates),
		zap.Int("sequences", len(result.Sequences)),
		zap.Bool("truncated", result.Truncated))

	return result, nil
}

// runStart reports whether a and b begin a run, i.e. the cells directly
// above them do not hold the same value.
func runStart(sheet *models.Sheet, a, b cellPos) bool {
	if a.row == 1 || b.row == 1 {
		return true
	}
	return !sameValue(sheet, cellPos{a.row - 1, a.col}, cellPos{b.row - 1, b.col})
}

// extend walks down from a and b while both cells match. Within one column
// the run stops at the offset between the two starts.
func (f *RepeatedSequenceFinder) extend(sheet *models.Sheet, a, b cellPos) []float64 {
	limit := sheet.NumRows
	if a.col == b.col {
		limit = b.row - a.row
	}
	var values []float64
	for k := 0; k < limit; k++ {
		pa, pb := cellPos{a.row + k, a.col}, cellPos{b.row + k, b.col}
		if !sameValue(sheet, pa, pb) {
			break
		}
		cell, _ := sheet.Cell(pa.row, pa.col)
		values = append(values, cell.Value)
	}
	return values
}

func sameValue(sheet *models.Sheet, a, b cellPos) bool {
	ca, ok := sheet.Cell(a.row, a.col)
	if !ok || !ca.Analyzable {
		return false
	}
	cb, ok := sheet.Cell(b.row, b.col)
	if !ok || !cb.Analyzable {
		return false
	}
	return ca.Equal(cb)
}

func (f *RepeatedSequenceFinder) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}
