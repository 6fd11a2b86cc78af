package strategies

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

// MinSizeAdjustedValueScore is the adjusted score a repeated value must
// exceed to be reported.
const MinSizeAdjustedValueScore = 4.0

// IndividualNumberParams holds the repeated value thresholds.
type IndividualNumberParams struct {
	MinSignature              entropy.Signature `yaml:"min_signature" envconfig:"MIN_SIGNATURE" default:"200"`
	MinSizeAdjustedValueScore float64           `yaml:"min_size_adjusted_value_score" envconfig:"MIN_SIZE_ADJUSTED_VALUE_SCORE" default:"4" validate:"gte=0"`
}

// DefaultIndividualNumberParams returns the default thresholds.
func DefaultIndividualNumberParams() IndividualNumberParams {
	return IndividualNumberParams{
		MinSignature:              MinIndexedSignature,
		MinSizeAdjustedValueScore: MinSizeAdjustedValueScore,
	}
}

// IndividualNumbers reports single high-entropy values that occur in more
// than one cell of a numeric column.
type IndividualNumbers struct {
	Params IndividualNumberParams
	Logger *zap.Logger
}

// NewIndividualNumbers returns the strategy with the given thresholds.
func NewIndividualNumbers(params IndividualNumberParams) *IndividualNumbers {
	return &IndividualNumbers{Params: params, Logger: zap.NewNop()}
}

// Name implements Strategy.
func (s *IndividualNumbers) Name() models.StrategyName {
	return models.StrategyIndividualNumbers
}

// Execute implements Strategy.
func (s *IndividualNumbers) Execute(ctx context.Context, sheet *models.Sheet, deps Dependencies) (models.Result, error) {
	res, err := s.Detect(ctx, sheet, deps.Memo)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Detect collects repeated values of sheet. memo may be nil.
//
// A value occurring n times scores Score*(n-1)/LogNumberCountModifier, so a
// single occurrence never counts.
func (s *IndividualNumbers) Detect(ctx context.Context, sheet *models.Sheet, memo *entropy.Memo) (*models.IndividualNumbersResult, error) {
	start := time.Now()
	result := &models.IndividualNumbersResult{
		StrategyResult:  models.StrategyResult{Name: models.StrategyIndividualNumbers},
		DuplicateValues: []models.DuplicateValue{},
	}
	defer func() { result.ExecutionTime = time.Since(start) }()

	type occurrence struct {
		value float64
		sig   entropy.Signature
		refs  []string
	}
	byValue := make(map[float64]*occurrence)
	var order []*occurrence

	for r := 1; r < sheet.NumRows; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, cell := range sheet.Row(r) {
			if !cell.Analyzable || !sheet.IsNumericColumn(cell.Col) {
				continue
			}
			if o, ok := byValue[cell.Value]; ok {
				o.refs = append(o.refs, cell.Ref)
				continue
			}
			sig, err := memo.Signature(cell.Value)
			if err != nil {
				return nil, err
			}
			if sig < s.Params.MinSignature {
				continue
			}
			o := &occurrence{value: cell.Value, sig: sig, refs: []string{cell.Ref}}
			byValue[cell.Value] = o
			order = append(order, o)
		}
	}

	for _, o := range order {
		if len(o.refs) < 2 {
			continue
		}
		score := entropy.Score(o.sig)
		adjusted := score * float64(len(o.refs)-1) / sheet.LogNumberCountModifier
		if adjusted <= s.Params.MinSizeAdjustedValueScore {
			continue
		}
		result.DuplicateValues = append(result.DuplicateValues, models.DuplicateValue{
			Value:                          o.value,
			Signature:                      o.sig,
			EntropyScore:                   score,
			MatrixSizeAdjustedEntropyScore: adjusted,
			CellIDs:                        o.refs,
			SheetName:                      sheet.Name,
		})
	}

	sort.SliceStable(result.DuplicateValues, func(i, j int) bool {
		return result.DuplicateValues[i].MatrixSizeAdjustedEntropyScore > result.DuplicateValues[j].MatrixSizeAdjustedEntropyScore
	})

	s.logger().Debug("repeated values detected",
		zap.String("sheet", sheet.Name),
		zap.Int("distinct_values", len(order)),
		zap.Int("duplicates", len(result.DuplicateValues)))

	return result, nil
}

func (s *IndividualNumbers) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
