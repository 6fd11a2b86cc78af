package categorize

import (
	"context"
	"regexp"
	"strings"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

var reToken = regexp.MustCompile(`[a-z0-9]+`)

// identifierTokens mark headers of identifier columns.
var identifierTokens = map[string]bool{
	"id":         true,
	"identifier": true,
	"no":         true,
	"nr":         true,
	"number":     true,
	"serial":     true,
	"accession":  true,
	"code":       true,
	"ref":        true,
	"key":        true,
}

// HeuristicParams holds the thresholds of the heuristic categorizer.
type HeuristicParams struct {
	// MinMeanScore is the mean entropy score above which a numeric column
	// is treated as holding arbitrary, non-repeating values.
	MinMeanScore float64 `yaml:"min_mean_score" envconfig:"MIN_MEAN_SCORE" default:"3" validate:"gte=0"`
	// MinDistinctRatio is the share of distinct values a unique column needs.
	MinDistinctRatio float64 `yaml:"min_distinct_ratio" envconfig:"MIN_DISTINCT_RATIO" default:"0.5" validate:"gte=0,lte=1"`
	// MaxCategoricalRatio is the distinct share below which a column is
	// categorical.
	MaxCategoricalRatio float64 `yaml:"max_categorical_ratio" envconfig:"MAX_CATEGORICAL_RATIO" default:"0.2" validate:"gte=0,lte=1"`
}

// DefaultHeuristicParams returns default heuristic thresholds.
func DefaultHeuristicParams() HeuristicParams {
	return HeuristicParams{
		MinMeanScore:        3,
		MinDistinctRatio:    0.5,
		MaxCategoricalRatio: 0.2,
	}
}

// Heuristic categorizes columns from their header and value profile.
type Heuristic struct {
	Params HeuristicParams
	// Memo caches signatures; may be nil.
	Memo *entropy.Memo
}

// NewHeuristic returns a Heuristic categorizer.
func NewHeuristic(params HeuristicParams, memo *entropy.Memo) *Heuristic {
	return &Heuristic{Params: params, Memo: memo}
}

// columnProfile summarizes the numeric values under one logical header.
type columnProfile struct {
	numeric      int
	distinct     int
	meanScore    float64
	headerTokens []string
}

func (p columnProfile) distinctRatio() float64 {
	if p.numeric == 0 {
		return 0
	}
	return float64(p.distinct) / float64(p.numeric)
}

// Categorize implements ColumnCategorizer.
func (h *Heuristic) Categorize(ctx context.Context, sheet *models.Sheet) (models.ColumnCategorization, error) {
	var out models.ColumnCategorization
	seen := make(map[string]bool)

	for _, name := range sheet.Headers {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		if err := ctx.Err(); err != nil {
			return models.ColumnCategorization{}, err
		}

		p, err := h.profile(sheet, name)
		if err != nil {
			return models.ColumnCategorization{}, err
		}

		switch {
		case p.numeric == 0:
			out.Other = append(out.Other, name)
		case hasIdentifierToken(p.headerTokens) && p.distinctRatio() >= h.Params.MinDistinctRatio:
			out.Unique = append(out.Unique, name)
		case p.meanScore >= h.Params.MinMeanScore && p.distinctRatio() >= h.Params.MinDistinctRatio:
			out.Unique = append(out.Unique, name)
		case p.distinctRatio() <= h.Params.MaxCategoricalRatio:
			out.Categorical = append(out.Categorical, name)
		default:
			out.Measurement = append(out.Measurement, name)
		}
	}

	return out, nil
}

func (h *Heuristic) profile(sheet *models.Sheet, name string) (columnProfile, error) {
	p := columnProfile{headerTokens: headerTokens(name)}
	distinct := make(map[float64]struct{})
	total := 0.0

	for _, col := range sheet.ColumnIndices(name) {
		if !sheet.IsNumericColumn(col) {
			continue
		}
		for r := 1; r < sheet.NumRows; r++ {
			cell, ok := sheet.Cell(r, col)
			if !ok || !cell.Analyzable {
				continue
			}
			score, err := h.Memo.Score(cell.Value)
			if err != nil {
				return columnProfile{}, err
			}
			total += score
			p.numeric++
			distinct[cell.Value] = struct{}{}
		}
	}

	p.distinct = len(distinct)
	if p.numeric > 0 {
		p.meanScore = total / float64(p.numeric)
	}
	return p, nil
}

func headerTokens(name string) []string {
	return reToken.FindAllString(strings.ToLower(name), -1)
}

func hasIdentifierToken(tokens []string) bool {
	for _, t := range tokens {
		if identifierTokens[t] {
			return true
		}
	}
	return false
}
