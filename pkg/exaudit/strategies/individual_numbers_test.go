package strategies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

func TestIndividualNumbers(t *testing.T) {
	sheet := buildSheet("Values", []string{"a", "b"}, [][]any{
		{4821.37, 2019},
		{2019, 4821.37},
		{4821.37, 12},
		{12, 9023.18},
		{9023.18, 2019},
	})
	s := NewIndividualNumbers(DefaultIndividualNumberParams())

	res, err := s.Detect(context.Background(), sheet, entropy.NewMemo())
	require.NoError(t, err)
	require.Len(t, res.DuplicateValues, 2)

	first := res.DuplicateValues[0]
	assert.Equal(t, 4821.37, first.Value)
	assert.Equal(t, entropy.Signature(482137), first.Signature)
	assert.Equal(t, []string{"A2", "B3", "A4"}, first.CellIDs)
	assert.Equal(t, 3, first.Occurrences())
	assert.InDelta(t, first.EntropyScore*2/sheet.LogNumberCountModifier, first.MatrixSizeAdjustedEntropyScore, 1e-12)

	second := res.DuplicateValues[1]
	assert.Equal(t, 9023.18, second.Value)
	assert.Equal(t, []string{"B5", "A6"}, second.CellIDs)
	assert.Greater(t, first.MatrixSizeAdjustedEntropyScore, second.MatrixSizeAdjustedEntropyScore)
}

func TestIndividualNumbersThreshold(t *testing.T) {
	sheet := buildSheet("Values", []string{"a"}, [][]any{{9023.18}, {9023.18}})
	params := DefaultIndividualNumberParams()
	params.MinSizeAdjustedValueScore = 100
	s := NewIndividualNumbers(params)

	res, err := s.Detect(context.Background(), sheet, nil)
	require.NoError(t, err)
	assert.Empty(t, res.DuplicateValues)
}

func TestDefaultPipeline(t *testing.T) {
	pipeline := Default(DefaultDuplicateRowParams(), DefaultSequenceParams(), DefaultIndividualNumberParams())

	var names []models.StrategyName
	for _, s := range pipeline {
		names = append(names, s.Name())
	}
	assert.Equal(t, []models.StrategyName{
		models.StrategyIndividualNumbers,
		models.StrategyRepeatedColumnSequences,
		models.StrategyDuplicateRows,
	}, names)
}
