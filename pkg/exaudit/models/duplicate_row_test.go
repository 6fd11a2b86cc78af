package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
)

func TestNewDuplicateRow(t *testing.T) {
	sheet := buildSheet("S", []string{"a", "b"}, [][]any{{1, 2}, {3, 4}}, []int{0, 1})
	values := []float64{48172.391, 90211.47}

	row, err := NewDuplicateRow([2]int{7, 3}, values, []int{0, 2}, sheet, 4, entropy.NewMemo())
	require.NoError(t, err)

	score, err := entropy.SequenceScore(values)
	require.NoError(t, err)

	assert.Equal(t, [2]int{3, 7}, row.Rows)
	assert.Equal(t, 2, row.TotalSharedCount)
	assert.Equal(t, []int{0, 2}, row.SharedColumns)
	assert.InDelta(t, score, row.RowEntropyScore, 1e-12)
	assert.InDelta(t, score/sheet.LogNumberCountModifier, row.MatrixSizeAdjustedEntropyScore, 1e-12)
	assert.Equal(t, 4, row.ComparedColumnCount)
	assert.Equal(t, 4, row.NumberCount)
}

func TestNewDuplicateRowErrors(t *testing.T) {
	sheet := buildSheet("S", []string{"a"}, [][]any{{1}}, []int{0})

	_, err := NewDuplicateRow([2]int{2, 2}, []float64{1}, []int{0}, sheet, 1, nil)
	assert.ErrorIs(t, err, ErrSameRow)

	_, err = NewDuplicateRow([2]int{1, 2}, []float64{1, 2}, []int{0}, sheet, 1, nil)
	assert.ErrorIs(t, err, ErrMisalignedShared)

	_, err = NewDuplicateRow([2]int{1, 2}, nil, nil, sheet, 1, nil)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = NewDuplicateRow([2]int{1, 2}, []float64{1}, []int{0}, nil, 1, nil)
	assert.ErrorIs(t, err, ErrNilSheet)
}
