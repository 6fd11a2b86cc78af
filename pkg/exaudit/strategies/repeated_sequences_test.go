package strategies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
)

var block = []float64{4821.37, 9023.18, 3318.64, 7745.29, 6521.83}

func filler(base float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + float64(i)*0.01
	}
	return out
}

// pastedBlockSheet has a counter column written twice (A), and an irregular
// block at B2:B6 pasted again at C8:C12.
func pastedBlockSheet() *models.Sheet {
	colB := append(append([]float64{}, block...), filler(300.01, 7)...)
	colC := append(append(filler(500.01, 6), block...), 777.77)

	rows := make([][]any, 12)
	for i := range rows {
		rows[i] = []any{i%6 + 1, colB[i], colC[i]}
	}
	return buildSheet("Pasted", []string{"n", "before", "after"}, rows)
}

func TestRepeatedSequenceFinder(t *testing.T) {
	ctx := context.Background()

	t.Run("finds a pasted block and ignores the counter", func(t *testing.T) {
		f := NewRepeatedSequenceFinder(DefaultSequenceParams())

		res, err := f.Detect(ctx, pastedBlockSheet(), entropy.NewMemo())
		require.NoError(t, err)
		require.Len(t, res.Sequences, 1)

		seq := res.Sequences[0]
		assert.Equal(t, block, seq.Values)
		assert.Equal(t, "B2", seq.Positions[0].CellID)
		assert.Equal(t, "C8", seq.Positions[1].CellID)
		assert.Equal(t, 1, seq.Positions[0].Column)
		assert.Equal(t, 7, seq.Positions[1].StartRow)
		assert.Equal(t, models.SuspicionMedium, seq.SuspicionLevel())
		assert.False(t, res.Truncated)
	})

	t.Run("overlapping runs in one column are cut", func(t *testing.T) {
		rows := make([][]any, 15)
		for i := range rows {
			rows[i] = []any{block[i%len(block)]}
		}
		sheet := buildSheet("Repeated", []string{"x"}, rows)
		f := NewRepeatedSequenceFinder(DefaultSequenceParams())

		res, err := f.Detect(ctx, sheet, nil)
		require.NoError(t, err)
		require.Len(t, res.Sequences, 2)
		for _, seq := range res.Sequences {
			assert.Equal(t, len(block), seq.Len())
			assert.Equal(t, "A2", seq.Positions[0].CellID)
		}
	})

	t.Run("short runs are skipped", func(t *testing.T) {
		sheet := buildSheet("Short", []string{"a", "b"}, [][]any{
			{4821.37, 1.11},
			{9023.18, 4821.37},
			{2.22, 9023.18},
		})
		f := NewRepeatedSequenceFinder(DefaultSequenceParams())

		res, err := f.Detect(ctx, sheet, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Sequences)
	})

	t.Run("zeros never seed a run", func(t *testing.T) {
		rows := make([][]any, 8)
		for i := range rows {
			rows[i] = []any{0, 0}
		}
		sheet := buildSheet("Zeros", []string{"a", "b"}, rows)
		f := NewRepeatedSequenceFinder(DefaultSequenceParams())

		res, err := f.Detect(ctx, sheet, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Sequences)
	})

	t.Run("cap truncates", func(t *testing.T) {
		rows := make([][]any, 15)
		for i := range rows {
			rows[i] = []any{block[i%len(block)]}
		}
		params := DefaultSequenceParams()
		params.MaxSequences = 1
		f := NewRepeatedSequenceFinder(params)

		res, err := f.Detect(ctx, buildSheet("Repeated", []string{"x"}, rows), nil)
		require.NoError(t, err)
		assert.Len(t, res.Sequences, 1)
		assert.True(t, res.Truncated)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		f := NewRepeatedSequenceFinder(DefaultSequenceParams())

		_, err := f.Detect(cctx, pastedBlockSheet(), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
