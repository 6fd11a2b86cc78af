package categorize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/parser"
)

func testSheet(name string) *models.Sheet {
	return parser.BuildSheet(name, [][]string{
		{"Sample ID", "Mass", "Group", "Count", "Comment"},
		{"11", "48172.391", "1", "10", "ok"},
		{"12", "90211.47", "1", "20", "ok"},
		{"13", "31884.09", "1", "30", ""},
		{"14", "774.213", "1", "40", "redo"},
		{"15", "652.1178", "1", "10", ""},
		{"16", "5523.97", "1", "20", ""},
	}, 0, nil, parser.DefaultNumericColumnParams())
}

func TestHeuristic(t *testing.T) {
	h := NewHeuristic(DefaultHeuristicParams(), entropy.NewMemo())
	got, err := h.Categorize(context.Background(), testSheet("S"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Sample ID", "Mass"}, got.Unique)
	assert.Equal(t, []string{"Group"}, got.Categorical)
	assert.Equal(t, []string{"Count"}, got.Measurement)
	assert.Equal(t, []string{"Comment"}, got.Other)
}

func TestHeuristicCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHeuristic(DefaultHeuristicParams(), nil).Categorize(ctx, testSheet("S"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic(t *testing.T) {
	s := NewStatic(map[string]models.ColumnCategorization{
		"Data":   {Unique: []string{"Mass"}},
		AnySheet: {Unique: []string{"ID"}},
	})

	got, err := s.Categorize(context.Background(), testSheet("Data"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mass"}, got.Unique)

	got, err = s.Categorize(context.Background(), testSheet("Other"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ID"}, got.Unique)

	empty, err := NewStatic(nil).Categorize(context.Background(), testSheet("Other"))
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestLoadStatic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := `sheets:
  Data:
    unique: [Sample ID, Mass]
    categorical: [Group]
  "*":
    unique: [ID]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadStatic(path)
	require.NoError(t, err)

	got, err := s.Categorize(context.Background(), testSheet("Data"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sample ID", "Mass"}, got.Unique)
	assert.Equal(t, []string{"Group"}, got.Categorical)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sheets:\n  Data:\n    uniq: [x]\n"), 0o644))
	_, err = LoadStatic(bad)
	assert.Error(t, err)

	_, err = LoadStatic(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestChain(t *testing.T) {
	empty := Func(func(context.Context, *models.Sheet) (models.ColumnCategorization, error) {
		return models.ColumnCategorization{}, nil
	})
	fixed := Func(func(context.Context, *models.Sheet) (models.ColumnCategorization, error) {
		return models.ColumnCategorization{Unique: []string{"Mass"}}, nil
	})
	failing := Func(func(context.Context, *models.Sheet) (models.ColumnCategorization, error) {
		return models.ColumnCategorization{}, errors.New("boom")
	})

	got, err := Chain{empty, fixed, failing}.Categorize(context.Background(), testSheet("S"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mass"}, got.Unique)

	_, err = Chain{empty, failing}.Categorize(context.Background(), testSheet("S"))
	assert.EqualError(t, err, "boom")

	got, err = Chain{empty}.Categorize(context.Background(), testSheet("S"))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}
