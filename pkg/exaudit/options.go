// Package exaudit audits spreadsheets for numbers that look fabricated or
// copied.
package exaudit

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/categorize"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/entropy"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/parser"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/strategies"
)

// Options configures an audit run.
type Options struct {
	// Logger receives debug and warning output. Nil discards it.
	Logger *zap.Logger
	// Categorizer assigns column roles per sheet. Nil uses the header and
	// value heuristic.
	Categorizer categorize.ColumnCategorizer
	// Strategies overrides the detection pipeline. Nil runs the default
	// pipeline built from the params below.
	Strategies []strategies.Strategy

	DuplicateRows     strategies.DuplicateRowParams
	Sequences         strategies.SequenceParams
	IndividualNumbers strategies.IndividualNumberParams
	Heuristic         categorize.HeuristicParams
	Load              parser.LoadOptions

	// Concurrency bounds the number of sheets audited at once.
	// Zero or less means GOMAXPROCS.
	Concurrency int
	// Memo shares signatures across runs. Nil creates one per run.
	Memo *entropy.Memo
	// Metrics is updated per strategy when set.
	Metrics *Metrics
}

// DefaultOptions returns default audit options.
func DefaultOptions() Options {
	return Options{
		DuplicateRows:     strategies.DefaultDuplicateRowParams(),
		Sequences:         strategies.DefaultSequenceParams(),
		IndividualNumbers: strategies.DefaultIndividualNumberParams(),
		Heuristic:         categorize.DefaultHeuristicParams(),
		Load:              parser.DefaultLoadOptions(),
	}
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Memo == nil {
		o.Memo = entropy.NewMemo()
	}
	if o.Categorizer == nil {
		o.Categorizer = categorize.NewHeuristic(o.Heuristic, o.Memo)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

// pipeline returns the strategies for one sheet. The default strategies are
// built fresh so that each sheet owns its detector state.
func (o Options) pipeline(logger *zap.Logger) []strategies.Strategy {
	if o.Strategies != nil {
		return o.Strategies
	}

	num := strategies.NewIndividualNumbers(o.IndividualNumbers)
	num.Logger = logger
	seq := strategies.NewRepeatedSequenceFinder(o.Sequences)
	seq.Logger = logger
	dup := strategies.NewDuplicateRowDetector(o.DuplicateRows)
	dup.Logger = logger

	return []strategies.Strategy{num, seq, dup}
}
