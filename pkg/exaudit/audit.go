package exaudit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/exaudit-go/pkg/exaudit/models"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/parser"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/strategies"
)

// AuditFile loads an xlsx file and audits every sheet that loads. Sheets
// that fail to load are skipped with a warning.
func AuditFile(ctx context.Context, path string, opts Options) (*models.Report, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	wb, loadErrs, err := parser.LoadWorkbook(path, opts.Load)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	for _, e := range loadErrs {
		logger.Warn("skipping sheet", zap.Error(e))
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", wb.BookName, ErrNoSheets)
	}

	report, err := Audit(ctx, wb.Sheets, opts)
	if err != nil {
		return nil, err
	}
	report.BookName = wb.BookName
	return report, nil
}

// Audit runs the detection pipeline on every sheet. Sheets are audited
// concurrently; the report keeps their input order.
func Audit(ctx context.Context, sheets []*models.Sheet, opts Options) (*models.Report, error) {
	for i, sheet := range sheets {
		if sheet == nil {
			return nil, fmt.Errorf("sheet %d: %w", i, models.ErrNilSheet)
		}
	}
	opts = opts.withDefaults()
	start := time.Now()

	report := &models.Report{
		RunID:     uuid.NewString(),
		StartedAt: start,
		Sheets:    make([]models.SheetReport, len(sheets)),
	}
	logger := opts.Logger.With(zap.String("run_id", report.RunID))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, sheet := range sheets {
		if gctx.Err() != nil {
			break
		}
		i, sheet := i, sheet
		g.Go(func() error {
			sr, err := auditSheet(gctx, sheet, opts, logger.With(zap.String("sheet", sheet.Name)))
			opts.Metrics.observeSheet(err)
			if err != nil {
				return err
			}
			report.Sheets[i] = *sr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)
	logger.Debug("audit finished",
		zap.Int("sheets", len(sheets)),
		zap.Duration("elapsed", report.Elapsed),
		zap.Int("memo_size", opts.Memo.Len()))
	return report, nil
}

func auditSheet(ctx context.Context, sheet *models.Sheet, opts Options, logger *zap.Logger) (*models.SheetReport, error) {
	cat, err := opts.Categorizer.Categorize(ctx, sheet)
	if err != nil {
		return nil, NewDetectionError(sheet.Name, StageCategorize, err)
	}

	sr := &models.SheetReport{
		SheetName:       sheet.Name,
		NumRows:         sheet.NumRows,
		NumNumericCells: sheet.NumNumericCells,
		Categorization:  cat,
		Results:         []models.Result{},
	}
	deps := strategies.Dependencies{Categorization: cat, Memo: opts.Memo}

	for _, s := range opts.pipeline(logger) {
		res, err := s.Execute(ctx, sheet, deps)
		if err != nil {
			return nil, NewDetectionError(sheet.Name, string(s.Name()), err)
		}
		opts.Metrics.observeResult(res)
		logger.Debug("strategy finished",
			zap.String("strategy", string(s.Name())),
			zap.Int("findings", res.Findings()),
			zap.Duration("elapsed", res.Base().ExecutionTime))

		sr.Results = append(sr.Results, res)
		deps.PreviousResults = sr.Results
	}
	return sr, nil
}
