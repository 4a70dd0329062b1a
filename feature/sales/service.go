package sales

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"card-tracker/core/batch"
	"card-tracker/core/checkpoint"
	"card-tracker/core/sheets"

	"go.uber.org/zap"
)

// Health is the outcome of the sales sheet check.
type Health string

const (
	// HealthOK means the sheet was usable as is.
	HealthOK Health = "ok"
	// HealthRepaired means the header row or width was rewritten.
	HealthRepaired Health = "repaired"
	// HealthRecreated means the sheet was missing or unreadable and was
	// created from scratch.
	HealthRecreated Health = "recreated"
)

// Report summarizes one invocation.
type Report struct {
	Health Health
	Result *batch.Result[State]
}

// Service runs the sales history pass.
type Service struct {
	job    *Job
	store  *checkpoint.Store
	opts   batch.Options
	logger *zap.Logger
}

// NewService creates a new sales history service.
func NewService(job *Job, store *checkpoint.Store, opts batch.Options, logger *zap.Logger) *Service {
	if opts.Operation == "" {
		opts.Operation = Operation
	}
	return &Service{job: job, store: store, opts: opts, logger: logger}
}

// Run checks the sales sheet, then merges sales until done or until budget
// runs out. A recreated sheet discards any checkpoint.
func (s *Service) Run(ctx context.Context, budget *batch.Budget) (*Report, error) {
	health, err := s.EnsureSheet(ctx)
	if err != nil {
		return nil, err
	}
	if health == HealthRecreated {
		if err := s.store.Clear(ctx); err != nil {
			return nil, err
		}
	}

	res, err := batch.NewRunner[Pair, State](s.job, s.store, s.opts, s.logger).Run(ctx, budget)
	if err != nil {
		return nil, err
	}
	return &Report{Health: health, Result: res}, nil
}

// EnsureSheet makes the sales sheet match the expected header row.
// A missing sheet, or one whose headers are blank or repeated, is
// recreated. A sheet with other headers is resized and its header row
// rewritten in place.
func (s *Service) EnsureSheet(ctx context.Context) (Health, error) {
	book := s.job.book
	headers := Headers(s.job.engine.Options().MaxEvents)

	// 1. Missing
	sheet, err := book.Worksheet(ctx, SheetTitle)
	if errors.Is(err, sheets.ErrWorksheetNotFound) {
		s.logger.Info("Sales sheet missing, creating it")
		return HealthRecreated, s.recreate(ctx, headers, false)
	}
	if err != nil {
		return "", err
	}

	// 2. Unreadable
	if _, err := sheet.Records(ctx); err != nil {
		if !errors.Is(err, sheets.ErrDuplicateHeaders) {
			return "", err
		}
		s.logger.Warn("Sales sheet has unusable headers, recreating it", zap.Error(err))
		return HealthRecreated, s.recreate(ctx, headers, true)
	}

	// 3. Different layout
	current, err := sheet.Headers(ctx)
	if err != nil {
		return "", err
	}
	if slices.Equal(current, headers) && sheet.ColCount() == len(headers) {
		return HealthOK, nil
	}

	s.logger.Warn("Sales sheet layout differs, rewriting headers",
		zap.Int("columns", sheet.ColCount()),
		zap.Int("expected", len(headers)),
	)
	if sheet.ColCount() != len(headers) {
		if err := sheet.Resize(ctx, len(headers)); err != nil {
			return "", err
		}
	}
	if err := sheet.SetHeaders(ctx, headers); err != nil {
		return "", err
	}
	return HealthRepaired, nil
}

func (s *Service) recreate(ctx context.Context, headers []string, exists bool) error {
	book := s.job.book
	if exists {
		if err := book.DeleteWorksheet(ctx, SheetTitle); err != nil {
			return fmt.Errorf("failed to delete sales sheet: %w", err)
		}
	}
	sheet, err := book.AddWorksheet(ctx, SheetTitle, len(headers))
	if err != nil {
		return err
	}
	return sheet.SetHeaders(ctx, headers)
}

// Message renders the completion notification.
func Message(rep *Report, elapsed time.Duration) string {
	note := "history updated"
	if rep.Health == HealthRecreated {
		note = "sheet recreated"
	}
	st := rep.Result.State
	return fmt.Sprintf("✅ <b>Sales History Updated</b> (%s)\n\n⏱️ Time: %.2fs\n📊 %d pairs processed\n🔧 Prices corrected: %d\n❔ Unverified: %d",
		note, elapsed.Seconds(), rep.Result.Total, st.Corrections, st.Unverified)
}
