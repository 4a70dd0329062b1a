package gallery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"card-tracker/core/sheets"
	"card-tracker/core/sorare"
	"card-tracker/feature/cards"

	"go.uber.org/zap"
)

// Source lists the cards of the configured user.
type Source interface {
	AllUserCards(ctx context.Context, pause time.Duration) ([]sorare.Card, error)
}

// Service aligns the main sheet with the user's gallery.
type Service struct {
	book   *sheets.Book
	source Source
	opts   Options
	logger *zap.Logger
}

// NewService creates a new gallery sync service.
func NewService(book *sheets.Book, source Source, opts Options, logger *zap.Logger) *Service {
	return &Service{book: book, source: source, opts: opts, logger: logger}
}

// Run plans the sync and applies it unless DryRun is set.
func (s *Service) Run(ctx context.Context) (*Plan, error) {
	plan, err := s.BuildPlan(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(ctx, plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// BuildPlan compares the gallery with the main sheet.
// It creates the sheet when missing but does not change any card row.
func (s *Service) BuildPlan(ctx context.Context) (*Plan, error) {
	// 1. Open the main sheet
	sheet, err := s.openSheet(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Fetch the whole gallery; a partial list must never drive deletions
	owned, err := s.source.AllUserCards(ctx, s.opts.PagePause)
	if err != nil {
		return nil, err
	}

	ownedBySlug := make(map[string]*sorare.Card, len(owned))
	var order []string
	for i := range owned {
		slug := owned[i].Slug
		if slug == "" {
			continue
		}
		if _, ok := ownedBySlug[slug]; !ok {
			order = append(order, slug)
		}
		ownedBySlug[slug] = &owned[i]
	}
	s.logger.Info("Gallery fetched", zap.Int("cards", len(ownedBySlug)))

	// 3. Index the sheet
	records, err := sheet.Records(ctx)
	if err != nil {
		return nil, err
	}
	rowsBySlug := make(map[string][]int)
	sheetRows := 0
	for _, rec := range records {
		slug := strings.TrimSpace(rec.Get(cards.ColSlug))
		if slug == "" {
			continue
		}
		rowsBySlug[slug] = append(rowsBySlug[slug], rec.Index)
		sheetRows++
	}

	// 4. Plan deletions, highest row first so earlier indices stay valid
	plan := &Plan{sheet: sheet}
	var deletes []Action
	for slug, rows := range rowsBySlug {
		if _, ok := ownedBySlug[slug]; !ok {
			for _, idx := range rows {
				deletes = append(deletes, Action{Type: ActionDeleteRow, Key: slug, RowIndex: idx, Reason: "no longer in gallery"})
			}
			continue
		}
		for _, idx := range rows[1:] {
			deletes = append(deletes, Action{Type: ActionDeleteRow, Key: slug, RowIndex: idx, Reason: "duplicate row"})
		}
	}
	sort.Slice(deletes, func(i, j int) bool {
		return deletes[i].RowIndex > deletes[j].RowIndex
	})
	plan.Actions = append(plan.Actions, deletes...)

	// 5. Plan appends in gallery order
	for _, slug := range order {
		if _, ok := rowsBySlug[slug]; ok {
			continue
		}
		plan.Actions = append(plan.Actions, Action{Type: ActionAppendRow, Key: slug, Reason: "new in gallery", Card: ownedBySlug[slug]})
	}

	plan.Summary = Summary{
		GalleryCards: len(ownedBySlug),
		SheetRows:    sheetRows,
		ToDelete:     len(deletes),
		ToAdd:        len(plan.Actions) - len(deletes),
	}
	return plan, nil
}

// Apply executes the actions of plan. A failed deletion is logged and left
// in place; a failed append aborts.
func (s *Service) Apply(ctx context.Context, plan *Plan) error {
	if s.opts.DryRun || plan.sheet == nil {
		return nil
	}

	var rows [][]string
	first := true
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteRow:
			if !first {
				if err := sleep(ctx, s.opts.DeletePause); err != nil {
					return err
				}
			}
			first = false
			if err := plan.sheet.DeleteRow(ctx, action.RowIndex); err != nil {
				plan.Summary.FailedDeletes++
				s.logger.Error("Failed to delete row",
					zap.String("key", action.Key),
					zap.Int("row", action.RowIndex),
					zap.Error(err),
				)
				continue
			}
			plan.Summary.Deleted++
		case ActionAppendRow:
			rows = append(rows, cards.NewRow(*action.Card).Values())
		}
	}

	if len(rows) > 0 {
		if _, err := plan.sheet.AppendRows(ctx, rows); err != nil {
			return fmt.Errorf("failed to append new cards: %w", err)
		}
		plan.Summary.Added = len(rows)
	}

	s.logger.Info("Gallery synced",
		zap.Int("added", plan.Summary.Added),
		zap.Int("deleted", plan.Summary.Deleted),
		zap.Int("failed_deletes", plan.Summary.FailedDeletes),
	)
	return nil
}

func (s *Service) openSheet(ctx context.Context) (*sheets.Sheet, error) {
	sheet, created, err := s.book.OpenOrCreate(ctx, cards.SheetTitle, cards.Headers)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("Main sheet created", zap.String("sheet", cards.SheetTitle))
		return sheet, nil
	}

	headers, err := sheet.Headers(ctx)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		if err := sheet.SetHeaders(ctx, cards.Headers); err != nil {
			return nil, err
		}
	}
	return sheet, nil
}

// Message renders the completion notification.
func Message(plan *Plan) string {
	return fmt.Sprintf("✅ <b>Gallery Sync Completed</b>\n\nGallery: %d cards\n➕ Added: %d\n➖ Removed: %d",
		plan.Summary.GalleryCards, plan.Summary.Added, plan.Summary.Deleted)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
