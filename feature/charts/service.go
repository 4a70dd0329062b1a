package charts

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"card-tracker/core/sheets"
	"card-tracker/core/sink"
	"card-tracker/feature/cards"

	"go.uber.org/zap"
)

// Operation is the name of the chart pass.
const Operation = "render-charts"

// SheetTitle is the worksheet holding one chart per player.
const SheetTitle = "SO5 Charts"

// Headers is the header row of the chart sheet.
var Headers = []string{"Player", "Chart URL"}

// Service rewrites the chart sheet from the main sheet.
type Service struct {
	book   *sheets.Book
	logger *zap.Logger
}

// NewService creates a new chart service.
func NewService(book *sheets.Book, logger *zap.Logger) *Service {
	return &Service{book: book, logger: logger}
}

// Run clears the chart sheet and writes one chart per main sheet row that
// has recent scores. It returns the number of charts written.
func (s *Service) Run(ctx context.Context) (int, error) {
	// 1. Read players
	main, err := s.book.Worksheet(ctx, cards.SheetTitle)
	if err != nil {
		return 0, err
	}
	records, err := main.Records(ctx)
	if err != nil {
		return 0, err
	}

	// 2. Reset the chart sheet
	sheet, _, err := s.book.OpenOrCreate(ctx, SheetTitle, Headers)
	if err != nil {
		return 0, err
	}
	if err := sheet.Clear(ctx); err != nil {
		return 0, err
	}
	if err := sheet.SetHeaders(ctx, Headers); err != nil {
		return 0, err
	}

	// 3. One chart per player, newest score on the right
	writer := sink.NewWriter(sheet)
	written := 0
	for _, rec := range records {
		text := strings.TrimSpace(rec.Get(cards.ColLastScores))
		if text == "" {
			continue
		}
		scores := ParseScores(text)
		if len(scores) == 0 {
			continue
		}
		slices.Reverse(scores)

		name := rec.Get(cards.ColPlayerName)
		u, err := URL(NewConfig(name, scores))
		if err != nil {
			return written, err
		}
		writer.Put(0, []string{name, u})
		written++
	}

	if err := writer.Flush(ctx); err != nil {
		return 0, fmt.Errorf("failed to write charts: %w", err)
	}

	s.logger.Info("Charts rendered", zap.Int("charts", written))
	return written, nil
}

// Message renders the completion notification.
func Message(charts int, elapsed time.Duration) string {
	return fmt.Sprintf("📈 <b>SO5 Charts Rendered</b>\n\n⏱️ Time: %.2fs\n🖼️ Charts: %d", elapsed.Seconds(), charts)
}
