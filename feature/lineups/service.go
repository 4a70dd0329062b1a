package lineups

import (
	"context"
	"fmt"
	"strings"
	"time"

	"card-tracker/core/sheets"
	"card-tracker/core/sink"
	"card-tracker/core/sorare"

	"go.uber.org/zap"
)

// Operation is the name of the lineup check.
const Operation = "check-lineups"

// SheetTitle is the worksheet listing the fielded cards.
const SheetTitle = "Lineups"

// Headers is the header row of the lineup sheet.
var Headers = []string{"Competition", "Lineup Name", "Player", "Card Slug", "Rarity", "Position", "Captain?"}

// excluded leaderboards contain one of these words in their name.
var excluded = []string{"arena", "common"}

// Source is the part of the API client used to list lineups.
type Source interface {
	UserSlug() string
	CurrentFixture(ctx context.Context) (*sorare.Fixture, error)
	Leaderboards(ctx context.Context, fixtureSlug string) ([]sorare.Leaderboard, error)
	UserLineups(ctx context.Context, leaderboardSlug string) ([]sorare.Lineup, error)
}

// Result summarizes a check.
type Result struct {
	Fixture      string
	Leaderboards int
	Cards        int
	Failed       int
}

// Service rewrites the lineup sheet for the running game week.
type Service struct {
	book   *sheets.Book
	source Source
	pause  time.Duration
	logger *zap.Logger
}

// NewService creates a new lineup service. pause is slept after each
// leaderboard query.
func NewService(book *sheets.Book, source Source, pause time.Duration, logger *zap.Logger) *Service {
	return &Service{book: book, source: source, pause: pause, logger: logger}
}

// Run lists the user's fielded cards in every eligible leaderboard of the
// started fixture. A leaderboard that fails is logged and skipped.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	// 1. Reset the sheet
	sheet, _, err := s.book.OpenOrCreate(ctx, SheetTitle, Headers)
	if err != nil {
		return nil, err
	}
	if err := sheet.Clear(ctx); err != nil {
		return nil, err
	}
	if err := sheet.SetHeaders(ctx, Headers); err != nil {
		return nil, err
	}
	writer := sink.NewWriter(sheet)

	// 2. Current game week
	fixture, err := s.source.CurrentFixture(ctx)
	if err != nil {
		return nil, err
	}
	res := &Result{}
	if fixture == nil {
		s.logger.Info("No active game week")
		writer.Put(0, []string{"No lineups found (no active game week)."})
		return res, writer.Flush(ctx)
	}
	res.Fixture = fixture.DisplayName

	boards, err := s.source.Leaderboards(ctx, fixture.Slug)
	if err != nil {
		return nil, err
	}

	// 3. Lineups per leaderboard
	for _, lb := range Eligible(boards) {
		res.Leaderboards++
		lineups, err := s.source.UserLineups(ctx, lb.Slug)
		if err != nil {
			res.Failed++
			s.logger.Warn("Skipping leaderboard", zap.String("key", lb.Slug), zap.Error(err))
		}
		for _, row := range Rows(lb, lineups) {
			writer.Put(0, row)
			res.Cards++
		}
		if err := sleep(ctx, s.pause); err != nil {
			return nil, err
		}
	}

	if res.Cards == 0 {
		writer.Put(0, []string{fmt.Sprintf("No lineups found for user '%s' in active competitions.", s.source.UserSlug())})
	}
	if err := writer.Flush(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Lineups checked",
		zap.String("fixture", res.Fixture),
		zap.Int("leaderboards", res.Leaderboards),
		zap.Int("cards", res.Cards),
	)
	return res, nil
}

// Eligible drops arena and common leaderboards.
func Eligible(boards []sorare.Leaderboard) []sorare.Leaderboard {
	var out []sorare.Leaderboard
	for _, lb := range boards {
		name := strings.ToLower(lb.DisplayName)
		skip := false
		for _, word := range excluded {
			if strings.Contains(name, word) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, lb)
		}
	}
	return out
}

// Rows renders one row per fielded card.
func Rows(lb sorare.Leaderboard, lineups []sorare.Lineup) [][]string {
	var rows [][]string
	for _, l := range lineups {
		name := "Unnamed"
		if l.Name != nil && *l.Name != "" {
			name = *l.Name
		}
		for _, a := range l.Appearances {
			var player, slug, rarity, position string
			if a.Player != nil {
				player = a.Player.DisplayName
			}
			if a.AnyCard != nil {
				slug = a.AnyCard.Slug
				rarity = a.AnyCard.RarityTyped
			}
			if a.Position != nil {
				position = *a.Position
			}
			captain := "No"
			if a.Captain {
				captain = "Yes"
			}
			rows = append(rows, []string{lb.DisplayName, name, player, slug, rarity, position, captain})
		}
	}
	return rows
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

// Message renders the completion notification.
func Message(res *Result) string {
	if res.Fixture == "" {
		return "📋 <b>Lineups Checked</b>\n\nNo active game week."
	}
	return fmt.Sprintf("📋 <b>Lineups Checked</b> (%s)\n\n🏆 Leaderboards: %d\n🃏 Cards fielded: %d\n⚠️ Failed: %d",
		res.Fixture, res.Leaderboards, res.Cards, res.Failed)
}
