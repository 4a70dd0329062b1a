package sales

import (
	"context"
	"strings"
	"time"

	"card-tracker/core/batch"
	"card-tracker/core/metrics"
	"card-tracker/core/reconcile"
	"card-tracker/core/sheets"
	"card-tracker/core/sink"
	"card-tracker/core/sorare"
	"card-tracker/feature/cards"

	"go.uber.org/zap"
)

// Operation is the batch name of the sales history pass.
const Operation = "update-sales"

// Source fetches the recorded sales of a player at a rarity.
type Source interface {
	TokenPrices(ctx context.Context, playerSlug, rarity string, limit int) ([]sorare.TokenPrice, error)
}

// Pair is one player and rarity whose sales are tracked.
type Pair struct {
	PlayerSlug string `json:"slug"`
	Rarity     string `json:"rarity"`
	Name       string `json:"name"`
}

// Key identifies the pair in the sales sheet.
func (p Pair) Key() string {
	return p.PlayerSlug + "::" + p.Rarity
}

// State is carried across resumed invocations.
type State struct {
	Updated     int `json:"updated"`
	Appended    int `json:"appended"`
	Corrections int `json:"corrections"`
	Unverified  int `json:"unverified"`
	Dropped     int `json:"dropped"`
}

// Job merges fresh sales into the sales sheet.
type Job struct {
	book    *sheets.Book
	source  Source
	engine  *reconcile.Engine
	clock   batch.Clock
	metrics *metrics.Metrics
	logger  *zap.Logger

	writer   *sink.Writer
	existing map[string]*reconcile.PriorRecord
}

// NewJob creates a Job. m may be nil.
func NewJob(book *sheets.Book, source Source, engine *reconcile.Engine, clock batch.Clock, m *metrics.Metrics, logger *zap.Logger) *Job {
	return &Job{
		book:    book,
		source:  source,
		engine:  engine,
		clock:   clock,
		metrics: m,
		logger:  logger,
	}
}

// Plan lists the distinct player and rarity pairs of the main sheet.
func (j *Job) Plan(ctx context.Context) ([]Pair, State, error) {
	main, err := j.book.Worksheet(ctx, cards.SheetTitle)
	if err != nil {
		return nil, State{}, err
	}
	records, err := main.Records(ctx)
	if err != nil {
		return nil, State{}, err
	}

	seen := make(map[string]struct{})
	var pairs []Pair
	for _, rec := range records {
		slug := strings.TrimSpace(rec.Get(cards.ColPlayerSlug))
		rarity := strings.ToLower(strings.TrimSpace(rec.Get(cards.ColRarity)))
		if slug == "" || rarity == "" {
			continue
		}
		p := Pair{PlayerSlug: slug, Rarity: rarity, Name: rec.Get(cards.ColPlayerName)}
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		pairs = append(pairs, p)
	}

	j.logger.Info("Pairs selected", zap.Int("pairs", len(pairs)))
	return pairs, State{}, nil
}

// Prepare reads the sales sheet so that every invocation, fresh or resumed,
// updates rows written by earlier ones instead of appending duplicates.
func (j *Job) Prepare(ctx context.Context) error {
	sheet, err := j.book.Worksheet(ctx, SheetTitle)
	if err != nil {
		return err
	}
	records, err := sheet.Records(ctx)
	if err != nil {
		return err
	}

	maxSales := j.engine.Options().MaxEvents
	j.existing = make(map[string]*reconcile.PriorRecord, len(records))
	for _, rec := range records {
		key := Pair{PlayerSlug: rec.Get(ColPlayerSlug), Rarity: rec.Get(ColRarity)}.Key()
		j.existing[key] = Prior(rec, maxSales)
	}
	j.writer = sink.NewWriter(sheet)

	j.logger.Debug("Sales history loaded", zap.Int("rows", len(records)))
	return nil
}

// Process reconciles one pair and queues its row.
func (j *Job) Process(ctx context.Context, pair Pair, state *State) error {
	key := pair.Key()
	prior := j.existing[key]

	merged, err := j.engine.Reconcile(ctx, key, prior, func(ctx context.Context, limit int) ([]reconcile.SaleEvent, error) {
		prices, err := j.source.TokenPrices(ctx, pair.PlayerSlug, pair.Rarity, limit)
		if err != nil {
			return nil, err
		}
		return Events(prices), nil
	})
	if err != nil {
		return err
	}

	row := BuildRow(j.engine, pair, merged.Events, j.clock.Now())
	if prior != nil && prior.RowIndex > 0 {
		j.writer.Put(prior.RowIndex, row)
		state.Updated++
	} else {
		j.writer.Put(0, row)
		state.Appended++
	}

	state.Corrections += len(merged.Corrections)
	state.Unverified += merged.Unverified
	state.Dropped += merged.Dropped
	j.metrics.PriceCorrections(Operation, len(merged.Corrections))
	j.metrics.UnverifiedPrices(Operation, merged.Unverified)

	j.logger.Debug("Sales merged",
		zap.String("key", key),
		zap.Int("fresh", merged.Fresh),
		zap.Int("total", len(merged.Events)),
	)
	return nil
}

// Flush writes the queued rows.
func (j *Job) Flush(ctx context.Context) error {
	if j.writer == nil {
		return nil
	}
	return j.writer.Flush(ctx)
}

// Key identifies a pair in logs.
func (j *Job) Key(pair Pair) string {
	return pair.Key()
}

// Events converts API sales into sale events. Sales without a euro amount or
// with an unreadable date are left out. Timestamps are truncated to the
// second, the precision of stored sale dates.
func Events(prices []sorare.TokenPrice) []reconcile.SaleEvent {
	events := make([]reconcile.SaleEvent, 0, len(prices))
	for _, tp := range prices {
		if tp.Amounts == nil || tp.Amounts.EurCents == nil {
			continue
		}
		ts, err := time.Parse(sorare.TokenDateLayout, tp.Date)
		if err != nil {
			continue
		}
		elig := reconcile.EligibilityClassic
		if tp.Card != nil && tp.Card.InSeasonEligible != nil && *tp.Card.InSeasonEligible {
			elig = reconcile.EligibilityInSeason
		}
		events = append(events, reconcile.SaleEvent{
			Timestamp:   ts.Truncate(time.Second).UnixMilli(),
			PriceEUR:    float64(*tp.Amounts.EurCents) / 100,
			Eligibility: elig,
		})
	}
	return events
}
