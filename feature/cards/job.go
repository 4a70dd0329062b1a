package cards

import (
	"context"
	"fmt"
	"strings"
	"time"

	"card-tracker/core/batch"
	"card-tracker/core/price"
	"card-tracker/core/reconcile"
	"card-tracker/core/sheets"
	"card-tracker/core/sink"
	"card-tracker/core/sorare"

	"go.uber.org/zap"
)

// Operation is the batch name of the card update pass.
const Operation = "update-cards"

// Source is the part of the API client used to refresh a card.
type Source interface {
	CardDetails(ctx context.Context, slug string) (*sorare.CardDetails, error)
	Projection(ctx context.Context, playerSlug, gameID string) (*sorare.Projection, error)
}

// RateSource provides conversion rates to euros.
type RateSource interface {
	Rates(ctx context.Context) price.Rates
}

// Task is one card to refresh.
type Task struct {
	Slug     string            `json:"slug"`
	RowIndex int               `json:"row_index"`
	Record   map[string]string `json:"record"`
}

// State is carried across resumed invocations.
type State struct {
	Updated           int `json:"updated"`
	ProjectionMissing int `json:"projection_missing"`
}

// Options tunes the Job.
type Options struct {
	// Refresh is how old a row must be before it is refreshed again.
	Refresh time.Duration
	// Location is used for the Last Updated column and game dates.
	Location *time.Location
}

// Job refreshes stale rows of the main sheet.
type Job struct {
	book   *sheets.Book
	source Source
	rates  RateSource
	clock  batch.Clock
	opts   Options
	logger *zap.Logger

	writer  *sink.Writer
	current map[string]sheets.Record
	rate    price.Rates
}

// NewJob creates a Job.
func NewJob(book *sheets.Book, source Source, rates RateSource, clock batch.Clock, opts Options, logger *zap.Logger) *Job {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Job{
		book:   book,
		source: source,
		rates:  rates,
		clock:  clock,
		opts:   opts,
		logger: logger,
	}
}

// Plan selects the rows whose Last Updated is empty, unreadable or older
// than the refresh interval.
func (j *Job) Plan(ctx context.Context) ([]Task, State, error) {
	records, err := j.records(ctx)
	if err != nil {
		return nil, State{}, err
	}

	cutoff := j.clock.Now().Add(-j.opts.Refresh)
	var tasks []Task
	for _, rec := range records {
		slug := strings.TrimSpace(rec.Get(ColSlug))
		if slug == "" {
			continue
		}
		if !j.stale(rec.Get(ColLastUpdated), cutoff) {
			continue
		}
		tasks = append(tasks, Task{Slug: slug, RowIndex: rec.Index, Record: rec.Values})
	}

	j.logger.Info("Cards selected for update",
		zap.Int("rows", len(records)),
		zap.Int("stale", len(tasks)),
	)
	return tasks, State{}, nil
}

func (j *Job) stale(lastUpdated string, cutoff time.Time) bool {
	lastUpdated = strings.TrimSpace(lastUpdated)
	if lastUpdated == "" {
		return true
	}
	t, err := time.ParseInLocation(reconcile.DateLayout, lastUpdated, j.opts.Location)
	if err != nil {
		return true
	}
	return t.Before(cutoff)
}

// Prepare re-reads the sheet, since rows may have moved since the work list
// was planned, and fetches the rates once for this invocation.
func (j *Job) Prepare(ctx context.Context) error {
	sheet, err := j.book.Worksheet(ctx, SheetTitle)
	if err != nil {
		return err
	}
	records, err := sheet.Records(ctx)
	if err != nil {
		return err
	}

	j.current = make(map[string]sheets.Record, len(records))
	for _, rec := range records {
		if slug := strings.TrimSpace(rec.Get(ColSlug)); slug != "" {
			j.current[slug] = rec
		}
	}
	j.writer = sink.NewWriter(sheet)
	j.rate = j.rates.Rates(ctx)
	return nil
}

// Process fetches one card and queues its refreshed row.
func (j *Job) Process(ctx context.Context, task Task, state *State) error {
	rec, ok := j.current[task.Slug]
	if !ok {
		return fmt.Errorf("card %s is no longer in %s", task.Slug, SheetTitle)
	}

	details, err := j.source.CardDetails(ctx, task.Slug)
	if err != nil {
		return err
	}

	var playerSlug string
	if details.Player != nil {
		playerSlug = details.Player.Slug
	}
	proj, err := j.source.Projection(ctx, playerSlug, GameID(details))
	if err != nil {
		j.logger.Warn("Projection unavailable",
			zap.String("key", task.Slug),
			zap.Error(err),
		)
		proj = nil
	}
	if proj == nil {
		state.ProjectionMissing++
	}

	row := BuildRow(rec.Values, details, proj, j.rate, j.clock.Now(), j.opts.Location)
	j.writer.Put(rec.Index, row.Values())
	j.current[task.Slug] = sheets.Record{Index: rec.Index, Values: row}
	state.Updated++
	return nil
}

// Flush writes the queued rows.
func (j *Job) Flush(ctx context.Context) error {
	if j.writer == nil {
		return nil
	}
	return j.writer.Flush(ctx)
}

// Key identifies a task in logs.
func (j *Job) Key(task Task) string {
	return task.Slug
}

func (j *Job) records(ctx context.Context) ([]sheets.Record, error) {
	sheet, err := j.book.Worksheet(ctx, SheetTitle)
	if err != nil {
		return nil, fmt.Errorf("main sheet unavailable, run sync first: %w", err)
	}
	return sheet.Records(ctx)
}
