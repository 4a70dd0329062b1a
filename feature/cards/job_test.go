package cards

import (
	"context"
	"errors"
	"testing"
	"time"

	"card-tracker/core/batch"
	"card-tracker/core/checkpoint"
	"card-tracker/core/database"
	"card-tracker/core/price"
	"card-tracker/core/sheets"
	"card-tracker/core/sorare"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	clock    *batch.FakeClock
	step     time.Duration
	fail     map[string]bool
	projErr  error
	requests []string
}

func (f *fakeSource) CardDetails(_ context.Context, slug string) (*sorare.CardDetails, error) {
	f.requests = append(f.requests, slug)
	if f.clock != nil {
		f.clock.Advance(f.step)
	}
	if f.fail[slug] {
		return nil, sorare.ErrNotFound
	}
	return &sorare.CardDetails{
		Grade:  intPtr(len(f.requests)),
		Player: &sorare.PlayerDetails{Slug: "player-" + slug},
	}, nil
}

func (f *fakeSource) Projection(context.Context, string, string) (*sorare.Projection, error) {
	if f.projErr != nil {
		return nil, f.projErr
	}
	return &sorare.Projection{Grade: strPtr("B")}, nil
}

type fixedRates struct{ calls int }

func (r *fixedRates) Rates(context.Context) price.Rates {
	r.calls++
	return testRates
}

func setupMainSheet(t *testing.T, rows ...Row) *sheets.Book {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	book := sheets.NewBook(db)
	require.NoError(t, book.Migrate(ctx))
	sheet, _, err := book.OpenOrCreate(ctx, SheetTitle, Headers)
	require.NoError(t, err)

	values := make([][]string, len(rows))
	for i, r := range rows {
		values[i] = r.Values()
	}
	_, err = sheet.AppendRows(ctx, values)
	require.NoError(t, err)
	return book
}

func newStore(t *testing.T) *checkpoint.Store {
	b, err := checkpoint.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return checkpoint.NewStore(b, Operation, zap.NewNop())
}

func readRows(t *testing.T, book *sheets.Book) map[string]sheets.Record {
	sheet, err := book.Worksheet(context.Background(), SheetTitle)
	require.NoError(t, err)
	records, err := sheet.Records(context.Background())
	require.NoError(t, err)

	out := make(map[string]sheets.Record, len(records))
	for _, r := range records {
		out[r.Get(ColSlug)] = r
	}
	return out
}

var start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestJob_PlanSelectsStaleRows(t *testing.T) {
	book := setupMainSheet(t,
		Row{ColSlug: "fresh", ColLastUpdated: "2024-06-01 11:50:00"},
		Row{ColSlug: "never"},
		Row{ColSlug: "garbage", ColLastUpdated: "yesterday"},
		Row{ColSlug: "old", ColLastUpdated: "2024-06-01 10:00:00"},
		Row{ColSlug: ""},
	)
	job := NewJob(book, &fakeSource{}, &fixedRates{}, batch.NewFakeClock(start),
		Options{Refresh: 30 * time.Minute}, zap.NewNop())

	tasks, _, err := job.Plan(context.Background())
	require.NoError(t, err)

	var slugs []string
	for _, task := range tasks {
		slugs = append(slugs, task.Slug)
	}
	assert.Equal(t, []string{"never", "garbage", "old"}, slugs)
	assert.Equal(t, 3, tasks[0].RowIndex)
}

func TestJob_PlanWithoutSheet(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	book := sheets.NewBook(db)
	require.NoError(t, book.Migrate(context.Background()))

	job := NewJob(book, &fakeSource{}, &fixedRates{}, batch.NewFakeClock(start), Options{}, zap.NewNop())
	_, _, err = job.Plan(context.Background())
	assert.True(t, errors.Is(err, sheets.ErrWorksheetNotFound))
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	book := setupMainSheet(t,
		Row{ColSlug: "a", ColOwnerSince: "2023"},
		Row{ColSlug: "b"},
		Row{ColSlug: "c", ColLastUpdated: "2024-06-01 11:59:00"},
	)
	clock := batch.NewFakeClock(start)
	source := &fakeSource{fail: map[string]bool{"b": true}}
	rates := &fixedRates{}
	job := NewJob(book, source, rates, clock, Options{Refresh: 30 * time.Minute}, zap.NewNop())
	store := newStore(t)

	res, err := NewService(job, store, batch.Options{}, zap.NewNop()).Run(ctx, batch.Unlimited(ctx))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.State.Updated)
	assert.Equal(t, 1, rates.calls)
	assert.Equal(t, []string{"a", "b"}, source.requests)

	rows := readRows(t, book)
	assert.Equal(t, "1", rows["a"].Get(ColLevel))
	assert.Equal(t, "B", rows["a"].Get(ColProjectionGrade))
	assert.Equal(t, "2023", rows["a"].Get(ColOwnerSince))
	assert.Equal(t, "2024-06-01 12:00:00", rows["a"].Get(ColLastUpdated))
	assert.Equal(t, "", rows["b"].Get(ColLastUpdated))

	assert.True(t, store.Load(ctx).IsEmpty())
	assert.Contains(t, Message(res, 2*time.Second), "Updated: 1")
}

func TestService_SuspendAndResume(t *testing.T) {
	ctx := context.Background()
	book := setupMainSheet(t, Row{ColSlug: "a"}, Row{ColSlug: "b"}, Row{ColSlug: "c"})
	clock := batch.NewFakeClock(start)
	source := &fakeSource{clock: clock, step: 200 * time.Second}
	job := NewJob(book, source, &fixedRates{}, clock, Options{Refresh: 30 * time.Minute}, zap.NewNop())
	store := newStore(t)
	svc := NewService(job, store, batch.Options{}, zap.NewNop())

	// 1. Budget runs out after two cards
	res, err := svc.Run(ctx, batch.NewBudget(ctx, clock, 300*time.Second))
	require.NoError(t, err)
	assert.True(t, res.Suspended)
	assert.Equal(t, 2, res.NextIndex)

	cp := store.Load(ctx)
	assert.Equal(t, 2, cp.LastIndex)

	rows := readRows(t, book)
	assert.NotEmpty(t, rows["a"].Get(ColLastUpdated))
	assert.NotEmpty(t, rows["b"].Get(ColLastUpdated))
	assert.Empty(t, rows["c"].Get(ColLastUpdated))

	// 2. Next invocation only handles the remaining card
	source.requests = nil
	res, err = svc.Run(ctx, batch.NewBudget(ctx, clock, 300*time.Second))
	require.NoError(t, err)
	assert.False(t, res.Suspended)
	assert.Equal(t, []string{"c"}, source.requests)
	assert.Equal(t, 3, res.State.Updated)
	assert.True(t, store.Load(ctx).IsEmpty())
}

func TestJob_ProjectionFailureBlanksProjection(t *testing.T) {
	ctx := context.Background()
	book := setupMainSheet(t, Row{ColSlug: "a", ColProjectedScore: "55.00"})
	source := &fakeSource{projErr: errors.New("timeout")}
	job := NewJob(book, source, &fixedRates{}, batch.NewFakeClock(start), Options{Refresh: time.Minute}, zap.NewNop())

	res, err := NewService(job, newStore(t), batch.Options{}, zap.NewNop()).Run(ctx, batch.Unlimited(ctx))
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.ProjectionMissing)

	rows := readRows(t, book)
	assert.Equal(t, DefaultGrade, rows["a"].Get(ColProjectionGrade))
	assert.Equal(t, "", rows["a"].Get(ColProjectedScore))
}
