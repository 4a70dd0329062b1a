package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var base = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func event(minutesAgo int, eur float64, elig string) SaleEvent {
	return SaleEvent{
		Timestamp:   base.Add(-time.Duration(minutesAgo) * time.Minute).UnixMilli(),
		PriceEUR:    eur,
		Eligibility: elig,
	}
}

func fetchReturning(events []SaleEvent, gotLimit *int) FetchFunc {
	return func(_ context.Context, limit int) ([]SaleEvent, error) {
		if gotLimit != nil {
			*gotLimit = limit
		}
		return events, nil
	}
}

func persist(e *Engine, events []SaleEvent) *PriorRecord {
	prior := &PriorRecord{RowIndex: 2}
	for _, ev := range events {
		prior.Sales = append(prior.Sales, e.Encode(ev))
	}
	return prior
}

func TestEngine_FetchLimit(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())

	var got int
	_, err := e.Reconcile(context.Background(), "k", nil, fetchReturning(nil, &got))
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	_, err = e.Reconcile(context.Background(), "k", &PriorRecord{RowIndex: 5}, fetchReturning(nil, &got))
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestEngine_FetchError(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	_, err := e.Reconcile(context.Background(), "player::rare", nil, func(context.Context, int) ([]SaleEvent, error) {
		return nil, errors.New("502 bad gateway")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player::rare")
	assert.Contains(t, err.Error(), "502")
}

func TestEngine_DedupFreshWins(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	prior := persist(e, []SaleEvent{event(10, 5, EligibilityClassic), event(20, 6, EligibilityClassic)})
	fresh := []SaleEvent{event(10, 5.5, EligibilityInSeason)}

	merged, err := e.Reconcile(context.Background(), "k", prior, fetchReturning(fresh, nil))
	require.NoError(t, err)
	require.Len(t, merged.Events, 2)
	assert.Equal(t, 5.5, merged.Events[0].PriceEUR)
	assert.Equal(t, EligibilityInSeason, merged.Events[0].Eligibility)
	assert.Equal(t, 6.0, merged.Events[1].PriceEUR)
}

func TestEngine_BoundedAndOrdered(t *testing.T) {
	e := NewEngine(Options{MaxEvents: 5}, zap.NewNop())

	var persisted []SaleEvent
	for i := 0; i < 10; i++ {
		persisted = append(persisted, event(100+i, 3, EligibilityClassic))
	}
	fresh := []SaleEvent{event(1, 3, EligibilityClassic), event(2, 3, EligibilityClassic)}

	merged, err := e.Reconcile(context.Background(), "k", persist(e, persisted), fetchReturning(fresh, nil))
	require.NoError(t, err)
	require.Len(t, merged.Events, 5)
	for i := 1; i < len(merged.Events); i++ {
		assert.Greater(t, merged.Events[i-1].Timestamp, merged.Events[i].Timestamp)
	}
	assert.Equal(t, fresh[0].Timestamp, merged.Events[0].Timestamp)
}

func TestEngine_UnitCorrection(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	fresh := []SaleEvent{
		event(1, 120, EligibilityClassic),
		event(2, 120, EligibilityClassic),
		event(3, 120, EligibilityClassic),
	}
	prior := &PriorRecord{RowIndex: 3, Sales: []PersistedSale{
		{Date: base.Add(-time.Hour).Format(DateLayout), Price: "15000", Eligibility: EligibilityClassic},
		{Date: base.Add(-2 * time.Hour).Format(DateLayout), Price: "118.50 EUR", Eligibility: EligibilityClassic},
	}}

	merged, err := e.Reconcile(context.Background(), "k", prior, fetchReturning(fresh, nil))
	require.NoError(t, err)
	require.Len(t, merged.Corrections, 1)
	assert.Equal(t, 15000.0, merged.Corrections[0].From)
	assert.Equal(t, 150.0, merged.Corrections[0].To)
	assert.Equal(t, 150.0, merged.Events[3].PriceEUR)
	assert.Equal(t, 118.5, merged.Events[4].PriceEUR)
}

func TestEngine_CorrectionDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Correction = false
	e := NewEngine(opts, zap.NewNop())

	prior := persist(e, []SaleEvent{event(60, 15000, EligibilityClassic)})
	merged, err := e.Reconcile(context.Background(), "k", prior, fetchReturning([]SaleEvent{event(1, 120, EligibilityClassic)}, nil))
	require.NoError(t, err)
	assert.Empty(t, merged.Corrections)
	assert.Equal(t, 15000.0, merged.Events[1].PriceEUR)
}

func TestEngine_UnverifiedWithoutReference(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	prior := persist(e, []SaleEvent{event(60, 15000, EligibilityClassic), event(70, 12, EligibilityClassic)})

	merged, err := e.Reconcile(context.Background(), "k", prior, fetchReturning(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Unverified)
	assert.Empty(t, merged.Corrections)
	assert.Equal(t, 15000.0, merged.Events[0].PriceEUR)
}

func TestEngine_UncorrectablePriceIsUnverified(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	prior := persist(e, []SaleEvent{event(60, 1_000_000, EligibilityClassic), event(70, 11, EligibilityClassic)})

	merged, err := e.Reconcile(context.Background(), "k", prior, fetchReturning([]SaleEvent{event(1, 10, EligibilityClassic)}, nil))
	require.NoError(t, err)
	assert.Empty(t, merged.Corrections)
	assert.Equal(t, 1, merged.Unverified)
	assert.Equal(t, 1_000_000.0, merged.Events[1].PriceEUR)
}

func TestEngine_DropsMalformedPersistedSales(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	prior := &PriorRecord{RowIndex: 2, Sales: []PersistedSale{
		{Date: "yesterday", Price: "10 EUR"},
		{Date: base.Format(DateLayout), Price: "n/a"},
		{},
		{Date: base.Add(-time.Hour).Format(DateLayout), Price: "9.00 EUR", Eligibility: EligibilityInSeason},
	}}

	merged, err := e.Reconcile(context.Background(), "k", prior, fetchReturning(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Dropped)
	require.Len(t, merged.Events, 1)
	assert.Equal(t, 9.0, merged.Events[0].PriceEUR)
}

func TestEngine_Idempotent(t *testing.T) {
	e := NewEngine(DefaultOptions(), zap.NewNop())
	fresh := []SaleEvent{
		event(1, 120, EligibilityInSeason),
		event(5, 119.99, EligibilityClassic),
	}
	prior := persist(e, []SaleEvent{event(30, 15000, EligibilityClassic), event(40, 101.1, EligibilityClassic)})

	first, err := e.Reconcile(context.Background(), "k", prior, fetchReturning(fresh, nil))
	require.NoError(t, err)

	second, err := e.Reconcile(context.Background(), "k", persist(e, first.Events), fetchReturning(fresh, nil))
	require.NoError(t, err)

	assert.Equal(t, first.Events, second.Events)
	assert.Empty(t, second.Corrections, "a corrected price is never corrected again")
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name      string
		fresh     []SaleEvent
		persisted []SaleEvent
		max       int
		wantLen   int
	}{
		{"Both Empty", nil, nil, 100, 0},
		{"Fresh Only", []SaleEvent{event(1, 1, EligibilityClassic)}, nil, 100, 1},
		{"Overlap", []SaleEvent{event(1, 1, EligibilityClassic)}, []SaleEvent{event(1, 2, EligibilityClassic)}, 100, 1},
		{"Capped", []SaleEvent{event(1, 1, ""), event(2, 1, ""), event(3, 1, "")}, nil, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.fresh, tt.persisted, tt.max)
			assert.Len(t, got, tt.wantLen, fmt.Sprintf("%v", got))
		})
	}
}
