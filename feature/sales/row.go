package sales

import (
	"strconv"
	"time"

	"card-tracker/core/reconcile"
	"card-tracker/core/sheets"
)

// BuildRow renders the merged history of a pair as a sheet row.
func BuildRow(engine *reconcile.Engine, pair Pair, events []reconcile.SaleEvent, now time.Time) []string {
	opts := engine.Options()
	summary := reconcile.Summarize(events, now, opts.Location)

	values := map[string]string{
		ColPlayerName:    pair.Name,
		ColPlayerSlug:    pair.PlayerSlug,
		ColRarity:        pair.Rarity,
		ColTodayInSeason: strconv.Itoa(summary.TodayInSeason),
		ColTodayClassic:  strconv.Itoa(summary.TodayClassic),
		ColLastUpdated:   now.In(opts.Location).Format(reconcile.DateLayout),
	}
	for _, avg := range summary.Averages {
		in, cl := AvgColumns(avg.Days)
		values[in] = avg.InSeason
		values[cl] = avg.Classic
	}
	for j, ev := range events {
		if j >= opts.MaxEvents {
			break
		}
		s := engine.Encode(ev)
		d, p, e := SaleColumns(j + 1)
		values[d] = s.Date
		values[p] = s.Price
		values[e] = s.Eligibility
	}

	headers := Headers(opts.MaxEvents)
	row := make([]string, len(headers))
	for i, h := range headers {
		row[i] = values[h]
	}
	return row
}

// Prior reads the persisted history of a sales sheet record.
func Prior(rec sheets.Record, maxSales int) *reconcile.PriorRecord {
	prior := &reconcile.PriorRecord{RowIndex: rec.Index}
	for j := 1; j <= maxSales; j++ {
		d, p, e := SaleColumns(j)
		if rec.Get(d) == "" && rec.Get(p) == "" {
			continue
		}
		prior.Sales = append(prior.Sales, reconcile.PersistedSale{
			Date:        rec.Get(d),
			Price:       rec.Get(p),
			Eligibility: rec.Get(e),
		})
	}
	return prior
}
