package reconcile

import (
	"time"

	"card-tracker/core/price"
)

// Summarize computes today's sale counts and trailing-window averages.
// "Today" starts at midnight of now in loc. Windows are independent, each
// covering the last N*24h before now.
func Summarize(events []SaleEvent, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	var s Summary
	for _, ev := range events {
		if ev.Time().Before(midnight) {
			continue
		}
		if ev.InSeason() {
			s.TodayInSeason++
		} else {
			s.TodayClassic++
		}
	}

	for _, days := range Windows {
		cutoff := now.Add(-time.Duration(days) * 24 * time.Hour).UnixMilli()
		var inSeason, classic []float64
		for _, ev := range events {
			if ev.Timestamp < cutoff {
				continue
			}
			if ev.InSeason() {
				inSeason = append(inSeason, ev.PriceEUR)
			} else {
				classic = append(classic, ev.PriceEUR)
			}
		}
		s.Averages = append(s.Averages, WindowAverage{
			Days:     days,
			InSeason: average(inSeason),
			Classic:  average(classic),
		})
	}
	return s
}

func average(prices []float64) string {
	if len(prices) == 0 {
		return ""
	}
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return price.FormatEUR(price.Round(sum / float64(len(prices))))
}
