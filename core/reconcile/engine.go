package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"card-tracker/core/price"

	"go.uber.org/zap"
)

// Engine reconciles sale histories.
type Engine struct {
	opts   Options
	logger *zap.Logger
}

// NewEngine creates an engine. Zero options fall back to the defaults.
func NewEngine(opts Options, logger *zap.Logger) *Engine {
	def := DefaultOptions()
	if opts.FreshLimit <= 0 {
		opts.FreshLimit = def.FreshLimit
	}
	if opts.InitialLimit <= 0 {
		opts.InitialLimit = def.InitialLimit
	}
	if opts.MaxEvents <= 0 {
		opts.MaxEvents = def.MaxEvents
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	return &Engine{opts: opts, logger: logger}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// FetchLimit returns how many sales to request for a work item.
func (e *Engine) FetchLimit(prior *PriorRecord) int {
	if prior != nil && prior.RowIndex > 0 {
		return e.opts.FreshLimit
	}
	return e.opts.InitialLimit
}

// Reconcile fetches fresh events for key and merges them with prior.
// A fetch error is returned unchanged in meaning; prior is never modified.
func (e *Engine) Reconcile(ctx context.Context, key string, prior *PriorRecord, fetch FetchFunc) (*MergedRecord, error) {
	limit := e.FetchLimit(prior)

	fresh, err := fetch(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales for %s: %w", key, err)
	}

	out := &MergedRecord{Fresh: len(fresh)}

	var persisted []SaleEvent
	if prior != nil {
		persisted, out.Dropped = e.Decode(prior.Sales)
	}

	if e.opts.Correction && len(persisted) > 0 {
		refs := make([]float64, 0, len(fresh))
		for _, ev := range sortedNewestFirst(fresh) {
			refs = append(refs, ev.PriceEUR)
		}
		if _, ok := price.Reference(refs); !ok {
			out.Unverified = len(persisted)
			e.logger.Warn("No reference price, persisted prices left unverified",
				zap.String("key", key),
				zap.Int("sales", len(persisted)),
			)
		} else {
			for i := range persisted {
				corrected, changed := price.CorrectUnit(persisted[i].PriceEUR, refs)
				if !changed {
					if price.Uncorrectable(persisted[i].PriceEUR, refs) {
						out.Unverified++
					}
					continue
				}
				out.Corrections = append(out.Corrections, PriceCorrection{
					Timestamp: persisted[i].Timestamp,
					From:      persisted[i].PriceEUR,
					To:        corrected,
				})
				persisted[i].PriceEUR = corrected
			}
			if out.Unverified > 0 {
				e.logger.Warn("Implausible persisted prices left unverified",
					zap.String("key", key),
					zap.Int("count", out.Unverified),
				)
			}
			if len(out.Corrections) > 0 {
				e.logger.Info("Corrected persisted prices",
					zap.String("key", key),
					zap.Int("count", len(out.Corrections)),
				)
			}
		}
	}

	out.Events = Merge(fresh, persisted, e.opts.MaxEvents)
	return out, nil
}

// Decode parses persisted sales, skipping those with an unreadable date or
// price. It returns the events and the number skipped.
func (e *Engine) Decode(sales []PersistedSale) ([]SaleEvent, int) {
	events := make([]SaleEvent, 0, len(sales))
	dropped := 0
	for _, s := range sales {
		if strings.TrimSpace(s.Date) == "" && strings.TrimSpace(s.Price) == "" {
			continue
		}
		ts, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s.Date), e.opts.Location)
		if err != nil {
			dropped++
			continue
		}
		p, ok := price.ParsePrice(s.Price)
		if !ok {
			dropped++
			continue
		}
		elig := strings.TrimSpace(s.Eligibility)
		if elig != EligibilityInSeason {
			elig = EligibilityClassic
		}
		events = append(events, SaleEvent{Timestamp: ts.UnixMilli(), PriceEUR: p, Eligibility: elig})
	}
	return events, dropped
}

// Encode renders an event for persistence.
func (e *Engine) Encode(ev SaleEvent) PersistedSale {
	return PersistedSale{
		Date:        ev.Time().In(e.opts.Location).Format(DateLayout),
		Price:       price.FormatEUR(ev.PriceEUR),
		Eligibility: ev.Eligibility,
	}
}

// Merge unions fresh and persisted events. Events sharing a timestamp collapse
// into one, keeping the fresh event. The result is newest first and at most
// max long.
func Merge(fresh, persisted []SaleEvent, max int) []SaleEvent {
	byTS := make(map[int64]SaleEvent, len(fresh)+len(persisted))
	for _, ev := range persisted {
		byTS[ev.Timestamp] = ev
	}
	for _, ev := range fresh {
		byTS[ev.Timestamp] = ev
	}

	merged := make([]SaleEvent, 0, len(byTS))
	for _, ev := range byTS {
		merged = append(merged, ev)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})

	if max > 0 && len(merged) > max {
		merged = merged[:max]
	}
	return merged
}

func sortedNewestFirst(events []SaleEvent) []SaleEvent {
	out := make([]SaleEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}
