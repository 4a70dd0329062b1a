package reconcile

import (
	"context"
	"time"
)

// Eligibility flags of a sale.
const (
	EligibilityInSeason = "IN_SEASON"
	EligibilityClassic  = "CLASSIC"
)

// DateLayout is the layout of persisted sale dates.
const DateLayout = "2006-01-02 15:04:05"

// Windows are the trailing day windows averaged by Summarize.
var Windows = []int{3, 7, 14, 30}

// SaleEvent is a single sale with its price already in euros.
type SaleEvent struct {
	// Timestamp is the sale time in Unix milliseconds. It identifies the event.
	Timestamp int64 `json:"timestamp"`
	// PriceEUR is the sale price in euros.
	PriceEUR float64 `json:"price_eur"`
	// Eligibility is EligibilityInSeason or EligibilityClassic.
	Eligibility string `json:"eligibility"`
}

// Time returns the sale time.
func (e SaleEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// InSeason reports whether the sale counts as in-season.
func (e SaleEvent) InSeason() bool {
	return e.Eligibility == EligibilityInSeason
}

// PersistedSale is a sale as stored in the sheet, all fields as text.
type PersistedSale struct {
	Date        string `json:"date"`
	Price       string `json:"price"`
	Eligibility string `json:"eligibility"`
}

// PriorRecord is the persisted history of a work item.
type PriorRecord struct {
	// RowIndex is the sheet row holding the record. Zero means not persisted.
	RowIndex int `json:"row_index"`
	// Sales are most recent first.
	Sales []PersistedSale `json:"sales"`
}

// FetchFunc fetches up to limit of the most recent sale events.
type FetchFunc func(ctx context.Context, limit int) ([]SaleEvent, error)

// Options tunes the Engine.
type Options struct {
	// FreshLimit is the request size when a prior record exists.
	FreshLimit int
	// InitialLimit is the request size on cold start.
	InitialLimit int
	// MaxEvents caps the merged history.
	MaxEvents int
	// Correction enables the price unit heuristic on persisted prices.
	Correction bool
	// Location is used to read and write persisted dates.
	Location *time.Location
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		FreshLimit:   7,
		InitialLimit: 20,
		MaxEvents:    100,
		Correction:   true,
		Location:     time.UTC,
	}
}

// PriceCorrection records one persisted price changed by the heuristic.
type PriceCorrection struct {
	Timestamp int64   `json:"timestamp"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
}

// MergedRecord is the result of reconciling one work item.
type MergedRecord struct {
	// Events are deduplicated, newest first, at most MaxEvents long.
	Events []SaleEvent
	// Fresh is the number of events returned by the fetch.
	Fresh int
	// Corrections lists the persisted prices divided by 100.
	Corrections []PriceCorrection
	// Unverified counts persisted sales that had no reference price, or whose
	// price looked like cents but could not be corrected.
	Unverified int
	// Dropped counts persisted sales with an unreadable date or price.
	Dropped int
}

// WindowAverage holds the mean price per flag over a trailing window.
// Empty strings mean no sale in the window.
type WindowAverage struct {
	Days     int
	InSeason string
	Classic  string
}

// Summary holds the derived statistics of a history.
type Summary struct {
	TodayInSeason int
	TodayClassic  int
	Averages      []WindowAverage
}
