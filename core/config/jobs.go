package config

import (
	"fmt"
	"time"
)

// JobsConfig tunes the batch operations.
type JobsConfig struct {
	// CardBudgetSeconds is the time budget of update-cards.
	CardBudgetSeconds int `mapstructure:"card_budget_seconds" default:"300"`
	// SalesBudgetSeconds is the time budget of update-sales.
	SalesBudgetSeconds int `mapstructure:"sales_budget_seconds" default:"480"`
	// PauseMillis is slept after every external fetch.
	PauseMillis int `mapstructure:"pause_ms" default:"1000"`
	// DeletePauseMillis is slept between row deletions during sync.
	DeletePauseMillis int `mapstructure:"delete_pause_ms" default:"1500"`
	// LineupPauseMillis is slept between leaderboards in check-lineups.
	LineupPauseMillis int `mapstructure:"lineup_pause_ms" default:"500"`
	// CardRefreshMinutes is the age after which a card row is refreshed.
	CardRefreshMinutes int `mapstructure:"card_refresh_minutes" default:"30"`
	// SalesFetchLimit is the sales page size for known pairs.
	SalesFetchLimit int `mapstructure:"sales_fetch_limit" default:"7"`
	// SalesInitialFetchLimit is the sales page size for new pairs.
	SalesInitialFetchLimit int `mapstructure:"sales_initial_fetch_limit" default:"20"`
	// MaxSales caps the stored sales history per pair.
	MaxSales int `mapstructure:"max_sales" default:"100"`
	// Timezone is used for persisted dates and "today".
	Timezone string `mapstructure:"timezone" default:"UTC"`
	// PriceCorrection enables the cents-to-euros repair of stored prices.
	PriceCorrection bool `mapstructure:"price_correction" default:"true"`
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
func millis(n int) time.Duration  { return time.Duration(n) * time.Millisecond }

func (j JobsConfig) CardBudget() time.Duration  { return seconds(j.CardBudgetSeconds) }
func (j JobsConfig) SalesBudget() time.Duration { return seconds(j.SalesBudgetSeconds) }
func (j JobsConfig) Pause() time.Duration       { return millis(j.PauseMillis) }
func (j JobsConfig) DeletePause() time.Duration { return millis(j.DeletePauseMillis) }
func (j JobsConfig) LineupPause() time.Duration { return millis(j.LineupPauseMillis) }
func (j JobsConfig) CardRefresh() time.Duration {
	return time.Duration(j.CardRefreshMinutes) * time.Minute
}

// Location resolves Timezone.
func (j JobsConfig) Location() (*time.Location, error) {
	if j.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(j.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid jobs.timezone %q: %w", j.Timezone, err)
	}
	return loc, nil
}
