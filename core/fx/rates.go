package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"card-tracker/core/price"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Fallback rates used when a source is unavailable.
const (
	FallbackETHToEUR = 3000.0
	FallbackUSDToEUR = 0.92
	FallbackGBPToEUR = 1.17
)

// Fallback returns the fixed rates.
func Fallback() price.Rates {
	return price.Rates{USDToEUR: FallbackUSDToEUR, GBPToEUR: FallbackGBPToEUR, ETHToEUR: FallbackETHToEUR}
}

// Provider fetches and memoizes rates.
type Provider struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger

	sf    singleflight.Group
	mu    sync.RWMutex
	rates *price.Rates
}

// NewProvider creates a provider.
func NewProvider(cfg Config, logger *zap.Logger) *Provider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Provider{cfg: cfg, http: &http.Client{Timeout: timeout}, logger: logger}
}

// Rates returns the conversion rates, fetching them on first use.
func (p *Provider) Rates(ctx context.Context) price.Rates {
	p.mu.RLock()
	if p.rates != nil {
		r := *p.rates
		p.mu.RUnlock()
		return r
	}
	p.mu.RUnlock()

	v, _, _ := p.sf.Do("rates", func() (any, error) {
		r := p.fetch(ctx)
		p.mu.Lock()
		p.rates = &r
		p.mu.Unlock()
		return r, nil
	})
	return v.(price.Rates)
}

func (p *Provider) fetch(ctx context.Context) price.Rates {
	rates := Fallback()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		eth, err := p.ethRate(gctx)
		if err != nil {
			p.logger.Warn("ETH rate unavailable, using fallback", zap.Float64("fallback", FallbackETHToEUR), zap.Error(err))
			return nil
		}
		rates.ETHToEUR = eth
		return nil
	})
	g.Go(func() error {
		usd, gbp, err := p.fiatRates(gctx)
		if err != nil {
			p.logger.Warn("Fiat rates unavailable, using fallback", zap.Error(err))
			return nil
		}
		rates.USDToEUR = usd
		rates.GBPToEUR = gbp
		return nil
	})
	_ = g.Wait()

	p.logger.Info("Exchange rates loaded",
		zap.Float64("eth_to_eur", rates.ETHToEUR),
		zap.Float64("usd_to_eur", rates.USDToEUR),
		zap.Float64("gbp_to_eur", rates.GBPToEUR),
	)
	return rates
}

func (p *Provider) ethRate(ctx context.Context) (float64, error) {
	var body struct {
		Ethereum struct {
			EUR *float64 `json:"eur"`
		} `json:"ethereum"`
	}
	if err := p.getJSON(ctx, p.cfg.ETHURL, &body); err != nil {
		return 0, err
	}
	if body.Ethereum.EUR == nil || *body.Ethereum.EUR <= 0 {
		return 0, fmt.Errorf("missing ethereum.eur")
	}
	return *body.Ethereum.EUR, nil
}

// fiatRates returns USD->EUR and GBP->EUR from EUR based quotes.
func (p *Provider) fiatRates(ctx context.Context) (float64, float64, error) {
	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := p.getJSON(ctx, p.cfg.FiatURL, &body); err != nil {
		return 0, 0, err
	}

	usd, gbp := body.Rates["USD"], body.Rates["GBP"]
	if usd <= 0 || gbp <= 0 {
		return 0, 0, fmt.Errorf("missing USD or GBP quote")
	}
	return 1 / usd, 1 / gbp, nil
}

func (p *Provider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
