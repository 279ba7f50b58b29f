// Package finance provides the exchange-rate client for PobutBot.
//
// It combines NBU fiat rates (USD/EUR against UAH) with CoinGecko crypto
// spot prices (BTC/ETH in USD) into one broadcast text. Calls fail soft: any
// transport or decode error produces a human-readable error string.
package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Default client configuration.
const (
	DefaultFiatURL   = "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange?json"
	DefaultCryptoURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin,ethereum&vs_currencies=usd"
	DefaultTimeout   = 10 * time.Second
)

// Opts holds finance client configuration options.
type Opts struct {
	FiatURL   string
	CryptoURL string
	Timeout   time.Duration
}

// Option configures finance client creation.
type Option func(*Opts)

// WithFiatURL overrides the NBU endpoint (tests).
func WithFiatURL(u string) Option {
	return func(o *Opts) { o.FiatURL = u }
}

// WithCryptoURL overrides the CoinGecko endpoint (tests).
func WithCryptoURL(u string) Option {
	return func(o *Opts) { o.CryptoURL = u }
}

// WithTimeout bounds each API call.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// Client fetches exchange rates.
type Client struct {
	http      *http.Client
	fiatURL   string
	cryptoURL string
}

// NewClient creates a finance client.
func NewClient(opts ...Option) *Client {
	cfg := Opts{FiatURL: DefaultFiatURL, CryptoURL: DefaultCryptoURL, Timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		fiatURL:   cfg.FiatURL,
		cryptoURL: cfg.CryptoURL,
	}
}

type fiatRate struct {
	CC   string  `json:"cc"`
	Rate float64 `json:"rate"`
}

// Rates returns the combined exchange-rates broadcast text.
func (c *Client) Rates(ctx context.Context) string {
	var fiat []fiatRate
	if err := c.get(ctx, c.fiatURL, &fiat); err != nil {
		slog.Error("Finance fiat fetch failed", "error", err)
		return fmt.Sprintf("Помилка отримання курсів: %v", err)
	}
	var usd, eur float64
	for _, r := range fiat {
		switch r.CC {
		case "USD":
			usd = r.Rate
		case "EUR":
			eur = r.Rate
		}
	}

	var crypto map[string]map[string]float64
	if err := c.get(ctx, c.cryptoURL, &crypto); err != nil {
		slog.Error("Finance crypto fetch failed", "error", err)
		return fmt.Sprintf("Помилка отримання курсів: %v", err)
	}
	btc := crypto["bitcoin"]["usd"]
	eth := crypto["ethereum"]["usd"]

	return fmt.Sprintf(
		"💰 Курс валют:\n"+
			"🇺🇸 USD: %.2f ₴\n"+
			"🇪🇺 EUR: %.2f ₴\n\n"+
			"💎 Крипта:\n"+
			"₿ BTC: %.2f $\n"+
			"Ξ ETH: %.2f $",
		usd, eur, btc, eth)
}

func (c *Client) get(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
