package fx

// Config holds configuration for the exchange rate sources.
type Config struct {
	// ETHURL returns {"ethereum":{"eur":<rate>}}.
	ETHURL string `mapstructure:"eth_url" default:"https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=eur"`
	// FiatURL returns {"rates":{"USD":<rate>,"GBP":<rate>}} based on EUR.
	FiatURL string `mapstructure:"fiat_url" default:"https://api.exchangerate-api.com/v4/latest/EUR"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
