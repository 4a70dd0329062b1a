package sorare

// Config holds configuration for the Sorare API client.
type Config struct {
	// APIURL is the GraphQL endpoint.
	APIURL string `mapstructure:"api_url" default:"https://api.sorare.com/graphql"`
	// APIKey is sent in the APIKEY header.
	APIKey string `mapstructure:"api_key" default:""`
	// UserSlug is the gallery owner.
	UserSlug string `mapstructure:"user_slug" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
