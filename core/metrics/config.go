package metrics

// Config holds configuration for metrics publication.
type Config struct {
	// PushgatewayURL is the Pushgateway base URL. Empty disables pushing.
	PushgatewayURL string `mapstructure:"pushgateway_url" default:""`
	// Job is the Pushgateway job label.
	Job string `mapstructure:"job" default:"card-tracker"`
	// TimeoutSeconds bounds the push request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
