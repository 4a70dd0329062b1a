package storage

// Config holds the S3 compatible endpoint used by the "s3" checkpoint backend.
type Config struct {
	// Endpoint is host:port, with or without a scheme.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:""`
	SecretKey string `mapstructure:"secret_key" default:""`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds one object per checkpoint namespace. It is created on
	// first use.
	Bucket string `mapstructure:"bucket" default:"card-tracker"`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, the TLS handshake and the first
	// response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
