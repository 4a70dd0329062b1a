// Package config provides configuration management for the card tracker.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Sorare: GraphQL endpoint, API key and gallery owner
//   - Database: driver and connection details of the sheet store
//   - Storage: S3/MinIO credentials for the s3 checkpoint backend
//   - Checkpoint: checkpoint backend selection
//   - Telegram: run notifications
//   - FX: exchange rate sources
//   - Metrics: Pushgateway publication
//   - Jobs: budgets, pacing and history sizes of the batch operations
//   - Log: Logging level and format
//
// Keys map to environment variables by upper-casing and replacing dots with
// underscores, so sorare.api_key is read from SORARE_API_KEY.
//
// # Validation
//
// Each command calls Validate with its operation name. All missing keys are
// reported together in a single *MissingFieldsError.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(config.OpUpdateSales); err != nil {
//	    log.Fatal(err)
//	}
package config
