package config

import (
	"reflect"
	"strings"

	"card-tracker/core/checkpoint"
	"card-tracker/core/database"
	"card-tracker/core/fx"
	"card-tracker/core/logger"
	"card-tracker/core/metrics"
	"card-tracker/core/notify"
	"card-tracker/core/sorare"
	"card-tracker/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Sorare holds configuration for the GraphQL API client.
	Sorare sorare.Config `mapstructure:"sorare"`
	// Database holds configuration for the sheet store connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Checkpoint selects where resumable runs keep their cursor.
	Checkpoint checkpoint.Config `mapstructure:"checkpoint"`
	// Telegram holds configuration for run notifications.
	Telegram notify.Config `mapstructure:"telegram"`
	// FX holds configuration for the exchange rate sources.
	FX fx.Config `mapstructure:"fx"`
	// Metrics holds configuration for metrics publication.
	Metrics metrics.Config `mapstructure:"metrics"`
	// Jobs tunes the batch operations.
	Jobs JobsConfig `mapstructure:"jobs"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SORARE_API_KEY -> sorare.api_key)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
