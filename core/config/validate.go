package config

import (
	"fmt"
	"strings"

	"card-tracker/core/checkpoint"
	"card-tracker/core/database"
)

// Operations.
const (
	OpSync         = "sync"
	OpUpdateCards  = "update-cards"
	OpUpdateSales  = "update-sales"
	OpRenderCharts = "render-charts"
	OpCheckLineups = "check-lineups"
	OpCheckpoint   = "checkpoint"
)

// MissingFieldsError lists every required key that is missing or invalid.
type MissingFieldsError struct {
	Operation string
	Fields    []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("incomplete configuration for %s: %s", e.Operation, strings.Join(e.Fields, ", "))
}

// Validate checks that everything op needs is configured.
func (c *Config) Validate(op string) error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	usesSorare := op == OpSync || op == OpUpdateCards || op == OpUpdateSales || op == OpCheckLineups
	usesCheckpoint := op == OpUpdateCards || op == OpUpdateSales || op == OpCheckpoint
	usesStore := op != OpCheckpoint

	if usesSorare {
		require("sorare.api_url", c.Sorare.APIURL)
		require("sorare.api_key", c.Sorare.APIKey)
	}
	if op == OpSync || op == OpCheckLineups {
		require("sorare.user_slug", c.Sorare.UserSlug)
	}

	if usesStore {
		require("database.driver", c.Database.Driver)
		require("database.name", c.Database.Name)
		if c.Database.Driver == database.DriverMySQL || c.Database.Driver == database.DriverPostgres {
			require("database.host", c.Database.Host)
			require("database.user", c.Database.User)
		}
	}

	if usesCheckpoint {
		switch c.Checkpoint.Backend {
		case checkpoint.BackendFile, "":
			require("checkpoint.dir", c.Checkpoint.Dir)
		case checkpoint.BackendS3:
			require("storage.endpoint", c.Storage.Endpoint)
			require("storage.access_key", c.Storage.AccessKey)
			require("storage.secret_key", c.Storage.SecretKey)
			require("storage.bucket", c.Storage.Bucket)
		case checkpoint.BackendRedis:
			require("checkpoint.redis_addr", c.Checkpoint.RedisAddr)
		default:
			missing = append(missing, fmt.Sprintf("checkpoint.backend (unsupported %q)", c.Checkpoint.Backend))
		}
	}

	if op == OpUpdateCards || op == OpUpdateSales {
		if _, err := c.Jobs.Location(); err != nil {
			missing = append(missing, fmt.Sprintf("jobs.timezone (unknown zone %q)", c.Jobs.Timezone))
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Operation: op, Fields: missing}
	}
	return nil
}
