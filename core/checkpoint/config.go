package checkpoint

// Config holds configuration for checkpoint persistence.
type Config struct {
	// Backend selects where checkpoints are kept: "file", "s3" or "redis".
	Backend string `mapstructure:"backend" default:"file"`
	// Dir is the directory used by the file backend.
	Dir string `mapstructure:"dir" default:".checkpoints"`
	// Prefix namespaces object names and redis keys.
	Prefix string `mapstructure:"prefix" default:"checkpoints"`
	// RedisAddr is the host:port of the redis server.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword is the redis password, if any.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB selects the redis logical database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
}
