package notify

// Config holds configuration for Telegram notifications.
type Config struct {
	// BotToken is the Telegram bot token. Empty disables notifications.
	BotToken string `mapstructure:"bot_token" default:""`
	// ChatID is the destination chat.
	ChatID string `mapstructure:"chat_id" default:""`
	// APIURL is the Telegram Bot API base URL.
	APIURL string `mapstructure:"api_url" default:"https://api.telegram.org"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Enabled reports whether both the token and chat id are set.
func (c Config) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}
