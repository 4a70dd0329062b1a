// Package notify sends short run reports to a chat.
//
// Telegram is the only channel. When no bot token or chat id is configured,
// New returns a notifier that drops messages. Send errors are for the caller
// to log; Report does that and never fails.
package notify
