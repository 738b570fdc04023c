package config

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	DiscordWebhookURL string `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	Username          string `json:"username,omitempty" yaml:"username,omitempty"`
	AttachSummary     bool   `json:"attach_summary" yaml:"attach_summary"`
	OnlyOnFailure     bool   `json:"only_on_failure" yaml:"only_on_failure"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL: "",
		Username:          DefaultNotificationUsername,
		AttachSummary:     true,
		OnlyOnFailure:     false,
	}
}

// Enabled reports whether a webhook is configured
func (nc *NotificationConfig) Enabled() bool {
	return nc.DiscordWebhookURL != ""
}
