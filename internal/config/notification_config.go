package config

// EmailConfig defines SMTP delivery settings. Password comes from the
// environment.
type EmailConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	SMTPServer  string `json:"smtp_server,omitempty" yaml:"smtp_server,omitempty"`
	SMTPPort    int    `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	FromAddress string `json:"from_address,omitempty" yaml:"from_address,omitempty" validate:"omitempty,email"`
	// ToAddress defaults to FromAddress when empty (alert yourself).
	ToAddress string `json:"to_address,omitempty" yaml:"to_address,omitempty" validate:"omitempty,email"`
	Password  string `json:"-" yaml:"-"`
}

// PushbulletConfig defines push delivery settings. Token comes from the
// environment.
type PushbulletConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Token   string `json:"-" yaml:"-"`
}

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	Email           EmailConfig      `json:"email,omitempty" yaml:"email,omitempty"`
	Pushbullet      PushbulletConfig `json:"pushbullet,omitempty" yaml:"pushbullet,omitempty"`
	NotifyOnFailure bool             `json:"notify_on_failure" yaml:"notify_on_failure"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Email: EmailConfig{
			SMTPServer: DefaultSMTPServer,
			SMTPPort:   DefaultSMTPPort,
		},
		NotifyOnFailure: true,
	}
}
