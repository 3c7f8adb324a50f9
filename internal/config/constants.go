package config

const (
	// Portal Defaults
	DefaultPortalBaseURL     = "https://link.arise.com"
	DefaultPortalTargetURL   = "https://link.arise.com/reference"
	DefaultPortalUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultPortalTimeoutSecs = 30

	// Extractor Defaults
	DefaultWidgetID     = "opportunityannouncementwidget"
	DefaultSentinelText = "No Data"

	// Monitor Defaults
	DefaultCheckIntervalSeconds = 900 // 15 minutes
	DefaultMaxCycles            = 0   // 0 means run indefinitely

	// Browser Defaults
	DefaultBrowserPageTimeoutSecs = 60
	DefaultBrowserWidgetWaitSecs  = 8

	// Storage Defaults
	DefaultStateFilePath    = "data/previous_state.txt"
	DefaultRunLockFilePath  = "data/oppwatch.lock"
	DefaultRunHistoryDBPath = "data/run_history.db"

	// Notification Defaults
	DefaultSMTPServer = "smtp.gmail.com"
	DefaultSMTPPort   = 587

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Environment variables consulted at startup. Credentials never live in
	// the config file.
	EnvConfigPath      = "OPPWATCH_CONFIG_PATH"
	EnvPortalUsername  = "OPPWATCH_PORTAL_USERNAME"
	EnvPortalPassword  = "OPPWATCH_PORTAL_PASSWORD"
	EnvSMTPPassword    = "OPPWATCH_SMTP_PASSWORD"
	EnvPushbulletToken = "OPPWATCH_PUSHBULLET_TOKEN"
)
