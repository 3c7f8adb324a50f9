package config

// BrowserConfig defines configuration for the headless browser fallback,
// used when the statically fetched page does not contain the widget because
// it is rendered by JavaScript after load.
type BrowserConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	ChromePath      string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	UserDataDir     string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	PageTimeoutSecs int    `json:"page_timeout_secs,omitempty" yaml:"page_timeout_secs,omitempty" validate:"omitempty,min=1"`
	// WidgetWaitSecs is how long to allow widget AJAX rendering after the
	// page load event before capturing the DOM.
	WidgetWaitSecs int  `json:"widget_wait_secs,omitempty" yaml:"widget_wait_secs,omitempty" validate:"omitempty,min=0"`
	DisableImages  bool `json:"disable_images" yaml:"disable_images"`
}

// NewDefaultBrowserConfig creates default browser configuration
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Enabled:         false,
		PageTimeoutSecs: DefaultBrowserPageTimeoutSecs,
		WidgetWaitSecs:  DefaultBrowserWidgetWaitSecs,
		DisableImages:   true,
	}
}
