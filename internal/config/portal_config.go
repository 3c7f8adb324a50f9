package config

// PortalConfig defines how the portal collaborator reaches the monitored
// resource. Username and Password are filled from the environment, never
// from the config file.
type PortalConfig struct {
	BaseURL            string   `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	TargetURL          string   `json:"target_url,omitempty" yaml:"target_url,omitempty" validate:"omitempty,url"`
	LoginPaths         []string `json:"login_paths,omitempty" yaml:"login_paths,omitempty"`
	UserAgent          string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	TimeoutSecs        int      `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	Username string `json:"-" yaml:"-"`
	Password string `json:"-" yaml:"-"`
}

// NewDefaultPortalConfig creates default portal configuration
func NewDefaultPortalConfig() PortalConfig {
	return PortalConfig{
		BaseURL:   DefaultPortalBaseURL,
		TargetURL: DefaultPortalTargetURL,
		LoginPaths: []string{
			"/Account/Login",
			"/login",
			"/signin",
		},
		UserAgent:   DefaultPortalUserAgent,
		TimeoutSecs: DefaultPortalTimeoutSecs,
	}
}
