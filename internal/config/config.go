package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"oppwatch/internal/errorwrapper"

	"gopkg.in/yaml.v3"
)

// GlobalConfig aggregates the per-concern configuration sections.
type GlobalConfig struct {
	Mode               string             `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,mode"`
	PortalConfig       PortalConfig       `json:"portal_config,omitempty" yaml:"portal_config,omitempty"`
	ExtractorConfig    ExtractorConfig    `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	MonitorConfig      MonitorConfig      `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	BrowserConfig      BrowserConfig      `json:"browser_config,omitempty" yaml:"browser_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig populated with defaults.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:               "onetime",
		PortalConfig:       NewDefaultPortalConfig(),
		ExtractorConfig:    NewDefaultExtractorConfig(),
		MonitorConfig:      NewDefaultMonitorConfig(),
		BrowserConfig:      NewDefaultBrowserConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		LogConfig:          NewDefaultLogConfig(),
	}
}

// GetConfigPath determines the configuration file path.
// Priority:
//  1. the -config command-line flag (passed in as providedPath)
//  2. the OPPWATCH_CONFIG_PATH environment variable
//  3. config.yaml / config.json in the current working directory
//  4. config.yaml / config.json in the executable's directory
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		if _, err := os.Stat(providedPath); err == nil {
			return providedPath
		}
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	var locations []string
	if cwd, err := os.Getwd(); err == nil {
		locations = append(locations, cwd)
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		if len(locations) == 0 || locations[0] != exeDir {
			locations = append(locations, exeDir)
		}
	}

	for _, loc := range locations {
		for _, file := range []string{"config.yaml", "config.json"} {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// A missing file is not an error: defaults are returned. The file format is
// chosen by extension, YAML preferred.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// ApplyEnvironment layers credentials from environment variables over the
// loaded configuration. Secrets are kept out of the config file on purpose.
func (cfg *GlobalConfig) ApplyEnvironment() {
	if v := os.Getenv(EnvPortalUsername); v != "" {
		cfg.PortalConfig.Username = v
	}
	if v := os.Getenv(EnvPortalPassword); v != "" {
		cfg.PortalConfig.Password = v
	}
	if v := os.Getenv(EnvSMTPPassword); v != "" {
		cfg.NotificationConfig.Email.Password = v
	}
	if v := os.Getenv(EnvPushbulletToken); v != "" {
		cfg.NotificationConfig.Pushbullet.Token = v
	}
}
