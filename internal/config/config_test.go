package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, "onetime", cfg.Mode)
	assert.Equal(t, DefaultPortalTargetURL, cfg.PortalConfig.TargetURL)
	assert.Equal(t, DefaultWidgetID, cfg.ExtractorConfig.WidgetID)
	assert.Equal(t, DefaultSentinelText, cfg.ExtractorConfig.SentinelText)
	assert.False(t, cfg.ExtractorConfig.TreatBlankWidgetAsEmpty)
	assert.Equal(t, 15*time.Minute, cfg.MonitorConfig.Interval())
	assert.Equal(t, DefaultStateFilePath, cfg.StorageConfig.StateFilePath)
	assert.True(t, cfg.NotificationConfig.NotifyOnFailure)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultWidgetID, cfg.ExtractorConfig.WidgetID)
}

func TestLoadGlobalConfig_YAMLOverridesDefaults(t *testing.T) {
	content := `
mode: automated
extractor_config:
  widget_id: customwidget
  treat_blank_widget_as_empty: true
monitor_config:
  check_interval_seconds: 60
storage_config:
  state_file_path: /tmp/state.txt
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "automated", cfg.Mode)
	assert.Equal(t, "customwidget", cfg.ExtractorConfig.WidgetID)
	assert.True(t, cfg.ExtractorConfig.TreatBlankWidgetAsEmpty)
	assert.Equal(t, time.Minute, cfg.MonitorConfig.Interval())
	assert.Equal(t, "/tmp/state.txt", cfg.StorageConfig.StateFilePath)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultSentinelText, cfg.ExtractorConfig.SentinelText)
	assert.Equal(t, DefaultSMTPServer, cfg.NotificationConfig.Email.SMTPServer)
}

func TestLoadGlobalConfig_JSONByExtension(t *testing.T) {
	content := `{"mode": "automated", "portal_config": {"target_url": "https://example.com/portal"}}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "automated", cfg.Mode)
	assert.Equal(t, "https://example.com/portal", cfg.PortalConfig.TargetURL)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: [unclosed"), 0644))

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(cfg *GlobalConfig) {}, wantErr: false},
		{
			name:    "unknown mode",
			mutate:  func(cfg *GlobalConfig) { cfg.Mode = "continuous" },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad target url",
			mutate:  func(cfg *GlobalConfig) { cfg.PortalConfig.TargetURL = "not a url" },
			wantErr: true,
		},
		{
			name:    "negative check interval rejected",
			mutate:  func(cfg *GlobalConfig) { cfg.MonitorConfig.CheckIntervalSeconds = -5 },
			wantErr: true,
		},
		{
			name: "email enabled without from address",
			mutate: func(cfg *GlobalConfig) {
				cfg.NotificationConfig.Email.Enabled = true
			},
			wantErr: true,
		},
		{
			name: "email enabled with from address",
			mutate: func(cfg *GlobalConfig) {
				cfg.NotificationConfig.Email.Enabled = true
				cfg.NotificationConfig.Email.FromAddress = "watcher@example.com"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvPortalUsername, "agent@example.com")
	t.Setenv(EnvPortalPassword, "hunter2")
	t.Setenv(EnvSMTPPassword, "app-password")
	t.Setenv(EnvPushbulletToken, "o.token")

	cfg := NewDefaultGlobalConfig()
	cfg.ApplyEnvironment()

	assert.Equal(t, "agent@example.com", cfg.PortalConfig.Username)
	assert.Equal(t, "hunter2", cfg.PortalConfig.Password)
	assert.Equal(t, "app-password", cfg.NotificationConfig.Email.Password)
	assert.Equal(t, "o.token", cfg.NotificationConfig.Pushbullet.Token)
}

func TestGetConfigPath_EnvironmentVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: onetime\n"), 0644))
	t.Setenv(EnvConfigPath, path)

	assert.Equal(t, path, GetConfigPath(""))
}

func TestGetConfigPath_FlagBeatsEnvironment(t *testing.T) {
	flagPath := filepath.Join(t.TempDir(), "flag.yaml")
	envPath := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(flagPath, []byte("mode: onetime\n"), 0644))
	require.NoError(t, os.WriteFile(envPath, []byte("mode: onetime\n"), 0644))
	t.Setenv(EnvConfigPath, envPath)

	assert.Equal(t, flagPath, GetConfigPath(flagPath))
}
