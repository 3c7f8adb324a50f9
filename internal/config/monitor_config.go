package config

import "time"

// MonitorConfig defines configuration for the periodic check loop.
type MonitorConfig struct {
	CheckIntervalSeconds int           `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"omitempty,min=1"`
	CheckInterval        time.Duration `json:"-" yaml:"-"`
	// MaxCycles bounds the automated mode; 0 means run indefinitely.
	MaxCycles int `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		CheckIntervalSeconds: DefaultCheckIntervalSeconds,
		CheckInterval:        time.Duration(DefaultCheckIntervalSeconds) * time.Second,
		MaxCycles:            DefaultMaxCycles,
	}
}

// Interval returns the effective check interval.
func (c MonitorConfig) Interval() time.Duration {
	if c.CheckIntervalSeconds > 0 {
		return time.Duration(c.CheckIntervalSeconds) * time.Second
	}
	if c.CheckInterval > 0 {
		return c.CheckInterval
	}
	return time.Duration(DefaultCheckIntervalSeconds) * time.Second
}
