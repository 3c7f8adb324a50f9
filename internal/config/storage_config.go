package config

// StorageConfig defines where run state lives on disk.
type StorageConfig struct {
	// StateFilePath holds the single persisted state record.
	StateFilePath string `json:"state_file_path,omitempty" yaml:"state_file_path,omitempty" validate:"omitempty,min=1"`
	// RunLockFilePath is the advisory lock guarding against overlapping
	// invocations.
	RunLockFilePath string `json:"run_lock_file_path,omitempty" yaml:"run_lock_file_path,omitempty"`
	// RunHistoryDBPath is the sqlite run-history database. Empty disables
	// run-history recording.
	RunHistoryDBPath string `json:"run_history_db_path,omitempty" yaml:"run_history_db_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		StateFilePath:    DefaultStateFilePath,
		RunLockFilePath:  DefaultRunLockFilePath,
		RunHistoryDBPath: DefaultRunHistoryDBPath,
	}
}
