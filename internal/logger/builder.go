package logger

import (
	"io"
	stdlog "log"

	"oppwatch/internal/config"
	"oppwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
)

// LoggerBuilder provides a fluent interface for building loggers
type LoggerBuilder struct {
	config LoggerConfig
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{config: DefaultLoggerConfig()}
}

// WithConfig sets the logger configuration
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.config.Level = parseLevel(cfg.LogLevel)
	lb.config.Format = parseFormat(cfg.LogFormat)
	lb.config.EnableConsole = true
	lb.config.EnableFile = cfg.LogFile != ""
	lb.config.FilePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		lb.config.MaxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		lb.config.MaxBackups = cfg.MaxLogBackups
	}
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	if err := lb.validateConfig(); err != nil {
		return zerolog.Logger{}, err
	}

	writers := lb.createWriters()
	if len(writers) == 0 {
		return zerolog.Logger{}, errorwrapper.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.config.Level)

	// Route the standard log package through zerolog as well.
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}
	if lb.config.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}
	return nil
}

func (lb *LoggerBuilder) createWriters() []io.Writer {
	var writers []io.Writer
	if lb.config.EnableConsole {
		writers = append(writers, newConsoleWriter(lb.config.Format))
	}
	if lb.config.EnableFile {
		writers = append(writers, newFileWriter(lb.config))
	}
	return writers
}
