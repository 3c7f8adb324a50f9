package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newConsoleWriter(format LogFormat) io.Writer {
	switch format {
	case FormatJSON:
		return os.Stderr
	case FormatText:
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
}

// newFileWriter creates a size-rotated file writer. Console formatting is
// forced colorless when written to a file.
func newFileWriter(cfg LoggerConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		// Fall back to stderr rather than dropping logs entirely.
		return os.Stderr
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}

	switch cfg.Format {
	case FormatConsole, FormatText:
		return zerolog.ConsoleWriter{Out: rotated, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return rotated
	}
}
