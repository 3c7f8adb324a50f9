package datastore

import (
	"os"
	"path/filepath"
	"strings"

	"oppwatch/internal/errorwrapper"
	"oppwatch/internal/models"

	"github.com/rs/zerolog"
)

// recordDelimiter separates the three record fields. Item names may contain
// commas, so the outer delimiter is distinct from the item separator, and
// occurrences inside fields are escaped rather than silently corrupted.
const recordDelimiter = "|"

// StateStore persists the single last-observed state record for the
// monitored resource.
type StateStore struct {
	path   string
	logger zerolog.Logger
}

// NewStateStore creates a new StateStore backed by the given file path.
func NewStateStore(path string, logger zerolog.Logger) *StateStore {
	return &StateStore{
		path:   path,
		logger: logger.With().Str("component", "StateStore").Logger(),
	}
}

// Load reads the previously persisted record. A missing file is the
// expected first-run condition and returns (nil, nil). A corrupted record
// is logged and likewise resolved to (nil, nil) so one bad write can never
// wedge the monitor.
func (s *StateStore) Load() (*models.StateRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errorwrapper.WrapErrorf(err, "failed to read state file '%s'", s.path)
	}

	record, ok := parseRecord(strings.TrimRight(string(data), "\n"))
	if !ok {
		s.logger.Warn().Str("path", s.path).Msg("Persisted state record is corrupted, treating as first run")
		return nil, nil
	}
	return record, nil
}

// Save writes the record atomically (temp file + rename) so a crash
// mid-write never leaves an unreadable record behind.
func (s *StateStore) Save(record models.StateRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create state directory")
	}

	line := strings.Join([]string{
		escapeField(record.Fingerprint),
		escapeField(string(record.Kind)),
		escapeField(record.SerializedItems),
	}, recordDelimiter) + "\n"

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(line), 0644); err != nil {
		return errorwrapper.WrapErrorf(err, "failed to write temp state file '%s'", tmpPath)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errorwrapper.WrapErrorf(err, "failed to replace state file '%s'", s.path)
	}

	s.logger.Debug().Str("path", s.path).Str("kind", string(record.Kind)).Msg("State record saved")
	return nil
}

// parseRecord decodes one persisted line back into a record. Any structural
// surprise yields ok=false.
func parseRecord(line string) (*models.StateRecord, bool) {
	fields, ok := splitRecord(line)
	if !ok || len(fields) != 3 {
		return nil, false
	}

	kind := models.AvailabilityKind(fields[1])
	if fields[0] == "" || !kind.IsValid() {
		return nil, false
	}
	if kind == models.KindEmpty && fields[2] != "" {
		return nil, false
	}

	return &models.StateRecord{
		Fingerprint:     fields[0],
		Kind:            kind,
		SerializedItems: fields[2],
	}, true
}

// escapeField protects the delimiter and the escape character itself.
func escapeField(field string) string {
	field = strings.ReplaceAll(field, `\`, `\\`)
	field = strings.ReplaceAll(field, recordDelimiter, `\`+recordDelimiter)
	return field
}

// splitRecord splits on the unescaped delimiter and unescapes each field.
// A trailing bare escape character marks the line as corrupt.
func splitRecord(line string) ([]string, bool) {
	var fields []string
	var current strings.Builder

	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case string(r) == recordDelimiter:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		return nil, false
	}
	fields = append(fields, current.String())
	return fields, true
}
