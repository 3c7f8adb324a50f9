package classifier

import (
	"fmt"
	"time"

	"oppwatch/internal/models"

	"github.com/rs/zerolog"
)

// Classifier maps the (previous, current) record pair onto a transition
// category. Classification is two-level: kind equality first, fingerprint
// equality only within an unchanged AVAILABLE kind. Comparing fingerprints
// across kinds would let incidental text near the sentinel masquerade as a
// real transition.
type Classifier struct {
	logger zerolog.Logger
}

// NewClassifier creates a new Classifier.
func NewClassifier(logger zerolog.Logger) *Classifier {
	return &Classifier{
		logger: logger.With().Str("component", "Classifier").Logger(),
	}
}

// Classify is a pure decision over the transition table; calling it twice
// with the same pair yields the same event.
func (c *Classifier) Classify(previous *models.StateRecord, current models.StateRecord) models.TransitionEvent {
	event := models.TransitionEvent{
		Previous:   previous,
		Current:    &current,
		OccurredAt: time.Now(),
	}

	switch {
	case previous == nil:
		event.Category = models.CategoryFirstRun
		// First-run availability is worth surfacing immediately; a
		// first-run empty widget is not.
		event.Notify = current.Kind == models.KindAvailable
		if event.Notify {
			event.Message = fmt.Sprintf("First check: opportunities already listed: %s", current.SerializedItems)
		} else {
			event.Message = "First check: no opportunities listed, baseline recorded"
		}

	case previous.Kind == models.KindEmpty && current.Kind == models.KindAvailable:
		event.Category = models.CategoryNewAvailability
		event.Notify = true
		event.Message = fmt.Sprintf("New opportunities available: %s", current.SerializedItems)

	case previous.Kind == models.KindAvailable && current.Kind == models.KindEmpty:
		event.Category = models.CategoryAvailabilityCleared
		event.Notify = true
		event.Message = fmt.Sprintf("Opportunities are no longer listed (previously: %s)", previous.SerializedItems)

	case previous.Kind == models.KindAvailable && previous.Fingerprint != current.Fingerprint:
		event.Category = models.CategoryAvailabilityChanged
		event.Notify = true
		event.Message = fmt.Sprintf("Opportunity listings changed: %s -> %s", previous.SerializedItems, current.SerializedItems)

	default:
		event.Category = models.CategoryNoChange
		event.Message = "No change detected"
	}

	c.logger.Debug().
		Str("category", string(event.Category)).
		Bool("notify", event.Notify).
		Msg("Transition classified")
	return event
}

// ClassifyFailure turns an upstream fetch/extract failure into an ERROR
// event. The persisted record is deliberately left untouched by the caller
// so the next successful run still classifies against last-known-good
// state.
func (c *Classifier) ClassifyFailure(err error) models.TransitionEvent {
	return models.TransitionEvent{
		Category:   models.CategoryError,
		Notify:     true,
		Message:    fmt.Sprintf("Monitor run failed: %v", err),
		OccurredAt: time.Now(),
	}
}
