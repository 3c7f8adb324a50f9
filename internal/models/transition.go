package models

import "time"

// TransitionCategory classifies the change between two consecutive
// availability states.
type TransitionCategory string

const (
	CategoryFirstRun            TransitionCategory = "FIRST_RUN"
	CategoryNewAvailability     TransitionCategory = "NEW_AVAILABILITY"
	CategoryAvailabilityCleared TransitionCategory = "AVAILABILITY_CLEARED"
	CategoryAvailabilityChanged TransitionCategory = "AVAILABILITY_CHANGED"
	CategoryNoChange            TransitionCategory = "NO_CHANGE"
	CategoryError               TransitionCategory = "ERROR"
)

// TransitionEvent is produced once per run. Notify indicates whether the
// event is worth surfacing to the configured notification channels.
type TransitionEvent struct {
	Category   TransitionCategory
	Previous   *StateRecord // nil on the first run
	Current    *StateRecord // nil for ERROR events
	Message    string
	Notify     bool
	OccurredAt time.Time
}
