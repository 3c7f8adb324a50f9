package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"oppwatch/internal/models"
)

// itemSeparator joins item names in the canonical serialization. Extraction
// order is significant: reordered items fingerprint as a change.
const itemSeparator = ","

// Canonicalize produces the stable serialization of a state's item names.
// EMPTY states always canonicalize to the empty string regardless of any
// stray items, so every EMPTY observation collapses to one fingerprint.
func Canonicalize(state models.AvailabilityState) string {
	if state.Kind == models.KindEmpty {
		return ""
	}
	return strings.Join(state.ItemNames(), itemSeparator)
}

// FromState reduces an AvailabilityState to its persisted record. The hash
// is a content fingerprint, not a security boundary, so md5 is sufficient.
func FromState(state models.AvailabilityState) models.StateRecord {
	serialized := Canonicalize(state)
	sum := md5.Sum([]byte(string(state.Kind) + ":" + serialized))
	return models.StateRecord{
		Fingerprint:     hex.EncodeToString(sum[:]),
		Kind:            state.Kind,
		SerializedItems: serialized,
	}
}
