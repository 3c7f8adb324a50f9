package models

// AvailabilityKind describes whether the monitored widget currently lists
// any opportunities.
type AvailabilityKind string

const (
	KindEmpty     AvailabilityKind = "EMPTY"
	KindAvailable AvailabilityKind = "AVAILABLE"
)

// IsValid reports whether the kind is one of the two known values.
func (k AvailabilityKind) IsValid() bool {
	return k == KindEmpty || k == KindAvailable
}

// PlaceholderItemName is used when availability is confirmed but row-level
// detail extraction yielded nothing. Invariant: an AVAILABLE state never
// carries an empty item list.
const PlaceholderItemName = "items available, details unknown"

// OpportunityItem is a single listed opportunity.
type OpportunityItem struct {
	Name   string
	Detail string // optional, e.g. an associated file name
}

// AvailabilityState is the result of one inspection of the widget.
// Invariant: Kind == KindEmpty implies Items is empty.
type AvailabilityState struct {
	Kind  AvailabilityKind
	Items []OpportunityItem
}

// ItemNames returns the item names in extraction order.
func (s AvailabilityState) ItemNames() []string {
	names := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		names = append(names, item.Name)
	}
	return names
}

// StateRecord is the persisted form of an AvailabilityState. It is the only
// entity that survives between runs.
type StateRecord struct {
	Fingerprint     string
	Kind            AvailabilityKind
	SerializedItems string
}

// Equal reports whether two records carry the same fingerprint and kind.
func (r StateRecord) Equal(other StateRecord) bool {
	return r.Kind == other.Kind && r.Fingerprint == other.Fingerprint
}
