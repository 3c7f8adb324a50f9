package fingerprint

import (
	"testing"

	"oppwatch/internal/models"

	"github.com/stretchr/testify/assert"
)

func available(names ...string) models.AvailabilityState {
	state := models.AvailabilityState{Kind: models.KindAvailable}
	for _, name := range names {
		state.Items = append(state.Items, models.OpportunityItem{Name: name})
	}
	return state
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		state    models.AvailabilityState
		expected string
	}{
		{
			name:     "empty state",
			state:    models.AvailabilityState{Kind: models.KindEmpty},
			expected: "",
		},
		{
			name: "empty state ignores stray items",
			state: models.AvailabilityState{
				Kind:  models.KindEmpty,
				Items: []models.OpportunityItem{{Name: "ghost"}},
			},
			expected: "",
		},
		{
			name:     "single item",
			state:    available("Program X"),
			expected: "Program X",
		},
		{
			name:     "multiple items joined in order",
			state:    available("Program X", "Program Y"),
			expected: "Program X,Program Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonicalize(tt.state))
		})
	}
}

func TestFromState_Deterministic(t *testing.T) {
	first := FromState(available("Program X", "Program Y"))
	second := FromState(available("Program X", "Program Y"))

	assert.Equal(t, first, second)
	assert.Len(t, first.Fingerprint, 32)
	assert.Equal(t, models.KindAvailable, first.Kind)
	assert.Equal(t, "Program X,Program Y", first.SerializedItems)
}

func TestFromState_OrderIsSignificant(t *testing.T) {
	forward := FromState(available("Program X", "Program Y"))
	reversed := FromState(available("Program Y", "Program X"))

	assert.NotEqual(t, forward.Fingerprint, reversed.Fingerprint)
}

func TestFromState_EmptyStatesCollapse(t *testing.T) {
	plain := FromState(models.AvailabilityState{Kind: models.KindEmpty})
	withStray := FromState(models.AvailabilityState{
		Kind:  models.KindEmpty,
		Items: []models.OpportunityItem{{Name: "ghost"}},
	})

	assert.Equal(t, plain.Fingerprint, withStray.Fingerprint)
	assert.Empty(t, plain.SerializedItems)
}

func TestFromState_KindDistinguishesIdenticalSerializations(t *testing.T) {
	// An AVAILABLE state with no item names serializes to "" just like
	// EMPTY; the kind prefix must keep their fingerprints apart.
	emptyKind := FromState(models.AvailabilityState{Kind: models.KindEmpty})
	availableKind := FromState(models.AvailabilityState{Kind: models.KindAvailable})

	assert.NotEqual(t, emptyKind.Fingerprint, availableKind.Fingerprint)
}
