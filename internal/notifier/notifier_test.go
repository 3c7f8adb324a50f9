package notifier

import (
	"context"
	"errors"
	"testing"

	"oppwatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubNotifier struct {
	name   string
	err    error
	events []models.TransitionEvent
}

func (s *stubNotifier) Name() string { return s.name }

func (s *stubNotifier) Notify(_ context.Context, event models.TransitionEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func TestDispatch_SkipsNonNotifyEvents(t *testing.T) {
	channel := &stubNotifier{name: "stub"}
	helper := NewNotificationHelper(zerolog.Nop(), channel)

	delivered := helper.Dispatch(context.Background(), models.TransitionEvent{
		Category: models.CategoryNoChange,
		Notify:   false,
	})

	assert.Zero(t, delivered)
	assert.Empty(t, channel.events)
}

func TestDispatch_FansOutToAllChannels(t *testing.T) {
	first := &stubNotifier{name: "first"}
	second := &stubNotifier{name: "second"}
	helper := NewNotificationHelper(zerolog.Nop(), first, second)

	event := models.TransitionEvent{Category: models.CategoryNewAvailability, Notify: true}
	delivered := helper.Dispatch(context.Background(), event)

	assert.Equal(t, 2, delivered)
	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 1)
}

func TestDispatch_FailedChannelDoesNotStopOthers(t *testing.T) {
	failing := &stubNotifier{name: "failing", err: errors.New("smtp timeout")}
	working := &stubNotifier{name: "working"}
	helper := NewNotificationHelper(zerolog.Nop(), failing, working)

	event := models.TransitionEvent{Category: models.CategoryNewAvailability, Notify: true}
	delivered := helper.Dispatch(context.Background(), event)

	assert.Equal(t, 1, delivered)
	assert.Len(t, working.events, 1)
}

func TestDispatch_NoChannelsConfigured(t *testing.T) {
	helper := NewNotificationHelper(zerolog.Nop())

	delivered := helper.Dispatch(context.Background(), models.TransitionEvent{
		Category: models.CategoryNewAvailability,
		Notify:   true,
	})

	assert.Zero(t, delivered)
}
