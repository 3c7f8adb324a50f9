package notifier

import (
	"context"

	"oppwatch/internal/models"

	"github.com/rs/zerolog"
)

// Notifier delivers one transition event over a single channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, event models.TransitionEvent) error
}

// NotificationHelper fans one event out to every configured channel.
// Delivery is best-effort: a failed channel is logged and the run carries
// on, because the classification for this run already stands.
type NotificationHelper struct {
	notifiers []Notifier
	logger    zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper.
func NewNotificationHelper(logger zerolog.Logger, notifiers ...Notifier) *NotificationHelper {
	return &NotificationHelper{
		notifiers: notifiers,
		logger:    logger.With().Str("component", "NotificationHelper").Logger(),
	}
}

// Dispatch sends the event to all channels. Non-notify-worthy events are
// skipped. It returns the number of successful deliveries.
func (h *NotificationHelper) Dispatch(ctx context.Context, event models.TransitionEvent) int {
	if !event.Notify {
		return 0
	}
	if len(h.notifiers) == 0 {
		h.logger.Warn().Str("category", string(event.Category)).Msg("Notify-worthy event but no notification channels configured")
		return 0
	}

	delivered := 0
	for _, n := range h.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			h.logger.Error().Err(err).Str("channel", n.Name()).Str("category", string(event.Category)).Msg("Notification delivery failed")
			continue
		}
		h.logger.Info().Str("channel", n.Name()).Str("category", string(event.Category)).Msg("Notification sent")
		delivered++
	}
	return delivered
}
