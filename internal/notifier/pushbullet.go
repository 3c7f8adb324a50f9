package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"oppwatch/internal/config"
	"oppwatch/internal/errorwrapper"
	"oppwatch/internal/models"

	"github.com/rs/zerolog"
)

const pushbulletPushURL = "https://api.pushbullet.com/v2/pushes"

// pushbulletPayload is the note-type push request body.
type pushbulletPayload struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PushbulletNotifier delivers events as phone push notifications.
type PushbulletNotifier struct {
	cfg        config.PushbulletConfig
	formatter  *Formatter
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewPushbulletNotifier creates a new PushbulletNotifier.
func NewPushbulletNotifier(cfg config.PushbulletConfig, formatter *Formatter, httpClient *http.Client, logger zerolog.Logger) *PushbulletNotifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &PushbulletNotifier{
		cfg:        cfg,
		formatter:  formatter,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "PushbulletNotifier").Logger(),
	}
}

// Name implements Notifier.
func (n *PushbulletNotifier) Name() string { return "pushbullet" }

// Notify implements Notifier.
func (n *PushbulletNotifier) Notify(ctx context.Context, event models.TransitionEvent) error {
	if n.cfg.Token == "" {
		return errorwrapper.NewError("pushbullet notifier is missing an access token")
	}

	payload, err := json.Marshal(pushbulletPayload{
		Type:  "note",
		Title: n.formatter.Subject(event),
		Body:  n.formatter.Body(event),
	})
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal pushbullet payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pushbulletPushURL, bytes.NewReader(payload))
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create pushbullet request")
	}
	req.Header.Set("Access-Token", n.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errorwrapper.NewNetworkError(pushbulletPushURL, "push request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errorwrapper.NewHTTPError(resp.StatusCode, pushbulletPushURL, string(body))
	}
	return nil
}
