package monitor

import (
	"context"
	"net/http"
	"time"

	"oppwatch/internal/classifier"
	"oppwatch/internal/datastore"
	"oppwatch/internal/errorwrapper"
	"oppwatch/internal/extractor"
	"oppwatch/internal/fingerprint"
	"oppwatch/internal/models"
	"oppwatch/internal/notifier"
	"oppwatch/internal/runhistory"

	"github.com/rs/zerolog"
)

// Fetcher is the narrow contract the core requires from the portal
// collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PageRenderer is the optional headless fallback for pages whose widget is
// built client-side.
type PageRenderer interface {
	Render(ctx context.Context, url string, cookies []*http.Cookie) (string, error)
}

// CookieSource exposes session cookies for handoff to the renderer. The
// portal client implements it; test fetchers usually do not.
type CookieSource interface {
	Cookies(url string) []*http.Cookie
}

// CheckerConfig wires the checker's collaborators. Renderer, Lock and
// History may be nil.
type CheckerConfig struct {
	TargetURL       string
	NotifyOnFailure bool

	Fetcher    Fetcher
	Renderer   PageRenderer
	Extractor  *extractor.Extractor
	Store      *datastore.StateStore
	Lock       *datastore.RunLock
	Classifier *classifier.Classifier
	Dispatcher *notifier.NotificationHelper
	History    *runhistory.Store
}

// CheckResult is the outcome of one run.
type CheckResult struct {
	Event     models.TransitionEvent
	Delivered int
	// Err is set only for run-level failures (fetch errors, lock
	// contention); absorbed conditions like persistence corruption never
	// surface here.
	Err error
}

// Checker executes one full check: fetch, extract, fingerprint, classify,
// notify, persist.
type Checker struct {
	cfg    CheckerConfig
	logger zerolog.Logger
}

// NewChecker creates a new Checker.
func NewChecker(cfg CheckerConfig, logger zerolog.Logger) (*Checker, error) {
	if cfg.TargetURL == "" {
		return nil, errorwrapper.NewValidationError("target_url", cfg.TargetURL, "target URL is required")
	}
	if cfg.Fetcher == nil || cfg.Extractor == nil || cfg.Store == nil || cfg.Classifier == nil || cfg.Dispatcher == nil {
		return nil, errorwrapper.NewError("checker is missing a required collaborator")
	}
	return &Checker{
		cfg:    cfg,
		logger: logger.With().Str("component", "Checker").Logger(),
	}, nil
}

// Check performs one run. The returned result's Err is non-nil only when
// the run itself failed; every other condition resolves to a classified
// event.
func (c *Checker) Check(ctx context.Context) CheckResult {
	startedAt := time.Now()

	if c.cfg.Lock != nil {
		if err := c.cfg.Lock.Acquire(); err != nil {
			c.logger.Warn().Err(err).Msg("Skipping run, could not acquire run lock")
			return CheckResult{Err: err}
		}
		defer c.cfg.Lock.Release()
	}

	markup, err := c.cfg.Fetcher.Fetch(ctx, c.cfg.TargetURL)
	if err != nil {
		return c.failRun(ctx, startedAt, err)
	}

	state := c.extractState(ctx, markup)
	current := fingerprint.FromState(state)
	previous := c.loadPrevious()

	event := c.cfg.Classifier.Classify(previous, current)
	delivered := c.cfg.Dispatcher.Dispatch(ctx, event)

	// The record is overwritten even on no-change runs so that free-text
	// drift inside an unchanged AVAILABLE state is absorbed instead of
	// resurfacing as a change on every subsequent run.
	if err := c.cfg.Store.Save(current); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist state record; this run's classification stands")
	}

	c.recordRun(startedAt, event, &current, delivered, nil)

	c.logger.Info().
		Str("category", string(event.Category)).
		Str("kind", string(current.Kind)).
		Bool("notified", delivered > 0).
		Msg("Check completed")
	return CheckResult{Event: event, Delivered: delivered}
}

// failRun classifies an upstream failure as an ERROR event. The persisted
// record is left untouched so the next successful run still detects a real
// transition against last-known-good state.
func (c *Checker) failRun(ctx context.Context, startedAt time.Time, err error) CheckResult {
	c.logger.Error().Err(err).Str("url", c.cfg.TargetURL).Msg("Fetch failed")

	event := c.cfg.Classifier.ClassifyFailure(err)
	if !c.cfg.NotifyOnFailure {
		event.Notify = false
	}
	delivered := c.cfg.Dispatcher.Dispatch(ctx, event)
	c.recordRun(startedAt, event, nil, delivered, err)
	return CheckResult{Event: event, Delivered: delivered, Err: err}
}

// extractState runs extraction over the static markup, falling back to the
// headless renderer when the widget region is missing entirely. A renderer
// failure keeps the fail-safe static result.
func (c *Checker) extractState(ctx context.Context, markup string) models.AvailabilityState {
	result := c.cfg.Extractor.Extract(markup)
	if result.RegionFound || c.cfg.Renderer == nil {
		return result.State
	}

	c.logger.Info().Msg("Widget not present in static markup, re-rendering with headless browser")

	var cookies []*http.Cookie
	if source, ok := c.cfg.Fetcher.(CookieSource); ok {
		cookies = source.Cookies(c.cfg.TargetURL)
	}

	rendered, err := c.cfg.Renderer.Render(ctx, c.cfg.TargetURL, cookies)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Headless render failed, keeping static extraction result")
		return result.State
	}

	if renderedResult := c.cfg.Extractor.Extract(rendered); renderedResult.RegionFound {
		return renderedResult.State
	}
	c.logger.Warn().Msg("Widget still missing from rendered page")
	return result.State
}

// loadPrevious reads the prior record, absorbing read failures into the
// first-run condition.
func (c *Checker) loadPrevious() *models.StateRecord {
	previous, err := c.cfg.Store.Load()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to read persisted state, treating as first run")
		return nil
	}
	return previous
}

func (c *Checker) recordRun(startedAt time.Time, event models.TransitionEvent, current *models.StateRecord, delivered int, runErr error) {
	if c.cfg.History == nil {
		return
	}

	entry := runhistory.Entry{
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Category:   event.Category,
		Notified:   delivered > 0,
	}
	if current != nil {
		entry.Kind = string(current.Kind)
		entry.Fingerprint = current.Fingerprint
	}
	if runErr != nil {
		entry.ErrorText = runErr.Error()
	}

	if err := c.cfg.History.RecordRun(entry); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to record run history entry")
	}
}
