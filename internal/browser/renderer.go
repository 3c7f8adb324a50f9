package browser

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"oppwatch/internal/config"
	"oppwatch/internal/errorwrapper"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// Renderer loads a page in a headless browser so widgets built client-side
// after the load event still appear in the captured markup. It reuses the
// portal session's cookies, so login happens exactly once, over HTTP.
type Renderer struct {
	cfg    config.BrowserConfig
	logger zerolog.Logger
}

// NewRenderer creates a new Renderer.
func NewRenderer(cfg config.BrowserConfig, logger zerolog.Logger) *Renderer {
	return &Renderer{
		cfg:    cfg,
		logger: logger.With().Str("component", "BrowserRenderer").Logger(),
	}
}

// Render navigates to the URL with the given session cookies, waits for the
// widget AJAX to settle, and returns the rendered DOM as markup. A fresh
// browser is launched per call; one render per scheduling interval does not
// justify keeping a pool alive.
func (r *Renderer) Render(ctx context.Context, pageURL string, cookies []*http.Cookie) (string, error) {
	browserLauncher := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", "1920,1080")

	if r.cfg.ChromePath != "" {
		browserLauncher = browserLauncher.Bin(r.cfg.ChromePath)
	}
	if r.cfg.UserDataDir != "" {
		browserLauncher = browserLauncher.UserDataDir(r.cfg.UserDataDir)
	}
	if r.cfg.DisableImages {
		browserLauncher = browserLauncher.Set("blink-settings", "imagesEnabled=false")
	}

	controlURL, err := browserLauncher.Launch()
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to launch headless browser")
	}
	defer browserLauncher.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", errorwrapper.WrapError(err, "failed to connect to headless browser")
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			r.logger.Warn().Err(closeErr).Msg("Failed to close headless browser")
		}
	}()

	if err := browser.SetCookies(cookieParams(pageURL, cookies)); err != nil {
		return "", errorwrapper.WrapError(err, "failed to set session cookies in browser")
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", errorwrapper.WrapErrorf(err, "failed to open page '%s'", pageURL)
	}
	page = page.Timeout(time.Duration(r.cfg.PageTimeoutSecs) * time.Second)

	if err := page.WaitLoad(); err != nil {
		return "", errorwrapper.WrapError(err, "page load did not complete")
	}

	// The widget is populated by AJAX after the load event; give it a
	// bounded settle window.
	if r.cfg.WidgetWaitSecs > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(r.cfg.WidgetWaitSecs) * time.Second):
		}
	}

	markup, err := page.HTML()
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to capture rendered page")
	}

	r.logger.Debug().Str("url", pageURL).Int("size", len(markup)).Msg("Page rendered via headless browser")
	return markup, nil
}

// cookieParams converts session cookies into browser cookie parameters,
// defaulting the domain to the page host when the jar did not record one.
func cookieParams(pageURL string, cookies []*http.Cookie) []*proto.NetworkCookieParam {
	host := ""
	if parsed, err := url.Parse(pageURL); err == nil {
		host = parsed.Hostname()
	}

	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, cookie := range cookies {
		domain := cookie.Domain
		if domain == "" {
			domain = host
		}
		path := cookie.Path
		if path == "" {
			path = "/"
		}
		params = append(params, &proto.NetworkCookieParam{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: domain,
			Path:   path,
			Secure: cookie.Secure,
		})
	}
	return params
}
