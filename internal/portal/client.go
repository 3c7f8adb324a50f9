package portal

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"oppwatch/internal/config"
	"oppwatch/internal/errorwrapper"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client fetches pages from the portal over an authenticated cookie
// session. It is a thin collaborator around the network; the core pipeline
// only ever sees the markup string it returns.
type Client struct {
	http     *resty.Client
	cfg      config.PortalConfig
	logger   zerolog.Logger
	loggedIn bool
}

// NewClient creates a new portal client with a cookie-jar session.
func NewClient(cfg config.PortalConfig, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetHeader("User-Agent", cfg.UserAgent).
		SetTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)

	if cfg.InsecureSkipVerify {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		http:   httpClient,
		cfg:    cfg,
		logger: logger.With().Str("component", "PortalClient").Logger(),
	}
}

// loginPayloads returns the form payload variants tried against each login
// endpoint. The portal has changed its field names across revisions, so the
// client walks the known spellings.
func (c *Client) loginPayloads() []map[string]string {
	return []map[string]string{
		{"Username": c.cfg.Username, "Password": c.cfg.Password},
		{"username": c.cfg.Username, "password": c.cfg.Password},
		{"email": c.cfg.Username, "password": c.cfg.Password},
	}
}

// Login walks the configured login endpoints with each payload variant
// until one response looks authenticated. Exact auth protocol correctness
// is not the goal here; a failed login degrades to a guest session.
func (c *Client) Login(ctx context.Context) error {
	if c.cfg.Username == "" || c.cfg.Password == "" {
		return errorwrapper.NewError("portal credentials are not configured")
	}

	for _, path := range c.cfg.LoginPaths {
		loginURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
		for _, payload := range c.loginPayloads() {
			resp, err := c.http.R().
				SetContext(ctx).
				SetFormData(payload).
				Post(loginURL)
			if err != nil {
				c.logger.Debug().Err(err).Str("url", loginURL).Msg("Login attempt failed")
				continue
			}
			if c.looksAuthenticated(resp) {
				c.logger.Info().Str("url", loginURL).Msg("Portal login succeeded")
				c.loggedIn = true
				return nil
			}
		}
	}
	return errorwrapper.NewError("all login attempts against '%s' failed", c.cfg.BaseURL)
}

// looksAuthenticated applies the success heuristics: a redirect with a
// session cookie, or a page that carries a logout/dashboard marker.
func (c *Client) looksAuthenticated(resp *resty.Response) bool {
	status := resp.StatusCode()
	if status != http.StatusOK && status != http.StatusFound {
		return false
	}
	if status == http.StatusFound && len(resp.Cookies()) > 0 {
		return true
	}
	body := strings.ToLower(string(resp.Body()))
	return strings.Contains(body, "logout") ||
		strings.Contains(body, "dashboard") ||
		strings.Contains(body, "welcome")
}

// Fetch retrieves the markup at the given URL. The first fetch on a session
// with configured credentials triggers a login attempt; a failed login is
// logged and the fetch proceeds as guest.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if !c.loggedIn && c.cfg.Username != "" && c.cfg.Password != "" {
		if err := c.Login(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("Login failed, fetching as guest")
		}
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", errorwrapper.NewNetworkError(url, "HTTP request failed", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", errorwrapper.NewHTTPError(resp.StatusCode(), url, truncate(string(resp.Body()), 1024))
	}
	c.logger.Debug().Str("url", url).Int("size", len(resp.Body())).Msg("Page fetched")
	return string(resp.Body()), nil
}

// Cookies exposes the session cookies for the given URL so the headless
// fallback can reuse the authenticated session.
func (c *Client) Cookies(rawURL string) []*http.Cookie {
	httpClient := c.http.GetClient()
	if httpClient.Jar == nil {
		return nil
	}
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil
	}
	return httpClient.Jar.Cookies(req.URL)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
