package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/transync-cli/internal/core/domain"
	"github.com/custodia-labs/transync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/transync-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.TranslationServer = (*Client)(nil)

const (
	// APIVersion is the REST API version this client speaks.
	APIVersion = "1.8.0"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	headerUser    = "X-Auth-User"
	headerToken   = "X-Auth-Token"
	headerVersion = "X-Auth-Version"
)

// Config holds the connection settings for a server.
type Config struct {
	URL      string
	Username string
	APIKey   string

	// RequestsPerSecond throttles outgoing requests. Zero uses
	// DefaultRequestsPerSecond; a negative value disables throttling.
	RequestsPerSecond float64

	// Timeout bounds a single request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Client talks to a translation server.
type Client struct {
	http     *resty.Client
	throttle *Throttle
	baseURL  string

	mu            sync.Mutex
	serverVersion string
}

// NewClient creates a client and verifies the credentials by fetching the
// server version. A mismatch with APIVersion is only a warning.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	info, err := c.fetchVersion(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("client API version: %s, server API version: %s", APIVersion, info.VersionNo)
	if info.VersionNo != APIVersion {
		logger.Warn("client API version is %s, but server API version is %s", APIVersion, info.VersionNo)
	}
	return c, nil
}

func newClient(cfg Config) (*Client, error) {
	base, err := normaliseBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	rps := cfg.RequestsPerSecond
	if rps == 0 {
		rps = DefaultRequestsPerSecond
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	throttle := NewThrottle(rps)
	hc := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader(headerUser, cfg.Username).
		SetHeader(headerToken, cfg.APIKey).
		SetHeader(headerVersion, APIVersion).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			return throttle.Wait(r.Context())
		})
	if cfg.Transport != nil {
		hc.SetTransport(cfg.Transport)
	}

	return &Client{http: hc, throttle: throttle, baseURL: base}, nil
}

// normaliseBaseURL validates the server URL and appends a missing
// trailing slash.
func normaliseBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: server URL is required", domain.ErrInvalidConfig)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid server URL %q", domain.ErrInvalidConfig, raw)
	}
	if !strings.HasSuffix(raw, "/") {
		fixed := raw + "/"
		logger.Warn("Appending '/' to base URL '%s': using '%s'", raw, fixed)
		return fixed, nil
	}
	return raw, nil
}

// BaseURL returns the normalised server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ServerVersion returns the version reported by the server, if fetched.
func (c *Client) ServerVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverVersion
}

func (c *Client) fetchVersion(ctx context.Context) (versionInfo, error) {
	var info versionInfo
	_, err := c.do(ctx, c.http.R().SetResult(&info), http.MethodGet, "rest/version")
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return versionInfo{}, ErrIncorrectCredentials
		}
		return versionInfo{}, fmt.Errorf("fetch server version: %w", err)
	}

	c.mu.Lock()
	c.serverVersion = info.VersionNo
	c.mu.Unlock()
	return info, nil
}

// do executes a request and converts non-2xx responses into errors.
func (c *Client) do(ctx context.Context, req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if err := c.throttle.Observe(resp.RawResponse); err != nil {
		return resp, err
	}
	if resp.IsError() {
		return resp, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(resp),
			URL:        resp.Request.URL,
		}
	}
	return resp, nil
}

func errorMessage(resp *resty.Response) string {
	if body := strings.TrimSpace(resp.String()); body != "" {
		return body
	}
	return resp.Status()
}

func projectPath(project, version string) string {
	return "rest/projects/p/" + url.PathEscape(project) + "/iterations/i/" + url.PathEscape(version) + "/r"
}

func documentPath(project, version, docName string) string {
	return projectPath(project, version) + "/" + docID(docName)
}

func extParams(exts domain.ExtensionSet) url.Values {
	values := url.Values{}
	for _, ext := range exts {
		values.Add("ext", ext)
	}
	return values
}
