package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/vietdv277/cirrus/pkg/provider"
)

const defaultTimeout = 30 * time.Second

// Client is a JSON client for the cluster management REST API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     oauth2.TokenSource
	logger     *zap.Logger
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithToken authenticates every request with a static bearer token
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		}
	}
}

// WithClientCredentials obtains tokens with the OAuth2 client credentials
// flow against tokenURL
func WithClientCredentials(clientID, clientSecret, tokenURL string, scopes ...string) Option {
	return func(c *Client) {
		cfg := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}
		c.tokens = cfg.TokenSource(context.Background())
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the API rooted at endpoint
func NewClient(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("api endpoint required")
	}
	u, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api endpoint %q: scheme and host required", endpoint)
	}

	c := &Client{
		baseURL: u,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.tokens != nil {
		base := c.httpClient
		c.httpClient = &http.Client{
			Timeout:   base.Timeout,
			Transport: &oauth2.Transport{Source: c.tokens, Base: base.Transport},
		}
	}
	return c, nil
}

// Endpoint returns the API base URL
func (c *Client) Endpoint() string {
	return c.baseURL.String()
}

// Error is a non-2xx API response
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Is reports 404 responses as provider.ErrNotFound
func (e *Error) Is(target error) bool {
	return target == provider.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// do sends a request and decodes a JSON response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if len(data) > 0 {
			if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil {
				apiErr.Message = strings.TrimSpace(string(data))
			}
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
