package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"modelswitch/internal/metrics"
	"modelswitch/pkg/types"
)

// TagsPath is the catalog endpoint relative to the backend base URL.
const TagsPath = "/api/tags"

// maxBodyBytes caps how much of the catalog response is read.
const maxBodyBytes = 8 << 20

var errBodyTooLarge = fmt.Errorf("catalog response exceeds %d MiB", maxBodyBytes>>20)

// Client queries a backend for its model catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	metrics    *metrics.Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client. Its Timeout is used as-is.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithMetrics records fetch duration and failures on r.
func WithMetrics(r *metrics.Recorder) Option { return func(c *Client) { c.metrics = r } }

// New creates a Client for baseURL. Each request is bounded by timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch requests the catalog once and returns it sorted by name.
// It never retries. An empty catalog is reported as KindEmpty.
func (c *Client) Fetch(ctx context.Context) ([]types.Model, error) {
	url := c.baseURL + TagsPath
	c.log.Debug().Str("url", url).Dur("timeout", c.httpClient.Timeout).Msg("fetching catalog")

	start := time.Now()
	body, err := c.get(ctx, url)
	if errors.Is(err, errBodyTooLarge) {
		return nil, c.fail(KindMalformed, err)
	}
	if err != nil {
		return nil, c.fail(KindUnreachable, err)
	}
	models, err := decode(body)
	if err != nil {
		return nil, c.fail(KindMalformed, err)
	}
	elapsed := time.Since(start)
	c.metrics.ObserveFetch(elapsed, len(models))
	c.log.Debug().Int("models", len(models)).Dur("took", elapsed).Msg("catalog fetched")

	if len(models) == 0 {
		return nil, c.fail(KindEmpty, nil)
	}
	Sort(models)
	for _, m := range models {
		ev := c.log.Trace().Str("name", m.Name).Int64("size", m.Size)
		if m.Details != nil {
			ev = ev.Str("family", m.Details.Family).Str("params", m.Details.ParameterSize).Str("quant", m.Details.QuantizationLevel)
		}
		ev.Msg("catalog entry")
	}
	return models, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, snippet(body))
	}
	if len(body) > maxBodyBytes {
		return nil, errBodyTooLarge
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty response body")
	}
	return body, nil
}

func (c *Client) fail(kind Kind, err error) error {
	c.metrics.FetchFailed(kind.String())
	return &Error{Kind: kind, URL: c.baseURL, Err: err}
}

// decode parses a /api/tags body. The models field must be present and every
// entry must carry a name; a missing size decodes as zero.
func decode(body []byte) ([]types.Model, error) {
	var raw struct {
		Models *[]types.Model `json:"models"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if raw.Models == nil {
		return nil, errors.New(`missing "models" field`)
	}
	models := *raw.Models
	for i, m := range models {
		if m.Name == "" {
			return nil, fmt.Errorf("entry %d has no name", i)
		}
	}
	return models, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
