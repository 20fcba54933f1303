package metalarchives

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL points at the public REST gateway for the archive. Mirrors
// and self-hosted gateways can be selected through the base_url option.
const DefaultBaseURL = "https://metal-api.dev"

// notAvailableMarker is served in place of lyrics for tracks whose lyrics
// have not been submitted yet.
const notAvailableMarker = "(lyrics not available)"

// API is the surface of the archive the plugin consumes. It exists so the
// plugin and the CLI can be tested against a fake backend.
type API interface {
	// SearchAlbums runs a non-strict album search. Zero matches yield
	// ErrNoResults; transient failures yield a *RequestError.
	SearchAlbums(ctx context.Context, album, band string, opts SearchOptions) ([]SearchResult, error)

	// Album resolves a search handle or external id to a full release.
	Album(ctx context.Context, id string) (*Album, error)

	// Lyrics fetches the lyrics text for an external track id. Missing
	// lyrics yield ErrNotFound; instrumental tracks yield the
	// InstrumentalMarker text.
	Lyrics(ctx context.Context, trackID string) (string, error)
}

// SearchOptions narrows an album search.
type SearchOptions struct {
	Year   int  // restrict to releases from this year, 0 for any
	Strict bool // exact matching on both fields
}

// Client is the HTTP implementation of API.
type Client struct {
	logger     hclog.Logger
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	cache      *Cache
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL   string
	UserAgent string
	RateLimit float64 // requests per second against the gateway
	Cache     *Cache  // optional response cache
}

// NewClient creates an archive client.
func NewClient(logger hclog.Logger, opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1.0
	}
	return &Client{
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		cache:     opts.Cache,
	}
}

// BaseURL returns the gateway the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SearchAlbums(ctx context.Context, album, band string, opts SearchOptions) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("title", album)
	q.Set("band", band)
	if opts.Year > 0 {
		q.Set("year", fmt.Sprintf("%d", opts.Year))
	}
	if opts.Strict {
		q.Set("strict", "1")
	} else {
		q.Set("strict", "0")
	}

	var resp SearchResponse
	if err := c.getJSON(ctx, "/search/albums?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}
	return resp.Results, nil
}

func (c *Client) Album(ctx context.Context, id string) (*Album, error) {
	var album Album
	if err := c.getJSON(ctx, "/albums/"+url.PathEscape(id), &album); err != nil {
		return nil, err
	}
	return &album, nil
}

func (c *Client) Lyrics(ctx context.Context, trackID string) (string, error) {
	var resp LyricsResponse
	if err := c.getJSON(ctx, "/tracks/"+url.PathEscape(trackID)+"/lyrics", &resp); err != nil {
		return "", err
	}
	lyrics := strings.TrimSpace(resp.Lyrics)
	if lyrics == "" || lyrics == notAvailableMarker {
		return "", ErrNotFound
	}
	return lyrics, nil
}

// HealthCheck verifies the gateway is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	var resp SearchResponse
	if err := c.getJSON(ctx, "/search/albums?band=Metallica&strict=0&title=", &resp); IsTransient(err) {
		return err
	}
	// ErrNotFound / empty results still mean the gateway answered.
	return nil
}

// getJSON performs a rate-limited, cached GET and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	requestURL := c.baseURL + path

	if c.cache != nil {
		if data, ok := c.cache.Get(path); ok {
			c.logger.Debug("cache hit", "path", path)
			return json.Unmarshal(data, out)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &RequestError{URL: requestURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return &RequestError{URL: requestURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{URL: requestURL, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if c.cache != nil {
		c.cache.Put(path, body)
	}
	return nil
}
