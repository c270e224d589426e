package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/flickpulse/flickpulse/internal/config"
	"github.com/flickpulse/flickpulse/internal/models"
	"github.com/sirupsen/logrus"
)

// Client builds and performs catalog requests against the TMDB API.
// With a client-side credential it calls the upstream directly; without
// one it goes through the relay, which attaches the server credential.
type Client struct {
	baseURL    string
	relayBase  string
	apiKey     string // empty means relay mode
	httpClient *http.Client
	logger     *logrus.Logger
}

// Request describes one catalog request: the endpoint to fetch and the
// headers to send with it
type Request struct {
	Endpoint string
	Header   http.Header
}

// NewClient creates a new TMDB client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBBaseURL == "" {
		return nil, fmt.Errorf("TMDB base URL is required")
	}

	return &Client{
		baseURL:   cfg.TMDBBaseURL,
		relayBase: cfg.RelayBase,
		apiKey:    cfg.TMDBAPIKey,
		// No per-request timeout: a hung upstream call keeps the
		// caller's loading state until it returns.
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// BuildRequest constructs the endpoint and headers for a catalog
// request. A non-empty query builds a title search; an empty one builds
// a discover request sorted by descending popularity, with the filter's
// genre constraint when it has one.
func (c *Client) BuildRequest(query string, filter models.MediaFilter) Request {
	kind := filter.Kind()
	genreID := filter.GenreID()

	if c.apiKey != "" {
		endpoint := c.baseURL + upstreamPath(query, kind) + "?" + upstreamQuery(query, genreID)

		header := http.Header{}
		header.Set("accept", "application/json")
		header.Set("Authorization", "Bearer "+c.apiKey)
		return Request{Endpoint: endpoint, Header: header}
	}

	// No client credential: route through the relay, which holds the
	// server-side credential. The intended upstream path and query
	// string travel as request parameters.
	params := url.Values{}
	params.Set("path", upstreamPath(query, kind))
	params.Set("search", upstreamQuery(query, genreID))

	return Request{
		Endpoint: c.relayBase + "?" + params.Encode(),
		Header:   http.Header{},
	}
}

// upstreamPath selects the TMDB path for a query and media kind
func upstreamPath(query string, kind models.MediaKind) string {
	if query != "" {
		return "/search/" + string(kind)
	}
	return "/discover/" + string(kind)
}

// upstreamQuery builds the raw query string for a catalog request
func upstreamQuery(query string, genreID int) string {
	if query != "" {
		return "query=" + url.QueryEscape(query)
	}
	q := "sort_by=popularity.desc"
	if genreID != 0 {
		q += "&with_genres=" + strconv.Itoa(genreID)
	}
	return q
}

// FetchCatalog performs a catalog request and returns the normalized
// results. No retries: a failed or slow call propagates as-is.
func (c *Client) FetchCatalog(ctx context.Context, query string, filter models.MediaFilter) ([]models.MediaItem, error) {
	request := c.BuildRequest(query, filter)

	c.logger.WithFields(logrus.Fields{
		"endpoint": request.Endpoint,
		"filter":   filter,
	}).Debug("Fetching catalog")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, request.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = request.Header

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("catalog request returned status %d: %s", resp.StatusCode, string(body))
	}

	var catalog catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	items := make([]models.MediaItem, 0, len(catalog.Results))
	for _, raw := range catalog.Results {
		items = append(items, normalize(raw, filter.Kind()))
	}

	c.logger.WithField("count", len(items)).Debug("Catalog fetch completed")

	return items, nil
}
