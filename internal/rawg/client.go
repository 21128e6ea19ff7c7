package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client calls a RAWG-style game catalog API over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
}

// Cache is an optional read-through byte cache consulted before the network.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// APIError represents a provider error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog provider: %s (status %d)", e.Message, e.Status)
}

// NewClient constructs a catalog client. cache may be nil.
func NewClient(baseURL, apiKey string, cache Cache) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
	}
}

// GamesQuery narrows a catalog browse. Zero values are omitted from the
// request.
type GamesQuery struct {
	Page     int
	PageSize int
	Search   string
	Genres   string // comma-separated genre slugs
	Ordering string // e.g. "-released", "-added"
	Dates    string // "YYYY-MM-DD,YYYY-MM-DD" range
}

// Games fetches one page of game summaries.
func (c *Client) Games(ctx context.Context, q GamesQuery) (*GamesPage, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Genres != "" {
		params.Set("genres", q.Genres)
	}
	if q.Ordering != "" {
		params.Set("ordering", q.Ordering)
	}
	if q.Dates != "" {
		params.Set("dates", q.Dates)
	}

	var page GamesPage
	if err := c.get(ctx, "/games", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Game fetches the full detail record for one game.
func (c *Client) Game(ctx context.Context, id string) (*GameDetails, error) {
	var details GameDetails
	if err := c.get(ctx, "/games/"+url.PathEscape(id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// DLCs fetches the additions (DLCs and editions) of a game.
func (c *Client) DLCs(ctx context.Context, id string) ([]GameSummary, error) {
	var page GamesPage
	if err := c.get(ctx, "/games/"+url.PathEscape(id)+"/additions", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Genres fetches the provider's genre catalog.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var page genresPage
	if err := c.get(ctx, "/genres", nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	requestURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	// Cache key excludes the credential.
	cacheKey := path
	if q := withoutKey(params); q != "" {
		cacheKey += "?" + q
	}
	if c.cache != nil {
		if raw, ok, err := c.cache.Get(ctx, cacheKey); err == nil && ok {
			return json.Unmarshal(raw, out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read catalog response failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode catalog response failed: %w", err)
	}
	if c.cache != nil {
		// Only decodable bodies are cached; cache failures are not worth
		// failing the request over.
		_ = c.cache.Set(ctx, cacheKey, body)
	}
	return nil
}

// errorMessage pulls a human-readable message out of a provider error body,
// falling back to the HTTP status text.
func errorMessage(body []byte, statusText string) string {
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return statusText
}

func withoutKey(params url.Values) string {
	filtered := url.Values{}
	for name, values := range params {
		if name == "key" {
			continue
		}
		filtered[name] = values
	}
	return filtered.Encode()
}
