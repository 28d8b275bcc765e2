package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/rastogi30/Personalized-Dashboard/internal/transport"
)

const (
	defaultBaseURL = "https://api.themoviedb.org"

	// DemoKey is the placeholder key that selects the bundled demo data.
	DemoKey = "demo-key"
)

// ErrQueryRequired is returned by Search when the query is empty.
var ErrQueryRequired = errors.New("query parameter required")

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithAPIKey sets the TMDB API key. Empty or DemoKey selects demo data.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithRequester sets the transport used for live requests.
func WithRequester(r *transport.Requester) ClientOption {
	return func(c *Client) {
		c.requester = r
	}
}

// Client is a TMDB API client.
type Client struct {
	apiKey    string
	baseURL   string
	requester *transport.Requester
}

// NewClient creates a new TMDB client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		requester: transport.New("tmdb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DemoMode reports whether the client serves bundled demo data.
func (c *Client) DemoMode() bool {
	return c.apiKey == "" || c.apiKey == DemoKey
}

// Fetch searches when query is set and returns trending movies otherwise.
func (c *Client) Fetch(ctx context.Context, query string) ([]Movie, error) {
	if query != "" {
		return c.Search(ctx, query)
	}
	return c.Trending(ctx)
}

// Trending retrieves today's trending movies.
func (c *Client) Trending(ctx context.Context) ([]Movie, error) {
	if c.DemoMode() {
		return demoTrending(), nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	return c.fetchResults(ctx, "/3/trending/movie/day?"+params.Encode())
}

// Search finds movies whose title matches query.
func (c *Client) Search(ctx context.Context, query string) ([]Movie, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}
	if c.DemoMode() {
		return filterByTitle(demoSearch(), query), nil
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	return c.fetchResults(ctx, "/3/search/movie?"+params.Encode())
}

func (c *Client) fetchResults(ctx context.Context, path string) ([]Movie, error) {
	body, err := c.requester.Get(ctx, c.baseURL+path)
	if err != nil {
		return nil, c.handleAPIError(err)
	}

	var response resultsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse movies response: %w", err)
	}
	if response.Results == nil {
		return []Movie{}, nil
	}
	return response.Results, nil
}

// resultsResponse is the TMDB list envelope (private - implementation detail).
type resultsResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

func (c *Client) handleAPIError(err error) error {
	var statusErr *transport.StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("TMDB rejected the API key - check TMDB_API_KEY: %w", err)
	case http.StatusNotFound:
		return fmt.Errorf("TMDB resource not found: %w", err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("TMDB rate limit exceeded - please try again later: %w", err)
	default:
		return fmt.Errorf("failed to fetch movies: %w", err)
	}
}

func filterByTitle(movies []Movie, query string) []Movie {
	needle := strings.ToLower(query)
	return lo.Filter(movies, func(m Movie, _ int) bool {
		return strings.Contains(strings.ToLower(m.Title), needle)
	})
}

func demoTrending() []Movie {
	return []Movie{
		{
			ID:           1,
			Title:        "The Future Chronicles",
			Overview:     "A thrilling sci-fi adventure set in the year 2050, exploring the boundaries of technology and humanity.",
			PosterPath:   "/demo-movie-1.jpg",
			BackdropPath: "/demo-backdrop-1.jpg",
			ReleaseDate:  "2025-01-15",
			VoteAverage:  8.2,
		},
		{
			ID:           2,
			Title:        "Ocean's Mystery",
			Overview:     "Deep sea explorers discover an ancient civilization beneath the Pacific Ocean.",
			PosterPath:   "/demo-movie-2.jpg",
			BackdropPath: "/demo-backdrop-2.jpg",
			ReleaseDate:  "2025-02-20",
			VoteAverage:  7.8,
		},
		{
			ID:           3,
			Title:        "Digital Dreams",
			Overview:     "A programmer discovers that reality might be nothing more than an elaborate simulation.",
			PosterPath:   "/demo-movie-3.jpg",
			BackdropPath: "/demo-backdrop-3.jpg",
			ReleaseDate:  "2025-03-10",
			VoteAverage:  9.1,
		},
	}
}

func demoSearch() []Movie {
	return []Movie{
		{
			ID:          1,
			Title:       "The Future Chronicles",
			Overview:    "A thrilling sci-fi adventure set in the year 2050.",
			PosterPath:  "/demo-movie-1.jpg",
			ReleaseDate: "2025-01-15",
			VoteAverage: 8.2,
		},
	}
}
