package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/rastogi30/Personalized-Dashboard/internal/transport"
)

const (
	defaultBaseURL  = "https://newsapi.org"
	defaultCategory = "technology"
	pageSize        = 20

	// DemoKey is the placeholder key that selects the bundled demo data.
	DemoKey = "demo-key"
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithAPIKey sets the NewsAPI key. Empty or DemoKey selects demo data.
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

// WithClock sets the time source used to date demo articles.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// Client is a NewsAPI client.
type Client struct {
	apiKey    string
	baseURL   string
	requester *transport.Requester
	now       func() time.Time
}

// NewClient creates a new NewsAPI client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		requester: transport.New("newsapi"),
		now:       time.Now,
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

// FetchHeadlines retrieves top headlines for the query.
func (c *Client) FetchHeadlines(ctx context.Context, q Query) ([]Article, error) {
	if c.DemoMode() {
		return filterArticles(demoArticles(c.now()), q.Q), nil
	}

	params := url.Values{}
	if q.Q != "" {
		params.Set("q", q.Q)
	} else {
		category := q.Category
		if category == "" {
			category = defaultCategory
		}
		params.Set("category", category)
	}
	params.Set("apiKey", c.apiKey)
	params.Set("pageSize", fmt.Sprint(pageSize))

	body, err := c.requester.Get(ctx, c.baseURL+"/v2/top-headlines?"+params.Encode())
	if err != nil {
		return nil, c.handleAPIError(err)
	}

	var response headlinesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse headlines response: %w", err)
	}
	if response.Status == "error" {
		return nil, fmt.Errorf("NewsAPI error: %s", response.Message)
	}

	if response.Articles == nil {
		return []Article{}, nil
	}
	return response.Articles, nil
}

// headlinesResponse is the NewsAPI envelope (private - implementation detail).
type headlinesResponse struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

func (c *Client) handleAPIError(err error) error {
	var statusErr *transport.StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("NewsAPI request failed: %w", err)
	}
	switch statusErr.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("NewsAPI rejected the API key - check NEWS_API_KEY: %w", err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("NewsAPI rate limit exceeded - please try again later: %w", err)
	default:
		return fmt.Errorf("failed to fetch news: %w", err)
	}
}

func filterArticles(articles []Article, q string) []Article {
	if q == "" {
		return articles
	}
	needle := strings.ToLower(q)
	return lo.Filter(articles, func(a Article, _ int) bool {
		return strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Description), needle)
	})
}

func demoArticles(now time.Time) []Article {
	const day = 24 * time.Hour
	return []Article{
		{
			Title:       "Breaking: AI Technology Advances in 2025",
			Description: "Artificial Intelligence continues to transform industries with groundbreaking innovations.",
			URL:         "https://example.com/ai-advances-2025",
			URLToImage:  "https://images.pexels.com/photos/8386440/pexels-photo-8386440.jpeg?auto=compress&cs=tinysrgb&w=800",
			PublishedAt: now.UTC().Format(time.RFC3339),
			Source:      Source{Name: "Tech News"},
		},
		{
			Title:       "Sustainable Technology Solutions Emerge",
			Description: "New eco-friendly technologies are helping combat climate change.",
			URL:         "https://example.com/sustainable-tech",
			URLToImage:  "https://images.pexels.com/photos/9800029/pexels-photo-9800029.jpeg?auto=compress&cs=tinysrgb&w=800",
			PublishedAt: now.Add(-day).UTC().Format(time.RFC3339),
			Source:      Source{Name: "Green Tech Today"},
		},
		{
			Title:       "Quantum Computing Breakthrough",
			Description: "Scientists achieve major milestone in quantum computing research.",
			URL:         "https://example.com/quantum-breakthrough",
			URLToImage:  "https://images.pexels.com/photos/2881232/pexels-photo-2881232.jpeg?auto=compress&cs=tinysrgb&w=800",
			PublishedAt: now.Add(-2 * day).UTC().Format(time.RFC3339),
			Source:      Source{Name: "Science Daily"},
		},
	}
}
