package social

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/rastogi30/Personalized-Dashboard/internal/transport"
)

const (
	defaultBaseURL = "https://jsonplaceholder.typicode.com"

	// MaxPosts is the most posts a single fetch returns.
	MaxPosts = 20
)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the feed host (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithRequester sets the transport used for requests.
func WithRequester(r *transport.Requester) ClientOption {
	return func(c *Client) {
		c.requester = r
	}
}

// Client fetches posts from a JSONPlaceholder-compatible API.
type Client struct {
	baseURL   string
	requester *transport.Requester
}

// NewClient creates a new social posts client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		requester: transport.New("social"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPosts retrieves posts, keeping those whose title or body contains
// query (case-insensitive), limited to MaxPosts.
func (c *Client) FetchPosts(ctx context.Context, query string) ([]Post, error) {
	body, err := c.requester.Get(ctx, c.baseURL+"/posts")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch social posts: %w", err)
	}

	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse posts response: %w", err)
	}

	posts = filterPosts(posts, query)
	if len(posts) > MaxPosts {
		posts = posts[:MaxPosts]
	}
	return posts, nil
}

func filterPosts(posts []Post, query string) []Post {
	needle := strings.ToLower(query)
	return lo.Filter(posts, func(p Post, _ int) bool {
		return needle == "" ||
			strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Body), needle)
	})
}
