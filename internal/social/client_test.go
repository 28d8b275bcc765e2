// Package social tests document the expected behavior of the posts client.
//
// Test requirements (this file serves as documentation):
// - Client requests /posts from the configured host
// - Client filters by query on title and body, case-insensitively
// - Client limits results to 20 posts
// - Client returns errors on HTTP failures and malformed JSON
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/rastogi30/Personalized-Dashboard/internal/transport"
)

func testClient(serverURL string) *Client {
	return NewClient(
		WithBaseURL(serverURL),
		WithRequester(transport.New("social",
			transport.WithRateLimit(rate.Inf, 1),
			transport.WithMaxRetries(0),
		)),
	)
}

func postsServer(t *testing.T, posts []Post) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("expected /posts, got %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(posts)
	}))
}

// TestClient_FetchPosts_ReturnsParsedPosts documents JSON parsing:
// - id, userId, title and body are mapped onto Post
func TestClient_FetchPosts_ReturnsParsedPosts(t *testing.T) {
	server := postsServer(t, []Post{{ID: 7, UserID: 3, Title: "hello", Body: "world"}})
	defer server.Close()

	posts, err := testClient(server.URL).FetchPosts(context.Background(), "")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0] != (Post{ID: 7, UserID: 3, Title: "hello", Body: "world"}) {
		t.Errorf("unexpected post: %+v", posts[0])
	}
}

// TestClient_FetchPosts_FiltersByQuery documents search behavior:
// - query matches title or body regardless of case
func TestClient_FetchPosts_FiltersByQuery(t *testing.T) {
	server := postsServer(t, []Post{
		{ID: 1, Title: "Qui est esse", Body: "nothing"},
		{ID: 2, Title: "other", Body: "contains ESSE in body"},
		{ID: 3, Title: "unrelated", Body: "unrelated"},
	})
	defer server.Close()

	posts, err := testClient(server.URL).FetchPosts(context.Background(), "esse")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 1 || posts[1].ID != 2 {
		t.Errorf("expected posts 1 and 2 in order, got %+v", posts)
	}
}

// TestClient_FetchPosts_RespectsLimit documents the cap:
// - feed has more than 20 posts -> only the first 20 are returned
func TestClient_FetchPosts_RespectsLimit(t *testing.T) {
	many := make([]Post, 100)
	for i := range many {
		many[i] = Post{ID: i + 1, UserID: 1, Title: fmt.Sprintf("post %d", i+1)}
	}
	server := postsServer(t, many)
	defer server.Close()

	posts, err := testClient(server.URL).FetchPosts(context.Background(), "")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != MaxPosts {
		t.Errorf("expected %d posts, got %d", MaxPosts, len(posts))
	}
	if posts[0].ID != 1 || posts[MaxPosts-1].ID != MaxPosts {
		t.Error("limit should keep the first posts in order")
	}
}

// TestClient_FetchPosts_ReturnsErrorOnHTTPError documents HTTP error handling
func TestClient_FetchPosts_ReturnsErrorOnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchPosts(context.Background(), "")

	if err == nil {
		t.Fatal("expected error for HTTP 404, got nil")
	}
}

// TestClient_FetchPosts_ReturnsErrorOnInvalidJSON documents parse error handling
func TestClient_FetchPosts_ReturnsErrorOnInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not json <<garbage>>")
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchPosts(context.Background(), "")

	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

// TestClient_FetchPosts_EmptyQueryKeepsAll documents the unfiltered case:
// - no query -> every post, in feed order
func TestClient_FetchPosts_EmptyQueryKeepsAll(t *testing.T) {
	server := postsServer(t, []Post{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}})
	defer server.Close()

	posts, err := testClient(server.URL).FetchPosts(context.Background(), "")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 3 || posts[1].ID != 1 {
		t.Errorf("expected both posts in feed order, got %+v", posts)
	}
}
