// Package social provides a client for the JSONPlaceholder posts feed.
package social

// Post represents a social post.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
