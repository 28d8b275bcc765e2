// Package newsapi provides a client for the NewsAPI top-headlines endpoint.
//
// This package enables the dashboard to:
// - Fetch headlines for a category, or for a free-text query
// - Serve bundled demo articles when no API key is configured
package newsapi

// Article is a news article as returned by NewsAPI.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

// Source names the publisher of an article.
type Source struct {
	Name string `json:"name"`
}

// Query selects which headlines to fetch.
// When Q is set the category is ignored.
type Query struct {
	Category string
	Q        string
}
