package aggregator

import (
	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/social"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

// Aggregator keeps the latest normalized collection of each provider and
// merges them on demand.
//
// Any source may still be empty; a feed built from one or two providers is a
// normal state. Aggregator is not safe for concurrent use.
type Aggregator struct {
	news   []Item
	movies []Item
	posts  []Item
}

// New creates a new Aggregator instance.
func New() *Aggregator {
	return &Aggregator{
		news:   make([]Item, 0),
		movies: make([]Item, 0),
		posts:  make([]Item, 0),
	}
}

// SetNews replaces the news collection.
func (a *Aggregator) SetNews(articles []newsapi.Article) {
	a.news = NormalizeNews(Cap(articles, MaxNews))
}

// SetMovies replaces the movie collection.
func (a *Aggregator) SetMovies(movies []tmdb.Movie) {
	a.movies = NormalizeMovies(Cap(movies, MaxMovies))
}

// SetPosts replaces the social collection.
func (a *Aggregator) SetPosts(posts []social.Post) {
	a.posts = NormalizePosts(Cap(posts, MaxPosts))
}

// Feed recomputes the full merged collection.
func (a *Aggregator) Feed() []Item {
	return Merge(a.news, a.movies, a.posts)
}

// Counts returns the number of items held per kind.
func (a *Aggregator) Counts() map[Kind]int {
	return map[Kind]int{
		KindNews:   len(a.news),
		KindMovie:  len(a.movies),
		KindSocial: len(a.posts),
	}
}
