package aggregator

import (
	"github.com/samber/lo"

	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/social"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

// Sources holds one raw response per provider. Nil means "no items".
type Sources struct {
	News   []newsapi.Article
	Movies []tmdb.Movie
	Posts  []social.Post
}

// Merge concatenates news, then movies, then social items.
//
// The order is fixed and never shuffled, so identical input renders
// identically. If a provider repeats one of its own ids, the first
// occurrence wins.
func Merge(news, movies, posts []Item) []Item {
	merged := make([]Item, 0, len(news)+len(movies)+len(posts))
	merged = append(merged, news...)
	merged = append(merged, movies...)
	merged = append(merged, posts...)
	return lo.UniqBy(merged, func(item Item) string {
		return item.ID
	})
}

// Build caps, normalizes and merges one merge pass.
func Build(src Sources) []Item {
	return Merge(
		NormalizeNews(Cap(src.News, MaxNews)),
		NormalizeMovies(Cap(src.Movies, MaxMovies)),
		NormalizePosts(Cap(src.Posts, MaxPosts)),
	)
}
