package aggregator

import (
	"fmt"

	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/social"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

// Per-provider caps applied before normalizing, so no provider dominates.
const (
	MaxNews   = 10
	MaxMovies = 8
	MaxPosts  = 6
)

const (
	posterBaseURL  = "https://image.tmdb.org/t/p/w500"
	movieURLFormat = "https://www.themoviedb.org/movie/%d"
	postURLFormat  = "https://jsonplaceholder.typicode.com/posts/%d"
)

// Cap returns at most max leading records.
func Cap[T any](records []T, max int) []T {
	if len(records) > max {
		return records[:max]
	}
	return records
}

// NormalizeNews maps articles to items. Articles carry no stable id, so the
// position in the response is used.
func NormalizeNews(articles []newsapi.Article) []Item {
	items := make([]Item, 0, len(articles))
	for i, a := range articles {
		items = append(items, Item{
			ID:          fmt.Sprintf("news-%d", i),
			Kind:        KindNews,
			Title:       a.Title,
			Description: a.Description,
			Image:       a.URLToImage,
			Link:        a.URL,
			Meta: NewsMeta{
				SourceName:  a.Source.Name,
				PublishedAt: a.PublishedAt,
			},
		})
	}
	return items
}

// NormalizeMovies maps TMDB movies to items.
func NormalizeMovies(movies []tmdb.Movie) []Item {
	items := make([]Item, 0, len(movies))
	for _, m := range movies {
		image := ""
		if m.PosterPath != "" {
			image = posterBaseURL + m.PosterPath
		}
		items = append(items, Item{
			ID:          fmt.Sprintf("movie-%d", m.ID),
			Kind:        KindMovie,
			Title:       m.Title,
			Description: m.Overview,
			Image:       image,
			Link:        fmt.Sprintf(movieURLFormat, m.ID),
			Meta: MovieMeta{
				ReleaseDate: m.ReleaseDate,
				VoteAverage: m.VoteAverage,
			},
		})
	}
	return items
}

// NormalizePosts maps social posts to items. Posts have no image.
func NormalizePosts(posts []social.Post) []Item {
	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, Item{
			ID:          fmt.Sprintf("social-%d", p.ID),
			Kind:        KindSocial,
			Title:       p.Title,
			Description: p.Body,
			Link:        fmt.Sprintf(postURLFormat, p.ID),
			Meta:        SocialMeta{UserID: p.UserID},
		})
	}
	return items
}
