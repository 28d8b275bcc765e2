package aggregator

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/social"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

func articles(n int) []newsapi.Article {
	out := make([]newsapi.Article, n)
	for i := range out {
		out[i] = newsapi.Article{Title: fmt.Sprintf("article %d", i), URL: fmt.Sprintf("https://news.example/%d", i)}
	}
	return out
}

func movies(n int) []tmdb.Movie {
	out := make([]tmdb.Movie, n)
	for i := range out {
		out[i] = tmdb.Movie{ID: 100 + i, Title: fmt.Sprintf("movie %d", i)}
	}
	return out
}

func posts(n int) []social.Post {
	out := make([]social.Post, n)
	for i := range out {
		out[i] = social.Post{ID: i + 1, UserID: 1, Title: fmt.Sprintf("post %d", i)}
	}
	return out
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestAC200_Feed_OrdersNewsThenMoviesThenSocial(t *testing.T) {
	feed := Build(Sources{News: articles(2), Movies: movies(1), Posts: posts(1)})

	want := []string{"news-0", "news-1", "movie-100", "social-1"}
	got := ids(feed)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("user should see %v, got %v", want, got)
	}
}

func TestAC200_Feed_SkipsEmptyProviders(t *testing.T) {
	feed := Build(Sources{News: articles(2), Posts: []social.Post{{ID: 9, Title: "X"}}})

	want := "news-0,news-1,social-9"
	if got := strings.Join(ids(feed), ","); got != want {
		t.Errorf("user should see %s, got %s", want, got)
	}
}

func TestAC200_Feed_IsDeterministic(t *testing.T) {
	src := Sources{News: articles(3), Movies: movies(3), Posts: posts(3)}

	first := ids(Build(src))
	second := ids(Build(src))

	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Error("user should see the same order for the same input")
	}
}

func TestAC201_Feed_CapsEachProvider(t *testing.T) {
	feed := Build(Sources{News: articles(20), Movies: movies(20), Posts: posts(20)})

	counts := map[Kind]int{}
	for _, item := range feed {
		counts[item.Kind]++
	}
	if counts[KindNews] != MaxNews {
		t.Errorf("user should see %d news items, got %d", MaxNews, counts[KindNews])
	}
	if counts[KindMovie] != MaxMovies {
		t.Errorf("user should see %d movies, got %d", MaxMovies, counts[KindMovie])
	}
	if counts[KindSocial] != MaxPosts {
		t.Errorf("user should see %d posts, got %d", MaxPosts, counts[KindSocial])
	}
	if len(feed) != MaxNews+MaxMovies+MaxPosts {
		t.Errorf("user should see %d items total, got %d", MaxNews+MaxMovies+MaxPosts, len(feed))
	}
}

func TestAC201_Feed_CapKeepsLeadingRecords(t *testing.T) {
	feed := Build(Sources{Movies: movies(10)})

	if feed[0].ID != "movie-100" || feed[len(feed)-1].ID != "movie-107" {
		t.Errorf("user should see the first %d movies, got %v", MaxMovies, ids(feed))
	}
}

func TestAC202_Feed_IDsAreUnique(t *testing.T) {
	dup := []tmdb.Movie{{ID: 1, Title: "first"}, {ID: 1, Title: "second"}}
	feed := Build(Sources{News: articles(5), Movies: dup, Posts: posts(5)})

	seen := map[string]bool{}
	for _, item := range feed {
		if seen[item.ID] {
			t.Fatalf("user should not see duplicate id %s", item.ID)
		}
		seen[item.ID] = true
	}
	for _, item := range feed {
		if item.ID == "movie-1" && item.Title != "first" {
			t.Errorf("first occurrence should win, got %q", item.Title)
		}
	}
}

func TestAC203_Normalize_NewsFields(t *testing.T) {
	a := newsapi.Article{
		Title:       "Title",
		Description: "Desc",
		URL:         "https://news.example/a",
		URLToImage:  "https://img.example/a.png",
		PublishedAt: "2024-01-01T00:00:00Z",
	}
	a.Source.Name = "Wire"

	items := NormalizeNews([]newsapi.Article{a})

	item := items[0]
	if item.ID != "news-0" || item.Kind != KindNews {
		t.Errorf("unexpected identity: %s/%s", item.ID, item.Kind)
	}
	if item.Link != a.URL || item.Image != a.URLToImage {
		t.Errorf("links should pass through, got %q %q", item.Link, item.Image)
	}
	meta, ok := item.Meta.(NewsMeta)
	if !ok {
		t.Fatalf("news item should carry NewsMeta, got %T", item.Meta)
	}
	if meta.SourceName != "Wire" || meta.PublishedAt != a.PublishedAt {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestAC203_Normalize_MovieFields(t *testing.T) {
	items := NormalizeMovies([]tmdb.Movie{
		{ID: 42, Title: "Film", Overview: "Plot", PosterPath: "/p.jpg", ReleaseDate: "2024-05-01", VoteAverage: 7.5},
		{ID: 43, Title: "No poster"},
	})

	if items[0].Image != "https://image.tmdb.org/t/p/w500/p.jpg" {
		t.Errorf("poster should be resolved, got %q", items[0].Image)
	}
	if items[0].Link != "https://www.themoviedb.org/movie/42" {
		t.Errorf("unexpected movie link %q", items[0].Link)
	}
	if items[0].Description != "Plot" {
		t.Errorf("overview should become description, got %q", items[0].Description)
	}
	if items[1].Image != "" {
		t.Errorf("movie without poster should have no image, got %q", items[1].Image)
	}
	meta := items[0].Meta.(MovieMeta)
	if meta.VoteAverage != 7.5 || meta.ReleaseDate != "2024-05-01" {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestAC203_Normalize_PostFields(t *testing.T) {
	items := NormalizePosts([]social.Post{{ID: 5, UserID: 2, Title: "t", Body: "b"}})

	item := items[0]
	if item.ID != "social-5" || item.Description != "b" || item.Image != "" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Link != "https://jsonplaceholder.typicode.com/posts/5" {
		t.Errorf("unexpected post link %q", item.Link)
	}
	if item.Meta.(SocialMeta).UserID != 2 {
		t.Errorf("unexpected meta: %+v", item.Meta)
	}
}

func TestAC204_Aggregator_SetReplacesSource(t *testing.T) {
	agg := New()
	agg.SetNews(articles(3))
	agg.SetPosts(posts(2))

	if len(agg.Feed()) != 5 {
		t.Fatalf("user should see 5 items, got %d", len(agg.Feed()))
	}

	agg.SetNews(nil)
	agg.SetMovies(movies(1))

	got := strings.Join(ids(agg.Feed()), ",")
	if got != "movie-100,social-1,social-2" {
		t.Errorf("replaced news should disappear, got %s", got)
	}
	counts := agg.Counts()
	if counts[KindNews] != 0 || counts[KindMovie] != 1 || counts[KindSocial] != 2 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestAC204_Aggregator_EmptyFeed(t *testing.T) {
	feed := New().Feed()

	if feed == nil || len(feed) != 0 {
		t.Errorf("empty aggregator should produce an empty feed, got %v", feed)
	}
}

func TestAC205_Item_JSONRoundTripKeepsMeta(t *testing.T) {
	feed := Build(Sources{News: articles(1), Movies: movies(1), Posts: posts(1)})

	data, err := json.Marshal(feed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []Item
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for i := range feed {
		if decoded[i].ID != feed[i].ID || decoded[i].Meta != feed[i].Meta {
			t.Errorf("item %d should survive a round trip: %+v vs %+v", i, decoded[i], feed[i])
		}
	}
}

func TestAC205_Item_JSONUsesWireNames(t *testing.T) {
	data, err := json.Marshal(NormalizePosts(posts(1))[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if raw["type"] != "social" {
		t.Errorf("kind should be encoded as type, got %v", raw["type"])
	}
	if raw["url"] != "https://jsonplaceholder.typicode.com/posts/1" {
		t.Errorf("link should be encoded as url, got %v", raw["url"])
	}
	if _, ok := raw["image"]; ok {
		t.Error("absent image should be omitted")
	}
}

func TestAC205_Item_RejectsUnknownType(t *testing.T) {
	var item Item
	err := json.Unmarshal([]byte(`{"id":"x","type":"podcast","title":"t"}`), &item)

	if err == nil {
		t.Fatal("unknown type should fail to decode")
	}
}

func TestAC205_Item_RejectsMismatchedMeta(t *testing.T) {
	item := Item{ID: "news-0", Kind: KindNews, Meta: MovieMeta{}}

	if _, err := json.Marshal(item); err == nil {
		t.Fatal("meta of another kind should fail to encode")
	}
}

func TestKind_Valid(t *testing.T) {
	for _, k := range []Kind{KindNews, KindMovie, KindSocial} {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if Kind("video").Valid() {
		t.Error("unknown kind should be invalid")
	}
}
