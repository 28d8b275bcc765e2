package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
	"github.com/rastogi30/Personalized-Dashboard/internal/dashboard"
	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/preferences"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
	"github.com/rastogi30/Personalized-Dashboard/internal/view"
)

type errorResponse struct {
	Error string `json:"error"`
}

type contentResponse struct {
	Mode       view.Mode         `json:"mode"`
	State      view.Status       `json:"state"`
	Message    string            `json:"message,omitempty"`
	Generation uint64            `json:"generation"`
	Items      []aggregator.Item `json:"items"`
}

type favoritesResponse struct {
	Items []aggregator.Item `json:"items"`
}

type toggleResponse struct {
	Saved bool              `json:"saved"`
	Items []aggregator.Item `json:"items"`
}

type categoriesRequest struct {
	Categories []string `json:"categories"`
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

// content serves one dashboard section, refreshing the feed unless the
// section does not depend on it.
func (s *Server) content(c echo.Context) error {
	mode, err := view.ParseMode(c.QueryParam("mode"))
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	query := c.QueryParam("q")

	var (
		feed    []aggregator.Item
		snap    dashboard.Snapshot
		loading bool
		failed  bool
	)
	switch {
	case mode == view.ModeFavorites:
		snap = s.deps.Dashboard.Snapshot()
	case mode == view.ModeSearch && query == "":
		snap = s.deps.Dashboard.Snapshot()
	default:
		req := dashboard.Request{Category: s.deps.Preferences.PrimaryCategory()}
		if mode == view.ModeSearch {
			req.Query = query
		}
		snap = s.deps.Dashboard.Refresh(c.Request().Context(), req)
		feed, loading, failed = snap.Items, snap.Loading(), snap.Failed()
	}

	items := view.Select(mode, feed, s.deps.Favorites.Items(), query)
	state := view.Resolve(mode, query, items, loading, failed)
	return c.JSON(http.StatusOK, contentResponse{
		Mode:       mode,
		State:      state.Status,
		Message:    state.Message,
		Generation: snap.Generation,
		Items:      items,
	})
}

func (s *Server) news(c echo.Context) error {
	articles, err := s.deps.News.FetchHeadlines(c.Request().Context(), newsapi.Query{
		Category: c.QueryParam("category"),
		Q:        c.QueryParam("q"),
	})
	if err != nil {
		s.logger.WithError(err).Warn("News fetch failed")
		return fail(c, http.StatusInternalServerError, "Failed to fetch news")
	}
	return c.JSON(http.StatusOK, map[string][]newsapi.Article{"articles": articles})
}

func (s *Server) trendingMovies(c echo.Context) error {
	movies, err := s.deps.Movies.Trending(c.Request().Context())
	if err != nil {
		s.logger.WithError(err).Warn("Trending movies fetch failed")
		return fail(c, http.StatusInternalServerError, "Failed to fetch movies")
	}
	return c.JSON(http.StatusOK, map[string][]tmdb.Movie{"results": movies})
}

func (s *Server) searchMovies(c echo.Context) error {
	movies, err := s.deps.Movies.Search(c.Request().Context(), c.QueryParam("query"))
	if errors.Is(err, tmdb.ErrQueryRequired) {
		return fail(c, http.StatusBadRequest, "Query parameter required")
	}
	if err != nil {
		s.logger.WithError(err).Warn("Movie search failed")
		return fail(c, http.StatusInternalServerError, "Failed to search movies")
	}
	return c.JSON(http.StatusOK, map[string][]tmdb.Movie{"results": movies})
}

func (s *Server) socialPosts(c echo.Context) error {
	posts, err := s.deps.Posts.FetchPosts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		s.logger.WithError(err).Warn("Social fetch failed")
		return fail(c, http.StatusInternalServerError, "Failed to fetch social posts")
	}
	return c.JSON(http.StatusOK, posts)
}

func (s *Server) listFavorites(c echo.Context) error {
	return c.JSON(http.StatusOK, favoritesResponse{Items: s.deps.Favorites.Items()})
}

func (s *Server) addFavorite(c echo.Context) error {
	var item aggregator.Item
	if err := c.Bind(&item); err != nil || item.ID == "" {
		return fail(c, http.StatusBadRequest, "Invalid item")
	}
	items, err := s.deps.Favorites.Add(c.Request().Context(), item)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save favorites")
	}
	return c.JSON(http.StatusOK, favoritesResponse{Items: items})
}

func (s *Server) reorderFavorites(c echo.Context) error {
	var req favoritesResponse
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid items")
	}
	items, err := s.deps.Favorites.Reorder(c.Request().Context(), req.Items)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save favorites")
	}
	return c.JSON(http.StatusOK, favoritesResponse{Items: items})
}

func (s *Server) removeFavorite(c echo.Context) error {
	items, err := s.deps.Favorites.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save favorites")
	}
	return c.JSON(http.StatusOK, favoritesResponse{Items: items})
}

func (s *Server) toggleFavorite(c echo.Context) error {
	var item aggregator.Item
	if err := c.Bind(&item); err != nil || item.ID == "" {
		return fail(c, http.StatusBadRequest, "Invalid item")
	}
	saved, items, err := s.deps.Favorites.Toggle(c.Request().Context(), item)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save favorites")
	}
	return c.JSON(http.StatusOK, toggleResponse{Saved: saved, Items: items})
}

func (s *Server) getPreferences(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Preferences.Get())
}

func (s *Server) toggleDarkMode(c echo.Context) error {
	prefs, err := s.deps.Preferences.ToggleDarkMode(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save preferences")
	}
	return c.JSON(http.StatusOK, prefs)
}

func (s *Server) updateCategories(c echo.Context) error {
	var req categoriesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid categories")
	}
	prefs, err := s.deps.Preferences.UpdateCategories(c.Request().Context(), req.Categories)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save preferences")
	}
	return c.JSON(http.StatusOK, prefs)
}

func (s *Server) toggleCategory(c echo.Context) error {
	prefs, err := s.deps.Preferences.ToggleCategory(c.Request().Context(), c.Param("name"))
	if errors.Is(err, preferences.ErrUnknownCategory) {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to save preferences")
	}
	return c.JSON(http.StatusOK, prefs)
}
