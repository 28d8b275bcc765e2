// Package server exposes the dashboard over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/rastogi30/Personalized-Dashboard/internal/dashboard"
	"github.com/rastogi30/Personalized-Dashboard/internal/favorites"
	"github.com/rastogi30/Personalized-Dashboard/internal/logging"
	"github.com/rastogi30/Personalized-Dashboard/internal/preferences"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
)

// MovieCatalog is the movie provider as used by the API.
// *tmdb.Client satisfies it.
type MovieCatalog interface {
	dashboard.MovieSource
	Trending(ctx context.Context) ([]tmdb.Movie, error)
	Search(ctx context.Context, query string) ([]tmdb.Movie, error)
}

// Deps are the components the API serves.
type Deps struct {
	News        dashboard.NewsSource
	Movies      MovieCatalog
	Posts       dashboard.PostSource
	Dashboard   *dashboard.Dashboard
	Favorites   *favorites.Store
	Preferences *preferences.Store
}

// Server is the HTTP API.
type Server struct {
	echo   *echo.Echo
	deps   Deps
	logger *log.Entry
}

// New builds the API and registers its routes.
func New(deps Deps) *Server {
	s := &Server{
		echo:   echo.New(),
		deps:   deps,
		logger: logging.For("server"),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := s.logger.WithFields(log.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("Request failed")
				return nil
			}
			entry.Info("Request completed")
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")
	api.GET("/content", s.content)

	api.GET("/news", s.news)
	api.GET("/movies/trending", s.trendingMovies)
	api.GET("/movies/search", s.searchMovies)
	api.GET("/social", s.socialPosts)

	api.GET("/favorites", s.listFavorites)
	api.POST("/favorites", s.addFavorite)
	api.PUT("/favorites", s.reorderFavorites)
	api.DELETE("/favorites/:id", s.removeFavorite)
	api.POST("/favorites/toggle", s.toggleFavorite)

	api.GET("/preferences", s.getPreferences)
	api.POST("/preferences/dark-mode", s.toggleDarkMode)
	api.PUT("/preferences/categories", s.updateCategories)
	api.POST("/preferences/categories/:name/toggle", s.toggleCategory)
}

// Handler returns the API as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("address", addr).Info("Starting dashboard API")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down dashboard API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
