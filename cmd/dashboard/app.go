package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rastogi30/Personalized-Dashboard/internal/config"
	"github.com/rastogi30/Personalized-Dashboard/internal/dashboard"
	"github.com/rastogi30/Personalized-Dashboard/internal/display"
	"github.com/rastogi30/Personalized-Dashboard/internal/favorites"
	"github.com/rastogi30/Personalized-Dashboard/internal/newsapi"
	"github.com/rastogi30/Personalized-Dashboard/internal/preferences"
	"github.com/rastogi30/Personalized-Dashboard/internal/social"
	"github.com/rastogi30/Personalized-Dashboard/internal/storage"
	"github.com/rastogi30/Personalized-Dashboard/internal/tmdb"
	"github.com/rastogi30/Personalized-Dashboard/internal/transport"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg       config.Config
	backend   storage.Backend
	news      *newsapi.Client
	movies    *tmdb.Client
	posts     *social.Client
	dashboard *dashboard.Dashboard
	favorites *favorites.Store
	prefs     *preferences.Store
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	backend, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	httpClient := &http.Client{Timeout: cfg.Providers.Timeout}
	a := &app{
		cfg:     cfg,
		backend: backend,
		news: newsapi.NewClient(
			newsapi.WithBaseURL(cfg.Providers.NewsURL),
			newsapi.WithAPIKey(cfg.Providers.NewsAPIKey),
			newsapi.WithRequester(transport.New("news", transport.WithHTTPClient(httpClient))),
		),
		movies: tmdb.NewClient(
			tmdb.WithBaseURL(cfg.Providers.TMDBURL),
			tmdb.WithAPIKey(cfg.Providers.TMDBAPIKey),
			tmdb.WithRequester(transport.New("tmdb", transport.WithHTTPClient(httpClient))),
		),
		posts: social.NewClient(
			social.WithBaseURL(cfg.Providers.SocialURL),
			social.WithRequester(transport.New("social", transport.WithHTTPClient(httpClient))),
		),
		favorites: favorites.New(storage.NewDocument(backend, favorites.Key)),
		prefs:     preferences.New(storage.NewDocument(backend, preferences.Key)),
	}
	a.dashboard = dashboard.New(a.news, a.movies, a.posts)

	a.favorites.Load(ctx)
	a.prefs.Load(ctx)
	return a, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

func (a *app) formatter(w io.Writer) *display.TerminalFormatter {
	return display.NewTerminalFormatter(w,
		display.ThemeFor(a.prefs.Get().DarkMode),
		display.WithSaved(a.favorites.Contains),
	)
}
