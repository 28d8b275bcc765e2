// Package view decides what the dashboard shows for a given mode.
package view

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
)

// Mode is the active section of the dashboard.
type Mode string

const (
	ModeFeed      Mode = "feed"
	ModeTrending  Mode = "trending"
	ModeFavorites Mode = "favorites"
	ModeSearch    Mode = "search"
)

// TrendingLimit caps the trending section.
const TrendingLimit = 12

// Modes lists every mode in menu order.
var Modes = []Mode{ModeFeed, ModeTrending, ModeFavorites, ModeSearch}

// ParseMode parses a mode name. The empty string is the feed.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeFeed, nil
	}
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Modes, m) {
		return "", fmt.Errorf("unknown mode %q (want feed, trending, favorites or search)", s)
	}
	return m, nil
}

// Select returns the items shown for mode.
//
// Search shows the feed only once a query is entered, since the feed was
// fetched with that query. Trending shows movies only.
func Select(mode Mode, feed, favorites []aggregator.Item, query string) []aggregator.Item {
	switch mode {
	case ModeFavorites:
		return favorites
	case ModeSearch:
		if strings.TrimSpace(query) == "" {
			return []aggregator.Item{}
		}
		return feed
	case ModeTrending:
		movies := lo.Filter(feed, func(item aggregator.Item, _ int) bool {
			return item.Kind == aggregator.KindMovie
		})
		return aggregator.Cap(movies, TrendingLimit)
	default:
		return feed
	}
}

// Status is the display state of a section.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// User-facing messages.
const (
	MessageFailed      = "Failed to load content"
	MessageNoResults   = "No search results found"
	MessageNoFavorites = "No favorites yet"
	MessageNoContent   = "No content available"
	MessageEnterSearch = "Enter a search term"
)

// State is what a section should render.
type State struct {
	Status  Status `json:"state"`
	Message string `json:"message,omitempty"`
}

// Resolve computes the state for items selected in mode.
//
// loading is true while any fetch is still pending and failed is true when
// at least one fetch failed. Favorites do not depend on fetches.
func Resolve(mode Mode, query string, items []aggregator.Item, loading, failed bool) State {
	if len(items) > 0 {
		return State{Status: StatusReady}
	}
	if mode == ModeFavorites {
		return State{Status: StatusEmpty, Message: MessageNoFavorites}
	}
	if mode == ModeSearch && strings.TrimSpace(query) == "" {
		return State{Status: StatusEmpty, Message: MessageEnterSearch}
	}
	if loading {
		return State{Status: StatusLoading}
	}
	if failed {
		return State{Status: StatusError, Message: MessageFailed}
	}
	if mode == ModeSearch {
		return State{Status: StatusEmpty, Message: MessageNoResults}
	}
	return State{Status: StatusEmpty, Message: MessageNoContent}
}
