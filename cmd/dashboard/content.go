package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
	"github.com/rastogi30/Personalized-Dashboard/internal/dashboard"
	"github.com/rastogi30/Personalized-Dashboard/internal/view"
)

// newFeedCmd creates the feed subcommand.
func newFeedCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Display the merged feed",
		Long:  "Display news for your primary category, trending movies and social posts in one feed.",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return showSection(cmd, a, view.ModeFeed, a.request(category, ""))
		}),
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "News category (defaults to your first preferred category)")

	return cmd
}

// newTrendingCmd creates the trending subcommand.
func newTrendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Display trending movies",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return showSection(cmd, a, view.ModeTrending, a.request("", ""))
		}),
	}
}

// newSearchCmd creates the search subcommand.
func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search news, movies and posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			query := strings.Join(args, " ")
			return showSection(cmd, a, view.ModeSearch, a.request("", query))
		}),
	}
}

func (a *app) request(category, query string) dashboard.Request {
	if category == "" {
		category = a.prefs.PrimaryCategory()
	}
	return dashboard.Request{Category: category, Query: query}
}

// refresh fetches every provider, bounded by the configured timeout.
func (a *app) refresh(ctx context.Context, req dashboard.Request) dashboard.Snapshot {
	ctx, cancel := context.WithTimeout(ctx, 2*a.cfg.Providers.Timeout)
	defer cancel()
	return a.dashboard.Refresh(ctx, req)
}

func showSection(cmd *cobra.Command, a *app, mode view.Mode, req dashboard.Request) error {
	snap := a.refresh(cmd.Context(), req)

	items := view.Select(mode, snap.Items, a.favorites.Items(), req.Query)
	state := view.Resolve(mode, req.Query, items, snap.Loading(), snap.Failed())
	fmt.Fprint(cmd.OutOrStdout(), a.formatter(cmd.OutOrStdout()).FormatView(state, items))
	return nil
}

// findInFeed looks id up in a fresh feed fetched with query.
func (a *app) findInFeed(ctx context.Context, id, query string) (aggregator.Item, error) {
	snap := a.refresh(ctx, a.request("", query))
	for _, item := range snap.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return aggregator.Item{}, fmt.Errorf("item %q is not in the current feed (run 'dashboard feed' to list ids)", id)
}
