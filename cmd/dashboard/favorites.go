package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rastogi30/Personalized-Dashboard/internal/aggregator"
	"github.com/rastogi30/Personalized-Dashboard/internal/favorites"
	"github.com/rastogi30/Personalized-Dashboard/internal/view"
	"github.com/rastogi30/Personalized-Dashboard/pkg/browser"
)

// newFavoritesCmd creates the favorites subcommand tree.
func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage saved items",
	}

	cmd.AddCommand(newFavoritesListCmd())
	cmd.AddCommand(newFavoritesAddCmd())
	cmd.AddCommand(newFavoritesRemoveCmd())
	cmd.AddCommand(newFavoritesReorderCmd())
	cmd.AddCommand(newFavoritesToggleCmd())
	cmd.AddCommand(newFavoritesOpenCmd())

	return cmd
}

func newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved items in order",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			items := a.favorites.Items()
			state := view.Resolve(view.ModeFavorites, "", items, false, false)
			fmt.Fprint(cmd.OutOrStdout(), a.formatter(cmd.OutOrStdout()).FormatView(state, items))
			return nil
		}),
	}
}

func newFavoritesAddCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Save an item from the current feed",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			item, err := a.findInFeed(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}
			if a.favorites.Contains(item.ID) {
				fmt.Fprintf(cmd.OutOrStdout(), "Already saved: %s\n", item.Title)
				return nil
			}
			if _, err := a.favorites.Add(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", item.Title)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query the item was found with")

	return cmd
}

func newFavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved item",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if !a.favorites.Contains(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Not saved: %s\n", args[0])
				return nil
			}
			if _, err := a.favorites.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", args[0])
			return nil
		}),
	}
}

func newFavoritesReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the order of saved items",
		Long:  "Set the order of saved items. Every saved id must be given exactly once.",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			next := make([]aggregator.Item, 0, len(args))
			for _, id := range args {
				item, err := a.favorites.Get(id)
				if err != nil {
					return err
				}
				next = append(next, item)
			}
			if !favorites.IsPermutation(a.favorites.Items(), next) {
				return errors.New("reorder must list every saved id exactly once (see 'dashboard favorites list')")
			}
			if _, err := a.favorites.Reorder(cmd.Context(), next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Favorites reordered")
			return nil
		}),
	}
}

func newFavoritesToggleCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Save an item, or remove it if already saved",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			item, err := a.favorites.Get(args[0])
			if errors.Is(err, favorites.ErrNotFound) {
				item, err = a.findInFeed(cmd.Context(), args[0], query)
			}
			if err != nil {
				return err
			}
			saved, _, err := a.favorites.Toggle(cmd.Context(), item)
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", item.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", item.Title)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query the item was found with")

	return cmd
}

func newFavoritesOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a saved item's original page in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			item, err := a.favorites.Get(args[0])
			if err != nil {
				return err
			}
			if item.Link == "" {
				return fmt.Errorf("%s has no link to open", item.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", item.Link)
			if err := browser.Open(item.Link); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", item.Link)
			}
			return nil
		}),
	}
}
