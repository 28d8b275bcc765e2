package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rastogi30/Personalized-Dashboard/internal/preferences"
)

// newPrefsCmd creates the prefs subcommand tree.
func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View or change preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			printPrefs(cmd.OutOrStdout(), a.prefs.Get())
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dark-mode",
		Short: "Toggle dark mode",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			prefs, err := a.prefs.ToggleDarkMode(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dark mode: %s\n", onOff(prefs.DarkMode))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "categories <category>...",
		Short: "Replace the preferred news categories",
		Long:  "Replace the preferred news categories. The first one drives the feed.\nAvailable: " + strings.Join(preferences.AvailableCategories, ", "),
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			prefs, err := a.prefs.UpdateCategories(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(prefs.Categories, ", "))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle-category <category>",
		Short: "Add or remove one news category",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			prefs, err := a.prefs.ToggleCategory(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(preferences.AvailableCategories, ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(prefs.Categories, ", "))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "language <code>",
		Short: "Set the content language",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			prefs, err := a.prefs.SetLanguage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Language: %s\n", prefs.Language)
			return nil
		}),
	})

	return cmd
}

func printPrefs(w io.Writer, prefs preferences.Preferences) {
	fmt.Fprintf(w, "Categories: %s\n", strings.Join(prefs.Categories, ", "))
	fmt.Fprintf(w, "Dark mode: %s\n", onOff(prefs.DarkMode))
	fmt.Fprintf(w, "Language: %s\n", prefs.Language)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
