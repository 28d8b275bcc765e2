// Package main provides the dashboard CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/rastogi30/Personalized-Dashboard/internal/config"
	"github.com/rastogi30/Personalized-Dashboard/internal/logging"
	"github.com/rastogi30/Personalized-Dashboard/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the dashboard CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Personalized news, movies and social feed",
		Long:         "Dashboard merges news headlines, trending movies and social posts into one feed,\nwith saved favorites and per-user preferences.",
		Version:      currentVersion(),
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("dashboard version {{.Version}}\n")

	rootCmd.AddCommand(newFeedCmd())
	rootCmd.AddCommand(newTrendingCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newFavoritesCmd())
	rootCmd.AddCommand(newPrefsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// logLevelAnnotation names the log level a command uses when none is configured.
const logLevelAnnotation = "logLevel"

// quietLogLevel is the level of interactive commands when none is configured.
const quietLogLevel = "error"

// loadConfig resolves configuration and sets up logging on stderr.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	fallback := quietLogLevel
	if level, ok := cmd.Annotations[logLevelAnnotation]; ok {
		fallback = level
	}
	if err := logging.Setup(cfg.LogLevelOr(fallback), cmd.ErrOrStderr()); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// withApp wires the components for a command and releases them afterwards.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()
		return run(cmd, args, a)
	}
}

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Long:  "Serve the dashboard over HTTP, including provider proxies, favorites, preferences and /metrics.",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			logLevelAnnotation: "info",
		},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			addr := a.cfg.Server.Listen
			if listen != "" {
				addr = listen
			}
			srv := server.New(server.Deps{
				News:        a.news,
				Movies:      a.movies,
				Posts:       a.posts,
				Dashboard:   a.dashboard,
				Favorites:   a.favorites,
				Preferences: a.prefs,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving dashboard API on %s\n", addr)
			return srv.Run(cmd.Context(), addr)
		}),
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (overrides DASHBOARD_LISTEN)")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the resolved configuration with API keys redacted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n\n", cfg.ConfigDir)
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg.Redacted())
		},
	}

	return cmd
}
