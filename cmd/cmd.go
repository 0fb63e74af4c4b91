// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored credential and all cached data",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Check authentication state and backend health",
				Action: r.AuthStatus,
			},
		},
	}
}

// resultCommand handles report resolution and sharing
func resultCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "result",
		Aliases: []string{"res"},
		Usage:   "Resolve and display your audio personality report",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show your report, or someone else's by result id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "tracks",
						Usage: "Include the tracks the report was derived from",
					},
				},
				Action: r.ResultShow,
			},
			{
				Name:   "refresh",
				Usage:  "Discard the cached report and recompute from current listening data",
				Action: r.ResultRefresh,
			},
			{
				Name:   "share",
				Usage:  "Print the shareable link for your saved report",
				Action: r.ResultShare,
			},
			{
				Name:  "export",
				Usage: "Export your report to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: text, markdown or json",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.ResultExport,
			},
		},
	}
}

// trackCommand handles per-track sub-views
func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Per-track lyrics and artist insight",
		Commands: []*cli.Command{
			{
				Name:  "lyrics",
				Usage: "Show summarized lyrics for a track from your report",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "Bypass the local cache and refetch",
					},
				},
				Action: r.TrackLyrics,
			},
			{
				Name:  "insight",
				Usage: "Show an artist profile for a track from your report",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "Bypass the local cache and refetch",
					},
				},
				Action: r.TrackInsight,
			},
		},
	}
}

// cacheCommand handles local cache inspection and clearing
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and clear locally cached data",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show what is cached locally",
				Action: r.CacheStatus,
			},
			{
				Name:   "clear",
				Usage:  "Clear all cached data, keeping the credential",
				Action: r.CacheClear,
			},
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive report browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive report view",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "result-id",
				Usage: "Open a shared result instead of your own report",
			},
		},
		Action: r.TUI,
	}
}
