// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

// newApp builds the root command. --config and --debug are read before the subcommand runs, so they go first.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "stream-inspector",
		Usage:   "Keep a YouTube live stream playlist in order and trimmed",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging and dump fetched playlist items",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []func(r *Runner) *cli.Command{
		itemsCommand, sortCommand, pruneCommand, printCommand, browseCommand,
		historyCommand, authCommand, setupCommand,
	}
	registered := make([]*cli.Command, 0, len(commands))
	for _, c := range commands {
		registered = append(registered, c(r))
	}
	return registered
}

func playlistFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "playlist",
		Aliases: []string{"p"},
		Usage:   "Playlist ID (defaults to playlist.id in the config)",
	}
}

func dryRunFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "dry-run",
		Aliases: []string{"n"},
		Usage:   "Report changes without modifying the playlist",
	}
}

func maxStreamedFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "max-streamed",
		Aliases: []string{"m"},
		Usage:   "Number of streamed videos to keep (defaults to playlist.max_streamed in the config)",
	}
}

func itemsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "Fetch the playlist and list its items with live streaming details",
		Flags: []cli.Flag{
			playlistFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Items,
	}
}

func sortCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sort",
		Usage:  "Reorder the playlist: streamed newest first, then scheduled newest first, then the rest",
		Flags:  []cli.Flag{playlistFlag(), dryRunFlag()},
		Action: r.Sort,
	}
}

func pruneCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "prune",
		Usage:  "Sort the playlist, then delete blocked, unscheduled and surplus streamed videos",
		Flags:  []cli.Flag{playlistFlag(), dryRunFlag(), maxStreamedFlag()},
		Action: r.Prune,
	}
}

func printCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "Print every playlist item with its identifiers, timestamps and flags",
		Flags: []cli.Flag{
			playlistFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv, markdown or json",
				Value:   "text",
			},
		},
		Action: r.Print,
	}
}

func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse the canonical order and prune decisions interactively",
		Flags:   []cli.Flag{playlistFlag(), maxStreamedFlag()},
		Action:  r.Browse,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded sort, prune and print runs",
		Flags: []cli.Flag{
			playlistFlag(),
			&cli.StringFlag{
				Name:  "command",
				Usage: "Only show runs of this command (sort, prune or print)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "Show the actions recorded for this run ID",
			},
			&cli.DurationFlag{
				Name:  "clear-before",
				Usage: "Delete runs older than this age, e.g. 720h",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube authorization",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authorize with Google and store the OAuth2 token",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the browser callback",
						Value: 2 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Show whether a token is stored and when it expires",
				Action: r.AuthStatus,
			},
		},
	}
}

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example configuration file to --config",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the audit trail database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
