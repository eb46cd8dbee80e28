package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/glyn/stream-inspector/internal/repositories"
	"github.com/glyn/stream-inspector/internal/services"
	"github.com/glyn/stream-inspector/internal/shared"
	"github.com/glyn/stream-inspector/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	configFixed bool
	source      services.Source
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	debug       bool
	db          *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config // when set, --config is not read
	ConfigPath string
	Source     services.Source // when set, used instead of the authorized YouTube client
	HTTPClient *http.Client    // base client for OAuth token requests
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	fixed := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		configFixed: fixed,
		source:      opts.Source,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

// Before loads the config file named by --config and applies --debug. It runs ahead of every command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if !r.configFixed {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
			r.logger.Debug("loaded config", "path", r.configPath)
		}
	}

	if cmd.Bool("debug") {
		r.debug = true
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// SetLogger replaces the logger, e.g. to move output to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	if r.debug {
		shared.SetLogLevel(logger, log.DebugLevel)
	}
	r.logger = logger
}

// Close releases the audit trail database, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// playlistSource returns the data source, building an authorized YouTube client from the stored token on first use.
func (r *Runner) playlistSource(ctx context.Context) (services.Source, error) {
	if r.source != nil {
		return r.source, nil
	}

	yt := r.config.Credentials.YouTube
	oauthConfig, err := services.NewOAuthConfig(yt.Map())
	if err != nil {
		return nil, err
	}

	token, err := shared.LoadToken(yt.TokenPath)
	if err != nil {
		return nil, err
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	client := services.TokenClient(ctx, oauthConfig, token, func(tok *oauth2.Token) {
		if err := shared.SaveToken(yt.TokenPath, tok); err != nil {
			r.logger.Warn("failed to save refreshed token", "path", yt.TokenPath, "error", err)
			return
		}
		r.logger.Debug("saved refreshed token", "path", yt.TokenPath, "expiry", tok.Expiry)
	})

	r.source = services.NewYouTubeService(services.YouTubeOpts{
		BaseURL:           yt.BaseURL,
		HTTPClient:        client,
		RequestsPerSecond: yt.RequestsPerSecond,
	})
	return r.source, nil
}

// store opens the audit trail database on first use.
func (r *Runner) store() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := shared.OpenStore(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

// recorder returns the audit trail recorder, or nil when the database is disabled or cannot be opened.
func (r *Runner) recorder() tasks.Recorder {
	if !r.config.Database.Enabled {
		return nil
	}
	db, err := r.store()
	if err != nil {
		r.logger.Warn("audit trail unavailable", "path", r.config.Database.Path, "error", err)
		return nil
	}
	return repositories.NewRunRepository(db)
}

// playlistID resolves --playlist, falling back to playlist.id from the config.
func (r *Runner) playlistID(cmd *cli.Command) (string, error) {
	id := cmd.String("playlist")
	if id == "" {
		id = r.config.Playlist.ID
	}
	if id == "" {
		return "", fmt.Errorf("%w: --playlist or playlist.id in %s is required", shared.ErrMissingArgument, r.configPath)
	}
	return id, nil
}

// dryRun resolves --dry-run, falling back to playlist.dry_run from the config.
func (r *Runner) dryRun(cmd *cli.Command) bool {
	if cmd.IsSet("dry-run") {
		return cmd.Bool("dry-run")
	}
	return r.config.Playlist.DryRun
}

// maxStreamed resolves --max-streamed, falling back to playlist.max_streamed from the config.
func (r *Runner) maxStreamed(cmd *cli.Command) (int, error) {
	n := r.config.Playlist.MaxStreamed
	if cmd.IsSet("max-streamed") {
		n = cmd.Int("max-streamed")
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: max streamed must not be negative, got %d", shared.ErrInvalidArgument, n)
	}
	return n, nil
}

// manager builds a [tasks.PlaylistManager] for the command's playlist. progress may be nil.
func (r *Runner) manager(ctx context.Context, cmd *cli.Command, progress chan<- tasks.ProgressUpdate) (*tasks.PlaylistManager, error) {
	id, err := r.playlistID(cmd)
	if err != nil {
		return nil, err
	}

	source, err := r.playlistSource(ctx)
	if err != nil {
		return nil, err
	}

	return tasks.NewPlaylistManager(source, tasks.Options{
		PlaylistID: id,
		DryRun:     r.dryRun(cmd),
		Debug:      r.debug,
		Logger:     r.logger,
		Recorder:   r.recorder(),
		Progress:   progress,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	return r.writeBytes([]byte(fmt.Sprintf(format, args...)))
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writeBytes([]byte("\n" + fmt.Sprintf(format, args...) + "\n"))
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
