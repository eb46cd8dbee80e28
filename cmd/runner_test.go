package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/glyn/stream-inspector/internal/models"
	"github.com/glyn/stream-inspector/internal/shared"
	tu "github.com/glyn/stream-inspector/internal/testing"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// unsortedSource holds, in playlist order: an unscheduled upload, a scheduled stream, two streamed videos with the
// older one first and a blocked streamed video that started last.
func unsortedSource(t *testing.T) *tu.MockSource {
	src := &tu.MockSource{}
	src.AddVideo("upload", nil, nil, false)
	src.AddVideo("upcoming", tu.MustParseTime(t, "2021-10-01T18:00:00Z"), nil, false)
	src.AddVideo("old", tu.MustParseTime(t, "2021-09-01T10:00:00Z"), tu.MustParseTime(t, "2021-09-01T10:01:00Z"), false)
	src.AddVideo("new", tu.MustParseTime(t, "2021-09-30T10:55:02+01:00"), tu.MustParseTime(t, "2021-09-30T10:56:02+01:00"), false)
	src.AddVideo("blocked", tu.MustParseTime(t, "2021-09-30T12:00:00Z"), tu.MustParseTime(t, "2021-09-30T12:00:00Z"), true)
	return src
}

func testConfig() *shared.Config {
	config := shared.DefaultConfig()
	config.Playlist.ID = "PL1"
	config.Playlist.MaxStreamed = 1
	config.Database.Path = ":memory:"
	return config
}

func newTestRunner(t *testing.T, src *tu.MockSource, config *shared.Config) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var output, logs bytes.Buffer
	if config == nil {
		config = testConfig()
	}

	opts := RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&logs),
		Output: &output,
	}
	if src != nil {
		opts.Source = src
	}

	r := NewRunner(opts)
	t.Cleanup(func() { r.Close() })
	return r, &output, &logs
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"stream-inspector"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			src := &tu.MockSource{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "custom.toml",
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Source:     src,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if !runner.configFixed {
				t.Error("expected provided config to be fixed")
			}
			if runner.configPath != "custom.toml" {
				t.Errorf("expected config path custom.toml, got %s", runner.configPath)
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.source != src {
				t.Error("expected source to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.configFixed {
				t.Error("expected default config to be loadable from --config")
			}
			if runner.configPath != "config.toml" {
				t.Errorf("expected default config path, got %s", runner.configPath)
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected default http client")
			}
		})
	})

	t.Run("Before", func(t *testing.T) {
		t.Run("loads config from --config", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			config := shared.DefaultConfig()
			config.Playlist.ID = "PLFILE"
			config.Database.Enabled = false
			if err := shared.SaveConfig(path, config); err != nil {
				t.Fatalf("SaveConfig() error = %v", err)
			}

			var output bytes.Buffer
			r := NewRunner(RunnerOpts{Source: unsortedSource(t), Logger: shared.NewLogger(&bytes.Buffer{}), Output: &output})

			if err := run(t, r, "--config", path, "items"); err != nil {
				t.Fatalf("items error = %v", err)
			}
			if r.config.Playlist.ID != "PLFILE" {
				t.Errorf("expected playlist id from file, got %q", r.config.Playlist.ID)
			}
			if !strings.Contains(output.String(), "Playlist PLFILE") {
				t.Errorf("expected header for PLFILE, got %q", output.String())
			}
		})

		t.Run("invalid config fails", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[playlist\n"), 0600); err != nil {
				t.Fatal(err)
			}

			r := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
			if err := run(t, r, "-c", path, "items"); err == nil {
				t.Error("expected error for malformed config")
			}
		})

		t.Run("missing config keeps defaults", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
			err := run(t, r, "-c", filepath.Join(t.TempDir(), "absent.toml"), "items")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument without a playlist id, got %v", err)
			}
		})

		t.Run("debug enables raw dump", func(t *testing.T) {
			r, _, logs := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "--debug", "items"); err != nil {
				t.Fatalf("items error = %v", err)
			}
			if !r.debug {
				t.Error("expected debug to be set")
			}
			if !strings.Contains(logs.String(), "playlist items") {
				t.Errorf("expected raw item dump in logs, got %q", logs.String())
			}
		})
	})

	t.Run("Options", func(t *testing.T) {
		t.Run("flags override config", func(t *testing.T) {
			r, _, _ := newTestRunner(t, &tu.MockSource{}, nil)
			r.config.Playlist.DryRun = false

			var gotID string
			var gotDry bool
			var gotMax int
			cmd := &cli.Command{
				Name:  "probe",
				Flags: []cli.Flag{playlistFlag(), dryRunFlag(), maxStreamedFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					var err error
					if gotID, err = r.playlistID(cmd); err != nil {
						return err
					}
					gotDry = r.dryRun(cmd)
					gotMax, err = r.maxStreamed(cmd)
					return err
				},
			}

			if err := cmd.Run(context.Background(), []string{"probe", "-p", "PL2", "-n", "-m", "5"}); err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if gotID != "PL2" || !gotDry || gotMax != 5 {
				t.Errorf("got id=%q dry=%v max=%d", gotID, gotDry, gotMax)
			}
		})

		t.Run("config used without flags", func(t *testing.T) {
			r, _, _ := newTestRunner(t, &tu.MockSource{}, nil)
			r.config.Playlist.DryRun = true

			cmd := &cli.Command{
				Name:  "probe",
				Flags: []cli.Flag{playlistFlag(), dryRunFlag(), maxStreamedFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := r.playlistID(cmd)
					if err != nil {
						return err
					}
					n, err := r.maxStreamed(cmd)
					if err != nil {
						return err
					}
					if id != "PL1" || !r.dryRun(cmd) || n != 1 {
						t.Errorf("got id=%q dry=%v max=%d", id, r.dryRun(cmd), n)
					}
					return nil
				},
			}
			if err := cmd.Run(context.Background(), []string{"probe"}); err != nil {
				t.Fatalf("unexpected error %v", err)
			}
		})

		t.Run("negative max streamed rejected", func(t *testing.T) {
			r, _, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "prune", "--max-streamed=-1"); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("Items", func(t *testing.T) {
		t.Run("text output", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "items"); err != nil {
				t.Fatalf("items error = %v", err)
			}

			out := output.String()
			if !strings.Contains(out, "Playlist PL1 (5 items)") {
				t.Errorf("expected header, got %q", out)
			}
			for _, id := range []string{"upload", "upcoming", "old", "new", "blocked"} {
				if !strings.Contains(out, id) {
					t.Errorf("expected %s in output", id)
				}
			}
		})

		t.Run("json output", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "items", "--json"); err != nil {
				t.Fatalf("items error = %v", err)
			}

			var items []models.Item
			if err := json.Unmarshal(output.Bytes(), &items); err != nil {
				t.Fatalf("invalid JSON output: %v", err)
			}
			if len(items) != 5 || items[0].VideoID != "upload" || !items[4].Blocked {
				t.Errorf("unexpected items %+v", items)
			}
		})

		t.Run("source error", func(t *testing.T) {
			src := &tu.MockSource{ListErr: shared.ErrPlaylistNotFound}
			r, _, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "items"); !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Errorf("expected ErrPlaylistNotFound, got %v", err)
			}
		})
	})

	t.Run("Sort", func(t *testing.T) {
		want := []string{"blocked", "new", "old", "upcoming", "upload"}

		t.Run("reorders playlist", func(t *testing.T) {
			src := unsortedSource(t)
			r, output, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "sort"); err != nil {
				t.Fatalf("sort error = %v", err)
			}

			if got := src.EntryVideoIDs(); !slices.Equal(got, want) {
				t.Errorf("expected order %v, got %v", want, got)
			}
			if !strings.Contains(output.String(), "Reordered 5 items") {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("already sorted", func(t *testing.T) {
			src := unsortedSource(t)
			r, output, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "sort"); err != nil {
				t.Fatal(err)
			}
			src.Calls = nil
			output.Reset()

			if err := run(t, r, "sort"); err != nil {
				t.Fatalf("sort error = %v", err)
			}
			if len(src.Calls) != 0 {
				t.Errorf("expected no calls, got %v", src.Calls)
			}
			if !strings.Contains(output.String(), "already in the correct order") {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("dry run", func(t *testing.T) {
			src := unsortedSource(t)
			r, output, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "sort", "--dry-run"); err != nil {
				t.Fatalf("sort error = %v", err)
			}

			if len(src.Calls) != 0 {
				t.Errorf("expected no mutating calls, got %v", src.Calls)
			}
			out := output.String()
			if !strings.Contains(out, "would be sorted") {
				t.Errorf("expected would-be order, got %q", out)
			}
			if strings.Index(out, "blocked") > strings.Index(out, "upload") {
				t.Errorf("expected canonical order in output, got %q", out)
			}
		})

		t.Run("reorder failure surfaces", func(t *testing.T) {
			src := unsortedSource(t)
			src.ReorderErr = shared.ErrForbidden
			src.FailAfter = 2
			r, _, _ := newTestRunner(t, src, nil)

			if err := run(t, r, "sort"); !errors.Is(err, shared.ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
			if len(src.Calls) != 2 {
				t.Errorf("expected no rollback after 2 calls, got %d", len(src.Calls))
			}
		})
	})

	t.Run("Prune", func(t *testing.T) {
		t.Run("deletes removals", func(t *testing.T) {
			src := unsortedSource(t)
			r, output, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "prune"); err != nil {
				t.Fatalf("prune error = %v", err)
			}

			if got := src.EntryVideoIDs(); !slices.Equal(got, []string{"new", "upcoming"}) {
				t.Errorf("expected [new upcoming], got %v", got)
			}
			if !strings.Contains(output.String(), "Deleted 3 of 5 items") {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("max streamed flag", func(t *testing.T) {
			src := unsortedSource(t)
			r, _, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "prune", "--max-streamed", "0"); err != nil {
				t.Fatalf("prune error = %v", err)
			}
			if got := src.EntryVideoIDs(); !slices.Equal(got, []string{"upcoming"}) {
				t.Errorf("expected [upcoming], got %v", got)
			}
		})

		t.Run("dry run reports decisions", func(t *testing.T) {
			src := unsortedSource(t)
			r, output, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "prune", "-n"); err != nil {
				t.Fatalf("prune error = %v", err)
			}

			if len(src.Calls) != 0 {
				t.Errorf("expected no mutating calls, got %v", src.Calls)
			}
			out := output.String()
			for _, reason := range []string{"blocked", "surplus streamed", "unscheduled", "keep"} {
				if !strings.Contains(out, reason) {
					t.Errorf("expected %q in output %q", reason, out)
				}
			}
			if !strings.Contains(out, "3 of 5 items would be removed") {
				t.Errorf("expected summary, got %q", out)
			}
		})
	})

	t.Run("Print", func(t *testing.T) {
		t.Run("text flags", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "print"); err != nil {
				t.Fatalf("print error = %v", err)
			}

			out := output.String()
			if !strings.Contains(out, "** invalid") || !strings.Contains(out, "** blocked") {
				t.Errorf("expected flags in output %q", out)
			}
		})

		t.Run("csv format", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "print", "--format", "csv"); err != nil {
				t.Fatalf("print error = %v", err)
			}
			if !strings.HasPrefix(output.String(), "Position,Video ID") {
				t.Errorf("expected CSV header, got %q", output.String())
			}
		})

		t.Run("unknown format", func(t *testing.T) {
			src := unsortedSource(t)
			r, _, _ := newTestRunner(t, src, nil)
			if err := run(t, r, "print", "-f", "yaml"); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if src.ListCalls != 0 {
				t.Error("expected no fetch for an unknown format")
			}
		})

		t.Run("write failure", func(t *testing.T) {
			r, _, _ := newTestRunner(t, unsortedSource(t), nil)
			r.output = &tu.FWriter{}
			if err := run(t, r, "print"); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("History", func(t *testing.T) {
		t.Run("lists recorded runs", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "sort"); err != nil {
				t.Fatal(err)
			}
			if err := run(t, r, "prune", "-n"); err != nil {
				t.Fatal(err)
			}
			output.Reset()

			if err := run(t, r, "history"); err != nil {
				t.Fatalf("history error = %v", err)
			}
			out := output.String()
			if !strings.Contains(out, "sort") || !strings.Contains(out, "prune") || !strings.Contains(out, "dry-run") {
				t.Errorf("expected both runs, got %q", out)
			}
		})

		t.Run("shows actions of a run", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "sort"); err != nil {
				t.Fatal(err)
			}
			output.Reset()

			if err := run(t, r, "history", "--json"); err != nil {
				t.Fatal(err)
			}
			var runs []models.Run
			if err := json.Unmarshal(output.Bytes(), &runs); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(runs) != 1 || runs[0].Status != models.RunSucceeded {
				t.Fatalf("expected one succeeded run, got %+v", runs)
			}
			output.Reset()

			if err := run(t, r, "history", "--run", runs[0].ID); err != nil {
				t.Fatalf("history --run error = %v", err)
			}
			if got := strings.Count(output.String(), "reorder"); got != 5 {
				t.Errorf("expected 5 reorder actions, got %d in %q", got, output.String())
			}
		})

		t.Run("empty", func(t *testing.T) {
			r, output, _ := newTestRunner(t, &tu.MockSource{}, nil)
			if err := run(t, r, "history"); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(output.String(), "No runs recorded") {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("clear before", func(t *testing.T) {
			r, output, _ := newTestRunner(t, unsortedSource(t), nil)
			if err := run(t, r, "sort", "-n"); err != nil {
				t.Fatal(err)
			}
			output.Reset()

			if err := run(t, r, "history", "--clear-before", "1h"); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(output.String(), "Deleted 0 runs") {
				t.Errorf("expected recent run kept, got %q", output.String())
			}
		})

		t.Run("recording disabled", func(t *testing.T) {
			config := testConfig()
			config.Database.Enabled = false
			r, _, _ := newTestRunner(t, unsortedSource(t), config)
			if err := run(t, r, "sort"); err != nil {
				t.Fatal(err)
			}
			if r.db != nil {
				t.Error("expected no database opened when recording is disabled")
			}
		})
	})

	t.Run("Auth", func(t *testing.T) {
		t.Run("status without token", func(t *testing.T) {
			config := testConfig()
			config.Credentials.YouTube.TokenPath = filepath.Join(t.TempDir(), "token.json")
			r, output, _ := newTestRunner(t, nil, config)

			if err := run(t, r, "auth", "status"); err != nil {
				t.Fatalf("auth status error = %v", err)
			}
			if !strings.Contains(output.String(), "Not authenticated") {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("status with refreshable token", func(t *testing.T) {
			config := testConfig()
			config.Credentials.YouTube.TokenPath = filepath.Join(t.TempDir(), "token.json")
			token := &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: time.Now().Add(-time.Hour)}
			if err := shared.SaveToken(config.Credentials.YouTube.TokenPath, token); err != nil {
				t.Fatal(err)
			}
			r, output, _ := newTestRunner(t, nil, config)

			if err := run(t, r, "auth", "status"); err != nil {
				t.Fatalf("auth status error = %v", err)
			}
			out := output.String()
			if !strings.Contains(out, "Refresh token: true") || !strings.Contains(out, "will be refreshed") {
				t.Errorf("unexpected output %q", out)
			}
		})

		t.Run("commands without token need login", func(t *testing.T) {
			config := testConfig()
			config.Credentials.YouTube.TokenPath = filepath.Join(t.TempDir(), "token.json")
			r := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
			t.Cleanup(func() { r.Close() })

			if err := run(t, r, "items"); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("stored token builds YouTube source", func(t *testing.T) {
			config := testConfig()
			config.Credentials.YouTube.TokenPath = filepath.Join(t.TempDir(), "token.json")
			token := &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(time.Hour)}
			if err := shared.SaveToken(config.Credentials.YouTube.TokenPath, token); err != nil {
				t.Fatal(err)
			}
			r := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(&bytes.Buffer{})})

			src, err := r.playlistSource(context.Background())
			if err != nil {
				t.Fatalf("playlistSource() error = %v", err)
			}
			if src.Name() != "YouTube" {
				t.Errorf("expected youtube source, got %s", src.Name())
			}
		})

		t.Run("YouTube requests use the runner transport", func(t *testing.T) {
			config := testConfig()
			config.Database.Enabled = false
			config.Credentials.YouTube.TokenPath = filepath.Join(t.TempDir(), "token.json")
			token := &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(time.Hour)}
			if err := shared.SaveToken(config.Credentials.YouTube.TokenPath, token); err != nil {
				t.Fatal(err)
			}

			resp := &http.Response{StatusCode: http.StatusServiceUnavailable, Header: http.Header{}, Body: &tu.FCloser{}}
			r := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     shared.NewLogger(&bytes.Buffer{}),
				Output:     &bytes.Buffer{},
				HTTPClient: &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)},
			})

			if err := run(t, r, "items"); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("Setup", func(t *testing.T) {
		t.Run("config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			r := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})

			if err := run(t, r, "-c", path, "setup", "config"); err != nil {
				t.Fatalf("setup config error = %v", err)
			}
			tu.AssertFileExists(t, path)
			if content := tu.MustReadFile(t, path); !strings.Contains(content, "[playlist]") {
				t.Errorf("expected example config, got %q", content)
			}

			if err := run(t, r, "-c", path, "setup", "config"); err == nil {
				t.Error("expected error when config already exists")
			}
		})

		t.Run("database", func(t *testing.T) {
			config := testConfig()
			config.Database.Path = filepath.Join(t.TempDir(), "test.db")
			r, output, _ := newTestRunner(t, nil, config)

			if err := run(t, r, "setup", "database"); err != nil {
				t.Fatalf("setup database error = %v", err)
			}
			tu.AssertFileExists(t, config.Database.Path)
			if !strings.Contains(output.String(), "Database ready") {
				t.Errorf("unexpected output %q", output.String())
			}

			if err := run(t, r, "setup", "database", "--rollback"); err != nil {
				t.Fatalf("rollback error = %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("write failure", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := r.writeJSON(map[string]string{"a": "b"}, false); err == nil {
				t.Error("expected error")
			}
		})

		t.Run("newline failure", func(t *testing.T) {
			var buf bytes.Buffer
			w := tu.NewLimitedWriter(1, 0, &buf)
			r := NewRunner(RunnerOpts{Output: &w})
			if err := r.writeJSON(map[string]string{"a": "b"}, false); err == nil {
				t.Error("expected newline write error")
			}
		})

		t.Run("unsupported value", func(t *testing.T) {
			r := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
			if err := r.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})
	})
}
