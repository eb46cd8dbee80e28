// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/glyn/stream-inspector/internal/services"
)

// Call records one mutating call made against a [MockSource].
type Call struct {
	Method   string // "reorder" or "delete"
	EntryID  string
	VideoID  string
	Position int
}

// MockSource is an in-memory test double for [services.Source].
//
// ReorderEntry moves the entry within Entries so a subsequent listing observes the new order, and DeleteEntry
// removes it. Every mutating call is appended to Calls.
type MockSource struct {
	Entries []services.PlaylistEntry
	Details map[string]*services.VideoDetails // keyed by video id; a missing key means not found

	ListErr    error
	DetailsErr error
	ReorderErr error
	DeleteErr  error
	FailAfter  int // mutating calls allowed before ReorderErr/DeleteErr apply; 0 fails immediately

	Calls     []Call
	ListCalls int
}

var _ services.Source = (*MockSource)(nil)

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) ListPlaylistEntries(ctx context.Context, playlistID string) ([]services.PlaylistEntry, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Entries), nil
}

func (m *MockSource) GetVideoDetails(ctx context.Context, videoID string) (*services.VideoDetails, error) {
	if m.DetailsErr != nil {
		return nil, m.DetailsErr
	}
	if d, ok := m.Details[videoID]; ok {
		return d, nil
	}
	return &services.VideoDetails{VideoID: videoID}, nil
}

func (m *MockSource) ReorderEntry(ctx context.Context, entryID, playlistID, videoID string, position int) error {
	if m.ReorderErr != nil && len(m.Calls) >= m.FailAfter {
		return m.ReorderErr
	}
	m.Calls = append(m.Calls, Call{Method: "reorder", EntryID: entryID, VideoID: videoID, Position: position})

	i := slices.IndexFunc(m.Entries, func(e services.PlaylistEntry) bool { return e.EntryID == entryID })
	if i < 0 {
		return errors.New("entry not found")
	}
	entry := m.Entries[i]
	m.Entries = slices.Delete(m.Entries, i, i+1)
	m.Entries = slices.Insert(m.Entries, min(position, len(m.Entries)), entry)
	return nil
}

func (m *MockSource) DeleteEntry(ctx context.Context, entryID string) error {
	if m.DeleteErr != nil && len(m.Calls) >= m.FailAfter {
		return m.DeleteErr
	}
	m.Calls = append(m.Calls, Call{Method: "delete", EntryID: entryID})
	m.Entries = slices.DeleteFunc(m.Entries, func(e services.PlaylistEntry) bool { return e.EntryID == entryID })
	return nil
}

// AddVideo appends an entry with id e{videoID} and registers its details.
func (m *MockSource) AddVideo(videoID string, scheduled, actual *time.Time, blocked bool) {
	m.Entries = append(m.Entries, services.PlaylistEntry{EntryID: "e" + videoID, VideoID: videoID, Title: "title " + videoID})
	if m.Details == nil {
		m.Details = map[string]*services.VideoDetails{}
	}
	m.Details[videoID] = &services.VideoDetails{
		VideoID:            videoID,
		Found:              true,
		ScheduledStartTime: scheduled,
		ActualStartTime:    actual,
		Blocked:            blocked,
	}
}

// Methods returns the method of every recorded call.
func (m *MockSource) Methods() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Method
	}
	return out
}

// EntryVideoIDs returns the video ids of the current entries in playlist order.
func (m *MockSource) EntryVideoIDs() []string {
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.VideoID
	}
	return out
}

// MustParseTime parses an RFC3339 timestamp or fails the test.
func MustParseTime(t *testing.T, s string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", s, err)
	}
	return &v
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
