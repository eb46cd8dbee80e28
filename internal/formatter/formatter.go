// package formatter renders playlist items, prune decisions and run history as plain text, CSV, Markdown or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glyn/stream-inspector/internal/models"
	"github.com/glyn/stream-inspector/internal/shared"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat resolves a format name; "md" is accepted for Markdown and an empty name means text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// Render encodes items in the given format.
func Render(format Format, playlistID string, items []models.Item) ([]byte, error) {
	switch format {
	case FormatText, "":
		return ItemsToText(items), nil
	case FormatCSV:
		return ItemsToCSV(items)
	case FormatMarkdown:
		return ItemsToMarkdown(playlistID, items), nil
	case FormatJSON:
		return shared.MarshalJSON(items, true)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// ItemLine renders one item as "{video_id}: {title} {scheduled} {actual}" followed by "** invalid" when it has
// no scheduled start and "** blocked" when it is region blocked.
func ItemLine(item models.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s %s", item.VideoID, item.Title,
		shared.FormatTime(item.ScheduledStartTime), shared.FormatTime(item.ActualStartTime))
	if item.Invalid() {
		b.WriteString(" ** invalid")
	}
	if item.Blocked {
		b.WriteString(" ** blocked")
	}
	return b.String()
}

// ItemsToText renders one [ItemLine] per item.
func ItemsToText(items []models.Item) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString(ItemLine(item))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ItemsToCSV converts items to CSV with columns: Position, Video ID, Entry ID, Title, Scheduled Start, Actual Start, Tier, Invalid, Blocked
func ItemsToCSV(items []models.Item) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Video ID", "Entry ID", "Title", "Scheduled Start", "Actual Start", "Tier", "Invalid", "Blocked"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, item := range items {
		record := []string{
			strconv.Itoa(i),
			item.VideoID,
			item.EntryID,
			item.Title,
			optionalTime(item.ScheduledStartTime),
			optionalTime(item.ActualStartTime),
			item.Tier().String(),
			strconv.FormatBool(item.Invalid()),
			strconv.FormatBool(item.Blocked),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ItemsToMarkdown renders items as a Markdown table headed by the playlist id.
func ItemsToMarkdown(playlistID string, items []models.Item) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Playlist %s\n\n", playlistID)
	fmt.Fprintf(&buf, "**Items**: %d\n\n", len(items))

	buf.WriteString("| # | Video | Title | Scheduled | Actual | Flags |\n")
	buf.WriteString("|---|---|---|---|---|---|\n")
	for i, item := range items {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s | %s |\n",
			i, item.VideoID, escapeCell(item.Title),
			shared.FormatTime(item.ScheduledStartTime), shared.FormatTime(item.ActualStartTime), flags(item))
	}

	return buf.Bytes()
}

// DecisionsToText renders one line per prune decision with the reason, the running streamed count and the [ItemLine].
func DecisionsToText(decisions []models.Decision) []byte {
	var buf bytes.Buffer
	for _, d := range decisions {
		fmt.Fprintf(&buf, "%-16s %3d  %s\n", d.Reason, d.StreamedCount, ItemLine(d.Item))
	}
	return buf.Bytes()
}

// RunsToText renders run history, newest first as given.
func RunsToText(runs []models.Run) []byte {
	var buf bytes.Buffer
	for _, r := range runs {
		mode := "live"
		if r.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(&buf, "%s  %s  %-6s %-7s %-9s %s", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Command, mode, r.Status, r.PlaylistID)
		if r.MaxStreamed != nil {
			fmt.Fprintf(&buf, " max=%d", *r.MaxStreamed)
		}
		if r.Error != "" {
			fmt.Fprintf(&buf, " error=%q", r.Error)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ActionsToText renders the actions of one run in sequence order.
func ActionsToText(actions []models.Action) []byte {
	var buf bytes.Buffer
	for _, a := range actions {
		status := "applied"
		if !a.Applied {
			status = "skipped"
		}
		detail := a.Reason
		if a.Position != nil {
			detail = "position " + strconv.Itoa(*a.Position)
		}
		fmt.Fprintf(&buf, "%4d  %-7s %-7s %s (%s: %s) %s\n", a.Sequence, a.Kind, status, a.EntryID, a.VideoID, a.Title, detail)
	}
	return buf.Bytes()
}

func flags(item models.Item) string {
	var f []string
	if item.Invalid() {
		f = append(f, "invalid")
	}
	if item.Blocked {
		f = append(f, "blocked")
	}
	return strings.Join(f, ", ")
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
