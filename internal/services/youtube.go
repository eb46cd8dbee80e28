// YouTube Data API v3 [Source] implementation
//
// Resource shapes follow https://developers.google.com/youtube/v3/docs
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/glyn/stream-inspector/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultYTBaseURL  = "https://www.googleapis.com/youtube/v3"
	playlistPageSize  = 50
	youtubeVideoKind  = "youtube#video"
	defaultRatePerSec = 5.0
)

type resourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId,omitempty"`
}

type playlistItemSnippet struct {
	PlaylistID string      `json:"playlistId,omitempty"`
	Title      string      `json:"title,omitempty"`
	Position   *int        `json:"position,omitempty"`
	ResourceID *resourceID `json:"resourceId,omitempty"`
}

type playlistItemContentDetails struct {
	VideoID string `json:"videoId"`
}

// YouTubePlaylistItem is a playlistItems resource.
type YouTubePlaylistItem struct {
	ID             string                      `json:"id"`
	Snippet        *playlistItemSnippet        `json:"snippet,omitempty"`
	ContentDetails *playlistItemContentDetails `json:"contentDetails,omitempty"`
}

type playlistItemListResponse struct {
	NextPageToken string                `json:"nextPageToken"`
	Items         []YouTubePlaylistItem `json:"items"`
}

type regionRestriction struct {
	Allowed []string `json:"allowed"`
	Blocked []string `json:"blocked"`
}

type videoContentDetails struct {
	RegionRestriction *regionRestriction `json:"regionRestriction"`
}

type liveStreamingDetails struct {
	ScheduledStartTime string `json:"scheduledStartTime"`
	ActualStartTime    string `json:"actualStartTime"`
	ActualEndTime      string `json:"actualEndTime"`
}

// YouTubeVideo is the subset of a videos resource requested with parts liveStreamingDetails and contentDetails.
type YouTubeVideo struct {
	ID                   string                `json:"id"`
	ContentDetails       *videoContentDetails  `json:"contentDetails"`
	LiveStreamingDetails *liveStreamingDetails `json:"liveStreamingDetails"`
}

type videoListResponse struct {
	Items []YouTubeVideo `json:"items"`
}

// YouTubeOpts configures a [YouTubeService].
type YouTubeOpts struct {
	BaseURL           string
	HTTPClient        *http.Client // authorized client, usually from [TokenClient]
	RequestsPerSecond float64      // 0 uses the default, negative disables pacing
}

// YouTubeService implements [Source] against the YouTube Data API.
type YouTubeService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeService creates a new YouTube Data API client.
func NewYouTubeService(opts YouTubeOpts) *YouTubeService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYTBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limit := rate.Limit(opts.RequestsPerSecond)
	switch {
	case opts.RequestsPerSecond == 0:
		limit = rate.Limit(defaultRatePerSec)
	case opts.RequestsPerSecond < 0:
		limit = rate.Inf
	}

	return &YouTubeService{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

func (y *YouTubeService) doRequest(ctx context.Context, method, endpoint string, query url.Values, body, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	apiURL := y.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrAPIRequest, method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListPlaylistEntries pages through GET /playlistItems until no nextPageToken is returned.
func (y *YouTubeService) ListPlaylistEntries(ctx context.Context, playlistID string) ([]PlaylistEntry, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	var entries []PlaylistEntry
	pageToken := ""
	for {
		query := url.Values{
			"part":       {"snippet,id,contentDetails"},
			"playlistId": {playlistID},
			"maxResults": {fmt.Sprint(playlistPageSize)},
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page playlistItemListResponse
		if err := y.doRequest(ctx, http.MethodGet, "/playlistItems", query, nil, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			entry, err := item.entry()
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}

		if page.NextPageToken == "" {
			return entries, nil
		}
		pageToken = page.NextPageToken
	}
}

func (i YouTubePlaylistItem) entry() (PlaylistEntry, error) {
	if i.ID == "" {
		return PlaylistEntry{}, fmt.Errorf("%w: playlist item id", shared.ErrMissingField)
	}
	if i.ContentDetails == nil || i.ContentDetails.VideoID == "" {
		return PlaylistEntry{}, fmt.Errorf("%w: contentDetails.videoId of playlist item %s", shared.ErrMissingField, i.ID)
	}

	entry := PlaylistEntry{EntryID: i.ID, VideoID: i.ContentDetails.VideoID}
	if i.Snippet != nil {
		entry.Title = i.Snippet.Title
	}
	return entry, nil
}

// GetVideoDetails calls GET /videos with parts liveStreamingDetails and contentDetails.
//
// Timestamps are parsed strictly; a malformed value is an error rather than an absent time.
func (y *YouTubeService) GetVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	query := url.Values{
		"part": {"liveStreamingDetails,contentDetails"},
		"id":   {videoID},
	}

	var res videoListResponse
	if err := y.doRequest(ctx, http.MethodGet, "/videos", query, nil, &res); err != nil {
		return nil, err
	}

	details := &VideoDetails{VideoID: videoID}
	if len(res.Items) == 0 {
		return details, nil
	}

	video := res.Items[0]
	details.Found = true

	if live := video.LiveStreamingDetails; live != nil {
		var err error
		if details.ScheduledStartTime, err = shared.ParseTime("scheduledStartTime", live.ScheduledStartTime); err != nil {
			return nil, fmt.Errorf("video %s: %w", videoID, err)
		}
		if details.ActualStartTime, err = shared.ParseTime("actualStartTime", live.ActualStartTime); err != nil {
			return nil, fmt.Errorf("video %s: %w", videoID, err)
		}
	}

	if cd := video.ContentDetails; cd != nil && cd.RegionRestriction != nil {
		details.Blocked = len(cd.RegionRestriction.Blocked) > 0
	}

	return details, nil
}

// ReorderEntry calls PUT /playlistItems?part=snippet with the new position.
func (y *YouTubeService) ReorderEntry(ctx context.Context, entryID, playlistID, videoID string, position int) error {
	if position < 0 {
		return fmt.Errorf("%w: negative position %d", shared.ErrInvalidArgument, position)
	}

	body := YouTubePlaylistItem{
		ID: entryID,
		Snippet: &playlistItemSnippet{
			PlaylistID: playlistID,
			Position:   &position,
			ResourceID: &resourceID{Kind: youtubeVideoKind, VideoID: videoID},
		},
	}

	query := url.Values{"part": {"snippet"}}
	return y.doRequest(ctx, http.MethodPut, "/playlistItems", query, body, nil)
}

// DeleteEntry calls DELETE /playlistItems?id={entryID}.
func (y *YouTubeService) DeleteEntry(ctx context.Context, entryID string) error {
	if entryID == "" {
		return fmt.Errorf("%w: playlist item id", shared.ErrMissingArgument)
	}
	return y.doRequest(ctx, http.MethodDelete, "/playlistItems", url.Values{"id": {entryID}}, nil, nil)
}
