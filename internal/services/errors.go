package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/glyn/stream-inspector/internal/shared"
)

// APIError is a non-2xx response from the Data API.
//
// It unwraps to the [shared] sentinel matching the status so callers can use errors.Is.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube API error (status %d, %s): %s", e.StatusCode, e.Reason, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("youtube API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("youtube API error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return shared.ErrTokenExpired
	case e.StatusCode == http.StatusForbidden:
		return shared.ErrForbidden
	case e.StatusCode == http.StatusNotFound && e.Reason == "playlistNotFound":
		return shared.ErrPlaylistNotFound
	case e.StatusCode >= 500:
		return shared.ErrServiceUnavailable
	default:
		return shared.ErrAPIRequest
	}
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason  string `json:"reason"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"error"`
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}

	apiErr.Message = env.Error.Message
	if len(env.Error.Errors) > 0 {
		apiErr.Reason = env.Error.Errors[0].Reason
	}
	return apiErr
}
