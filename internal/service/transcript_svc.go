package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kevinmilly/yt-breeze/internal/middleware"
)

// Transcript acquisition failures. The handler maps these to user-facing
// responses; raw provider diagnostics stay in the logs.
var (
	ErrMissingAPIKey       = errors.New("transcript provider API key not configured")
	ErrProviderUnreachable = errors.New("transcript provider unreachable")
	ErrInvalidFormat       = errors.New("transcript provider returned unexpected payload")
	ErrEmptyTranscript     = errors.New("transcript is empty")
)

// TranscriptProvider fetches the full caption text for a video. Historical
// deployments have used embedded caption APIs, VTT scraping and dedicated
// transcript services interchangeably; the orchestrator only depends on this
// interface.
type TranscriptProvider interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// TranscriptClient calls a Supadata-style transcript API:
// GET {base}/youtube/transcript?videoId=X with an x-api-key header, returning
// {"content": [{"text": "..."}, ...]}.
type TranscriptClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewTranscriptClient creates a transcript client with a bounded timeout.
// A timeout surfaces as ErrProviderUnreachable, same as a non-2xx response.
func NewTranscriptClient(baseURL, apiKey string, timeout time.Duration) *TranscriptClient {
	return &TranscriptClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type transcriptPayload struct {
	Content json.RawMessage `json:"content"`
}

type captionFragment struct {
	Text string `json:"text"`
}

// Fetch retrieves and flattens the transcript for videoID. No credential
// means no network call at all.
func (t *TranscriptClient) Fetch(ctx context.Context, videoID string) (string, error) {
	if t.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqURL := fmt.Sprintf("%s/youtube/transcript?videoId=%s", t.baseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	req.Header.Set("x-api-key", t.apiKey)

	resp, err := t.http.Do(req)
	if err != nil {
		middleware.Logger.Warn().Err(err).Str("videoId", videoID).Msg("transcript request failed")
		return "", fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Body is diagnostic only, never surfaced to the end user.
		middleware.Logger.Warn().
			Int("status", resp.StatusCode).
			Str("videoId", videoID).
			Str("body", truncate(string(body), 512)).
			Msg("transcript provider non-success status")
		return "", fmt.Errorf("%w: status %d", ErrProviderUnreachable, resp.StatusCode)
	}

	return flattenTranscript(body)
}

// flattenTranscript validates the provider payload and joins all caption
// fragments, in provider order, into a single trimmed text blob.
func flattenTranscript(body []byte) (string, error) {
	var payload transcriptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(payload.Content) == 0 {
		return "", ErrInvalidFormat
	}

	var fragments []captionFragment
	if err := json.Unmarshal(payload.Content, &fragments); err != nil {
		return "", fmt.Errorf("%w: content is not a caption list", ErrInvalidFormat)
	}

	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.Text != "" {
			parts = append(parts, f.Text)
		}
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
