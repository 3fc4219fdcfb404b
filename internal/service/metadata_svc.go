package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kevinmilly/yt-breeze/internal/middleware"
	"github.com/kevinmilly/yt-breeze/internal/model"
	"github.com/kevinmilly/yt-breeze/pkg/youtube"
)

// FallbackTitle is used whenever oEmbed lookup fails for any reason.
const FallbackTitle = "Untitled Video"

// MetadataResolver looks up a video's title and thumbnail. Implementations
// never fail: a lookup problem yields deterministic fallback values, the
// analysis proceeds regardless.
type MetadataResolver interface {
	Resolve(ctx context.Context, videoID string) model.VideoMetadata
}

// OEmbedClient resolves metadata through YouTube's unauthenticated oEmbed
// endpoint.
type OEmbedClient struct {
	baseURL string
	http    *http.Client
}

// NewOEmbedClient creates an oEmbed metadata resolver with a bounded timeout.
// baseURL defaults to the public YouTube endpoint when empty.
func NewOEmbedClient(baseURL string, timeout time.Duration) *OEmbedClient {
	if baseURL == "" {
		baseURL = "https://www.youtube.com/oembed"
	}
	return &OEmbedClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Resolve fetches title and thumbnail for videoID. Any network or parse
// error degrades to the fallback metadata.
func (o *OEmbedClient) Resolve(ctx context.Context, videoID string) model.VideoMetadata {
	fallback := model.VideoMetadata{
		VideoID:   videoID,
		Title:     FallbackTitle,
		Thumbnail: youtube.ThumbnailURL(videoID),
	}

	reqURL := fmt.Sprintf("%s?url=%s&format=json", o.baseURL, url.QueryEscape(youtube.WatchURL(videoID)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fallback
	}

	resp, err := o.http.Do(req)
	if err != nil {
		middleware.Logger.Debug().Err(err).Str("videoId", videoID).Msg("oembed lookup failed")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}

	var payload struct {
		Title        string `json:"title"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fallback
	}

	if payload.Title != "" {
		fallback.Title = payload.Title
	}
	if payload.ThumbnailURL != "" {
		fallback.Thumbnail = payload.ThumbnailURL
	}
	return fallback
}
