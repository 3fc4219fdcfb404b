package model

// AnalyzeRequest is the body of POST /api/summarize. Either YoutubeURL is
// set (primary flow) or Transcript is supplied directly, in which case URL
// validation and transcript acquisition are skipped.
type AnalyzeRequest struct {
	YoutubeURL string `json:"youtubeUrl"`
	Transcript string `json:"transcript"`
	Title      string `json:"title"`
	UserAPIKey string `json:"userApiKey"`
}

// BYOK reports whether the caller supplied their own model API key. BYOK
// requests are never counted against, or blocked by, the free-tier quota.
func (r *AnalyzeRequest) BYOK() bool {
	return r.UserAPIKey != ""
}

// VideoMetadata is merged into a successful Analysis under "metadata".
type VideoMetadata struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}
