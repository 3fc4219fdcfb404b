package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kevinmilly/yt-breeze/internal/middleware"
	"github.com/kevinmilly/yt-breeze/internal/model"
)

// Cache TTLs. Transcripts are immutable for a given video so they keep
// longer; finished analyses expire sooner in case the prompt evolves.
const (
	AnalysisCacheTTL   = time.Hour
	TranscriptCacheTTL = 24 * time.Hour
)

// CacheService provides a Redis cache-aside layer for transcripts and
// finished analyses. If redisURL is empty or the connection fails, all
// operations become no-ops and every lookup misses.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService connects to Redis. Failure to connect disables caching
// rather than failing startup.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		middleware.Logger.Info().Msg("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		middleware.Logger.Warn().Err(err).Msg("redis: invalid URL, caching disabled")
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn().Err(err).Msg("redis: connection failed, caching disabled")
		return &CacheService{}
	}

	middleware.Logger.Info().Msg("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetAnalysis retrieves a cached finished analysis. Returns nil on miss or
// when caching is disabled.
func (c *CacheService) GetAnalysis(ctx context.Context, videoID string) (model.Analysis, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, analysisKey(videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var a model.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetAnalysis stores a finished analysis.
func (c *CacheService) SetAnalysis(ctx context.Context, videoID string, a model.Analysis) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, analysisKey(videoID), b, AnalysisCacheTTL).Err()
}

// GetTranscript retrieves a cached transcript. Empty string means miss.
func (c *CacheService) GetTranscript(ctx context.Context, videoID string) (string, error) {
	if c.rdb == nil {
		return "", nil
	}
	text, err := c.rdb.Get(ctx, transcriptKey(videoID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return text, err
}

// SetTranscript stores a flattened transcript.
func (c *CacheService) SetTranscript(ctx context.Context, videoID, text string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, transcriptKey(videoID), text, TranscriptCacheTTL).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func analysisKey(videoID string) string {
	return "analysis:" + videoID
}

func transcriptKey(videoID string) string {
	return "transcript:" + videoID
}
