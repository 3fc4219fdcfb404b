package service

import (
	"context"
	"errors"
	"time"

	"github.com/kevinmilly/yt-breeze/internal/middleware"
	"github.com/kevinmilly/yt-breeze/internal/model"
	"github.com/kevinmilly/yt-breeze/pkg/youtube"
)

// ErrQuotaExceeded means the client spent its free-tier allowance for the
// current window.
var ErrQuotaExceeded = errors.New("free-tier limit reached")

// AnalyzeService sequences the full pipeline: validate, quota, transcript +
// metadata, prompt, model call, normalization. Each step can short-circuit;
// nothing is retried.
type AnalyzeService struct {
	transcripts  TranscriptProvider
	metadata     MetadataResolver
	completer    Completer
	cache        *CacheService
	quota        *QuotaService
	stats        *Stats
	modelTimeout time.Duration
}

// NewAnalyzeService wires the pipeline's collaborators together.
func NewAnalyzeService(
	transcripts TranscriptProvider,
	metadata MetadataResolver,
	completer Completer,
	cache *CacheService,
	quota *QuotaService,
	stats *Stats,
	modelTimeout time.Duration,
) *AnalyzeService {
	return &AnalyzeService{
		transcripts:  transcripts,
		metadata:     metadata,
		completer:    completer,
		cache:        cache,
		quota:        quota,
		stats:        stats,
		modelTimeout: modelTimeout,
	}
}

// Quota exposes the quota service (for the handler's remaining-count header).
func (s *AnalyzeService) Quota() *QuotaService {
	return s.quota
}

// Analyze runs one request through the pipeline. clientKey identifies the
// caller for quota purposes (a salted hash, never a raw IP). The returned
// errors are the pipeline's sentinels plus *ParseError; the handler owns the
// HTTP translation.
func (s *AnalyzeService) Analyze(ctx context.Context, req *model.AnalyzeRequest, clientKey string) (model.Analysis, error) {
	s.stats.Requests.Add(1)

	if req.Transcript != "" {
		return s.analyzeDirect(ctx, req, clientKey)
	}

	// Validation precedes everything: a bad URL must trigger no network
	// call and consume no quota.
	videoID, err := youtube.ParseVideoURL(req.YoutubeURL)
	if err != nil {
		return nil, err
	}

	// A cached analysis is free: no providers, no quota.
	if cached, err := s.cache.GetAnalysis(ctx, videoID); err == nil && cached != nil {
		s.stats.CacheHits.Add(1)
		s.stats.AnalysesServed.Add(1)
		return cached, nil
	}
	s.stats.CacheMisses.Add(1)

	release, err := s.reserveQuota(req, clientKey)
	if err != nil {
		return nil, err
	}

	transcript, meta, err := s.gather(ctx, videoID)
	if err != nil {
		release()
		return nil, err
	}

	analysis, err := s.runModel(ctx, meta.Title, transcript, req.UserAPIKey)
	if err != nil {
		release()
		return nil, err
	}

	analysis["metadata"] = meta
	if err := s.cache.SetAnalysis(ctx, videoID, analysis); err != nil {
		middleware.Logger.Warn().Err(err).Str("videoId", videoID).Msg("analysis cache write failed")
	}

	s.stats.AnalysesServed.Add(1)
	return analysis, nil
}

// analyzeDirect handles the transcript-supplied variant: no URL validation,
// no acquisition, but the model call is still quota-guarded.
func (s *AnalyzeService) analyzeDirect(ctx context.Context, req *model.AnalyzeRequest, clientKey string) (model.Analysis, error) {
	title := req.Title
	if title == "" {
		title = FallbackTitle
	}

	release, err := s.reserveQuota(req, clientKey)
	if err != nil {
		return nil, err
	}

	analysis, err := s.runModel(ctx, title, req.Transcript, req.UserAPIKey)
	if err != nil {
		release()
		return nil, err
	}

	s.stats.AnalysesServed.Add(1)
	return analysis, nil
}

// reserveQuota takes a free-tier slot unless the caller brought their own
// key. The returned release func gives the slot back on downstream failure,
// so only fully successful requests are charged.
func (s *AnalyzeService) reserveQuota(req *model.AnalyzeRequest, clientKey string) (func(), error) {
	if req.BYOK() {
		return func() {}, nil
	}
	if !s.quota.Reserve(clientKey) {
		s.stats.QuotaRejections.Add(1)
		return nil, ErrQuotaExceeded
	}
	return func() { s.quota.Release(clientKey) }, nil
}

// gather fetches the transcript and the video metadata concurrently. The two
// have no ordering dependency; both complete before prompt building.
// Metadata resolution cannot fail; a transcript failure fails the request.
func (s *AnalyzeService) gather(ctx context.Context, videoID string) (string, model.VideoMetadata, error) {
	metaCh := make(chan model.VideoMetadata, 1)
	go func() {
		metaCh <- s.metadata.Resolve(ctx, videoID)
	}()

	transcript, err := s.fetchTranscript(ctx, videoID)
	meta := <-metaCh
	if err != nil {
		return "", model.VideoMetadata{}, err
	}
	return transcript, meta, nil
}

// fetchTranscript consults the cache first, then the provider.
func (s *AnalyzeService) fetchTranscript(ctx context.Context, videoID string) (string, error) {
	if cached, err := s.cache.GetTranscript(ctx, videoID); err == nil && cached != "" {
		return cached, nil
	}

	text, err := s.transcripts.Fetch(ctx, videoID)
	if err != nil {
		return "", err
	}

	if err := s.cache.SetTranscript(ctx, videoID, text); err != nil {
		middleware.Logger.Warn().Err(err).Str("videoId", videoID).Msg("transcript cache write failed")
	}
	return text, nil
}

// runModel builds the prompt, makes the single completion call under a
// bounded timeout, and normalizes the output.
func (s *AnalyzeService) runModel(ctx context.Context, title, transcript, userKey string) (model.Analysis, error) {
	prompt := BuildPrompt(title, transcript)

	callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	s.stats.ModelCalls.Add(1)
	raw, err := s.completer.Complete(callCtx, prompt, userKey)
	if err != nil {
		s.stats.ModelErrors.Add(1)
		return nil, err
	}

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		s.stats.ModelErrors.Add(1)
		return nil, err
	}
	return analysis, nil
}
