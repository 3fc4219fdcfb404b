package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kevinmilly/yt-breeze/internal/model"
	"github.com/kevinmilly/yt-breeze/pkg/youtube"
)

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

const modelJSON = `{
	"bottom_line": "a video",
	"key_points": ["one", "two", "three", "four"],
	"debate": {"central_claim": "claim", "evidence_reliability": {"verified_facts": 2}}
}`

type stubTranscripts struct {
	calls int
	text  string
	err   error
}

func (s *stubTranscripts) Fetch(ctx context.Context, videoID string) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubMetadata struct {
	calls int
	meta  model.VideoMetadata
}

func (s *stubMetadata) Resolve(ctx context.Context, videoID string) model.VideoMetadata {
	s.calls++
	if s.meta.VideoID == "" {
		return model.VideoMetadata{VideoID: videoID, Title: "Stub Title", Thumbnail: youtube.ThumbnailURL(videoID)}
	}
	return s.meta
}

type stubCompleter struct {
	calls      int
	raw        string
	err        error
	lastPrompt string
	lastKey    string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt, apiKey string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastKey = apiKey
	return s.raw, s.err
}

type pipeline struct {
	svc         *AnalyzeService
	transcripts *stubTranscripts
	metadata    *stubMetadata
	completer   *stubCompleter
	quota       *QuotaService
}

func newPipeline(limit int) *pipeline {
	transcripts := &stubTranscripts{text: "hello world transcript"}
	metadata := &stubMetadata{}
	completer := &stubCompleter{raw: modelJSON}
	quota := NewQuotaService(limit, time.Hour)

	svc := NewAnalyzeService(
		transcripts, metadata, completer,
		NewCacheService(""), quota, &Stats{},
		30*time.Second,
	)
	return &pipeline{svc: svc, transcripts: transcripts, metadata: metadata, completer: completer, quota: quota}
}

func TestAnalyze_InvalidURLTriggersNoNetworkCall(t *testing.T) {
	p := newPipeline(5)

	_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{
		YoutubeURL: "https://vimeo.com/123456789",
	}, "client")

	if !errors.Is(err, youtube.ErrDisallowedDomain) {
		t.Fatalf("got %v, want ErrDisallowedDomain", err)
	}
	if p.transcripts.calls != 0 || p.metadata.calls != 0 || p.completer.calls != 0 {
		t.Errorf("collaborators were called (transcript=%d metadata=%d model=%d), want none",
			p.transcripts.calls, p.metadata.calls, p.completer.calls)
	}
	if got := p.quota.Remaining("client"); got != 5 {
		t.Errorf("quota remaining = %d, want untouched 5", got)
	}
}

func TestAnalyze_SuccessMergesMetadataAndConsumesQuota(t *testing.T) {
	p := newPipeline(5)

	a, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{YoutubeURL: validURL}, "client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta, ok := a["metadata"].(model.VideoMetadata)
	if !ok {
		t.Fatalf("metadata = %T, want model.VideoMetadata", a["metadata"])
	}
	if meta.VideoID != "dQw4w9WgXcQ" || meta.Title != "Stub Title" {
		t.Errorf("metadata = %+v", meta)
	}

	d, ok := a["debate"].(*model.Debate)
	if !ok {
		t.Fatalf("debate = %T, want *model.Debate", a["debate"])
	}
	if d.EvidenceReliability.VerifiedFacts != 2 {
		t.Errorf("verified_facts = %d, want 2", d.EvidenceReliability.VerifiedFacts)
	}

	if !strings.Contains(p.completer.lastPrompt, "hello world transcript") {
		t.Error("prompt should contain the transcript")
	}
	if !strings.Contains(p.completer.lastPrompt, "Stub Title") {
		t.Error("prompt should contain the resolved title")
	}

	if got := p.quota.Remaining("client"); got != 4 {
		t.Errorf("quota remaining = %d, want 4 after one success", got)
	}
}

func TestAnalyze_SixthRequestRejected(t *testing.T) {
	p := newPipeline(5)

	for i := 0; i < 5; i++ {
		if _, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{YoutubeURL: validURL}, "client"); err != nil {
			t.Fatalf("request %d failed: %v", i+1, err)
		}
	}

	_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{YoutubeURL: validURL}, "client")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("6th request: got %v, want ErrQuotaExceeded", err)
	}
	if p.completer.calls != 5 {
		t.Errorf("model calls = %d, want 5 (rejected request must not reach the model)", p.completer.calls)
	}
}

func TestAnalyze_BYOKSkipsQuota(t *testing.T) {
	p := newPipeline(1)

	for i := 0; i < 3; i++ {
		_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{
			YoutubeURL: validURL,
			UserAPIKey: "user-key",
		}, "client")
		if err != nil {
			t.Fatalf("BYOK request %d failed: %v", i+1, err)
		}
	}

	if got := p.quota.Remaining("client"); got != 1 {
		t.Errorf("quota remaining = %d, want 1 (BYOK never increments)", got)
	}
	if p.completer.lastKey != "user-key" {
		t.Errorf("completer key = %q, want the caller's key", p.completer.lastKey)
	}
}

func TestAnalyze_TranscriptFailureDoesNotConsumeQuota(t *testing.T) {
	p := newPipeline(5)
	p.transcripts.err = ErrEmptyTranscript
	p.transcripts.text = ""

	_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{YoutubeURL: validURL}, "client")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("got %v, want ErrEmptyTranscript", err)
	}
	if p.completer.calls != 0 {
		t.Errorf("model calls = %d, want 0", p.completer.calls)
	}
	if got := p.quota.Remaining("client"); got != 5 {
		t.Errorf("quota remaining = %d, want 5 (failed request must not be charged)", got)
	}
}

func TestAnalyze_ModelFailureDoesNotConsumeQuota(t *testing.T) {
	p := newPipeline(5)
	p.completer.err = errors.New("upstream 503")

	_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{YoutubeURL: validURL}, "client")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := p.quota.Remaining("client"); got != 5 {
		t.Errorf("quota remaining = %d, want 5", got)
	}
}

func TestAnalyze_ParseFailureSurfacesRaw(t *testing.T) {
	p := newPipeline(5)
	p.completer.raw = "sorry, I can't do that"

	_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{YoutubeURL: validURL}, "client")

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %T, want *ParseError", err)
	}
	if parseErr.Raw != "sorry, I can't do that" {
		t.Errorf("Raw = %q, want the unmodified model text", parseErr.Raw)
	}
	if got := p.quota.Remaining("client"); got != 5 {
		t.Errorf("quota remaining = %d, want 5", got)
	}
}

func TestAnalyze_DirectTranscriptVariant(t *testing.T) {
	p := newPipeline(5)

	a, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{
		Transcript: "supplied transcript text",
		Title:      "Supplied Title",
	}, "client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.transcripts.calls != 0 || p.metadata.calls != 0 {
		t.Errorf("providers were called (transcript=%d metadata=%d), want none", p.transcripts.calls, p.metadata.calls)
	}
	if !strings.Contains(p.completer.lastPrompt, "supplied transcript text") {
		t.Error("prompt should contain the supplied transcript")
	}
	if !strings.Contains(p.completer.lastPrompt, "Supplied Title") {
		t.Error("prompt should contain the supplied title")
	}
	if _, ok := a["metadata"]; ok {
		t.Error("direct variant should not fabricate video metadata")
	}
	if got := p.quota.Remaining("client"); got != 4 {
		t.Errorf("quota remaining = %d, want 4 (model call is still quota-guarded)", got)
	}
}

func TestAnalyze_DirectVariantFallbackTitle(t *testing.T) {
	p := newPipeline(5)

	_, err := p.svc.Analyze(context.Background(), &model.AnalyzeRequest{
		Transcript: "text only",
	}, "client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.completer.lastPrompt, FallbackTitle) {
		t.Error("prompt should fall back to the default title")
	}
}
