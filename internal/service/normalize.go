package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kevinmilly/yt-breeze/internal/middleware"
	"github.com/kevinmilly/yt-breeze/internal/model"
)

// ParseError means the model output was not valid JSON at all. Raw carries
// the unmodified text for debugging; it is never trusted structurally.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "model returned invalid JSON"
}

// ParseAnalysis parses raw model output into an Analysis document. Malformed
// JSON is a *ParseError. Valid JSON with a wrong-shaped debate section is
// recoverable: the debate object is rebuilt field-by-field with defaults, so
// the returned document always carries a complete debate shape. All other
// top-level fields pass through as the model produced them.
func ParseAnalysis(raw string) (model.Analysis, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Raw: raw}
	}

	doc["debate"] = NormalizeDebate(doc["debate"])
	return model.Analysis(doc), nil
}

// NormalizeDebate rebuilds the debate section from arbitrary decoded JSON.
// Missing or mistyped fields get defaults; extra keys are discarded. It
// never partially fails: any panic during reconstruction yields the fully
// defaulted shape.
func NormalizeDebate(v any) (d *model.Debate) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.Warn().Interface("panic", r).Msg("debate normalization recovered")
			d = model.DefaultDebate()
		}
	}()

	obj, ok := v.(map[string]any)
	if !ok {
		return model.DefaultDebate()
	}

	return &model.Debate{
		CentralClaim:          coerceString(obj["central_claim"]),
		ArgumentsFor:          coerceArguments(obj["arguments_for"]),
		ArgumentsAgainst:      coerceCounterarguments(obj["arguments_against"]),
		LogicalFallacies:      coerceFallacies(obj["logical_fallacies"]),
		EvidenceReliability:   coerceReliability(obj["evidence_reliability"]),
		NeutralInterpretation: coerceString(obj["neutral_interpretation"]),
		Verdict:               coerceString(obj["verdict"]),
	}
}

// coerceString uses v when it is a non-empty string, else the fallback
// literal.
func coerceString(v any) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return model.DefaultString
}

// coerceInt accepts a finite JSON number, or an integer encoded as a string;
// anything else is 0.
func coerceInt(v any) int {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// coerceStrength uses v when it is a non-empty string, else "low".
func coerceStrength(v any) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return "low"
}

// asItems returns v's elements when v is an array, else nil. Each element is
// handed to a per-item normalizer by the callers below.
func asItems(v any) []any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	return items
}

// asObject returns the element as a map, or an empty map for garbage items
// so per-field defaults still apply.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func coerceArguments(v any) []model.Argument {
	items := asItems(v)
	out := make([]model.Argument, 0, len(items))
	for _, it := range items {
		obj := asObject(it)
		out = append(out, model.Argument{
			Argument: coerceString(obj["argument"]),
			Evidence: coerceString(obj["evidence"]),
			Strength: coerceStrength(obj["strength"]),
		})
	}
	return out
}

func coerceCounterarguments(v any) []model.Counterargument {
	items := asItems(v)
	out := make([]model.Counterargument, 0, len(items))
	for _, it := range items {
		obj := asObject(it)
		out = append(out, model.Counterargument{
			Counterpoint: coerceString(obj["counterpoint"]),
			Evidence:     coerceString(obj["evidence"]),
			Strength:     coerceStrength(obj["strength"]),
		})
	}
	return out
}

func coerceFallacies(v any) []model.Fallacy {
	items := asItems(v)
	out := make([]model.Fallacy, 0, len(items))
	for _, it := range items {
		obj := asObject(it)
		out = append(out, model.Fallacy{
			Type:         coerceString(obj["type"]),
			Example:      coerceString(obj["example"]),
			WhyItMatters: coerceString(obj["why_it_matters"]),
		})
	}
	return out
}

func coerceReliability(v any) model.EvidenceReliability {
	obj := asObject(v)
	return model.EvidenceReliability{
		VerifiedFacts:        coerceInt(obj["verified_facts"]),
		SpeculationLevel:     coerceString(obj["speculation_level"]),
		IndependentSources:   coerceInt(obj["independent_sources"]),
		VideoEvidenceQuality: coerceInt(obj["video_evidence_quality"]),
	}
}
