package service

import (
	"errors"
	"testing"

	"github.com/kevinmilly/yt-breeze/internal/model"
)

func TestParseAnalysis_MalformedJSON(t *testing.T) {
	raw := "{not json"

	_, err := ParseAnalysis(raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Raw != raw {
		t.Errorf("Raw = %q, want the original text unmodified", parseErr.Raw)
	}
}

func TestParseAnalysis_PassesThroughTopLevel(t *testing.T) {
	raw := `{"bottom_line": "short video", "better_title": "A Better Title", "key_points": ["a", "b"]}`

	a, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a["bottom_line"] != "short video" {
		t.Errorf("bottom_line = %v, want passthrough", a["bottom_line"])
	}
	if a["better_title"] != "A Better Title" {
		t.Errorf("better_title = %v, want passthrough", a["better_title"])
	}
}

func TestParseAnalysis_AlwaysCarriesDebate(t *testing.T) {
	a, err := ParseAnalysis(`{"bottom_line": "x"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := a["debate"].(*model.Debate)
	if !ok {
		t.Fatalf("debate = %T, want *model.Debate", a["debate"])
	}
	if d.CentralClaim != model.DefaultString {
		t.Errorf("central_claim = %q, want default", d.CentralClaim)
	}
}

func TestNormalizeDebate_MissingArrayAndStringNumber(t *testing.T) {
	d := NormalizeDebate(map[string]any{
		"central_claim": "the earth is round",
		"arguments_against": []any{
			map[string]any{"counterpoint": "looks flat", "strength": "high"},
		},
		"evidence_reliability": map[string]any{
			"verified_facts": "3",
		},
	})

	if d.ArgumentsFor == nil || len(d.ArgumentsFor) != 0 {
		t.Errorf("arguments_for = %v, want empty slice", d.ArgumentsFor)
	}
	if d.EvidenceReliability.VerifiedFacts != 3 {
		t.Errorf("verified_facts = %d, want 3 (parsed from string)", d.EvidenceReliability.VerifiedFacts)
	}
	if d.CentralClaim != "the earth is round" {
		t.Errorf("central_claim = %q, want passthrough", d.CentralClaim)
	}
	if len(d.ArgumentsAgainst) != 1 {
		t.Fatalf("arguments_against length = %d, want 1", len(d.ArgumentsAgainst))
	}
	if d.ArgumentsAgainst[0].Evidence != model.DefaultString {
		t.Errorf("missing evidence = %q, want default", d.ArgumentsAgainst[0].Evidence)
	}
	if d.ArgumentsAgainst[0].Strength != "high" {
		t.Errorf("strength = %q, want passthrough", d.ArgumentsAgainst[0].Strength)
	}
}

func TestNormalizeDebate_GarbageValue(t *testing.T) {
	for _, v := range []any{"oops", 42.0, []any{"a"}, nil, true} {
		d := NormalizeDebate(v)

		if d.CentralClaim != model.DefaultString {
			t.Errorf("central_claim for %v = %q, want %q", v, d.CentralClaim, model.DefaultString)
		}
		if d.NeutralInterpretation != model.DefaultString {
			t.Errorf("neutral_interpretation for %v = %q, want default", v, d.NeutralInterpretation)
		}
		if d.Verdict != model.DefaultString {
			t.Errorf("verdict for %v = %q, want default", v, d.Verdict)
		}
		if len(d.ArgumentsFor) != 0 || len(d.ArgumentsAgainst) != 0 || len(d.LogicalFallacies) != 0 {
			t.Errorf("arrays for %v should be empty", v)
		}
		r := d.EvidenceReliability
		if r.VerifiedFacts != 0 || r.IndependentSources != 0 || r.VideoEvidenceQuality != 0 {
			t.Errorf("numeric fields for %v should be 0", v)
		}
		if r.SpeculationLevel != model.DefaultString {
			t.Errorf("speculation_level for %v = %q, want default", v, r.SpeculationLevel)
		}
	}
}

func TestNormalizeDebate_GarbageArrayItems(t *testing.T) {
	d := NormalizeDebate(map[string]any{
		"arguments_for": []any{"not an object", map[string]any{"argument": "real one"}},
	})

	if len(d.ArgumentsFor) != 2 {
		t.Fatalf("arguments_for length = %d, want 2", len(d.ArgumentsFor))
	}
	if d.ArgumentsFor[0].Argument != model.DefaultString {
		t.Errorf("garbage item argument = %q, want default", d.ArgumentsFor[0].Argument)
	}
	if d.ArgumentsFor[0].Strength != "low" {
		t.Errorf("garbage item strength = %q, want \"low\"", d.ArgumentsFor[0].Strength)
	}
	if d.ArgumentsFor[1].Argument != "real one" {
		t.Errorf("real item argument = %q, want passthrough", d.ArgumentsFor[1].Argument)
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"json number", 7.0, 7},
		{"string integer", "3", 3},
		{"padded string integer", " 12 ", 12},
		{"non-numeric string", "many", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"float string", "3.5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceInt(tt.input); got != tt.want {
				t.Errorf("coerceInt(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoerceString(t *testing.T) {
	if got := coerceString("hello"); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := coerceString(""); got != model.DefaultString {
		t.Errorf("empty string should default, got %q", got)
	}
	if got := coerceString("   "); got != model.DefaultString {
		t.Errorf("whitespace-only string should default, got %q", got)
	}
	if got := coerceString(5.0); got != model.DefaultString {
		t.Errorf("number should default, got %q", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
