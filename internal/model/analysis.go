package model

// Analysis is the JSON document returned to clients. Top-level fields
// (bottom_line, key_points, fluff_level, clickbait_accuracy, ...) come from
// the model best-effort; the debate section is rebuilt with a guaranteed
// shape and metadata is merged in before the document leaves the server.
type Analysis map[string]any

// DefaultString fills every debate string field the model omitted or mistyped.
const DefaultString = "insufficient data"

// Debate is the argument-breakdown section. Every field is always present:
// the normalizer rebuilds it field-by-field, so missing or extra keys in the
// model output never propagate.
type Debate struct {
	CentralClaim          string              `json:"central_claim"`
	ArgumentsFor          []Argument          `json:"arguments_for"`
	ArgumentsAgainst      []Counterargument   `json:"arguments_against"`
	LogicalFallacies      []Fallacy           `json:"logical_fallacies"`
	EvidenceReliability   EvidenceReliability `json:"evidence_reliability"`
	NeutralInterpretation string              `json:"neutral_interpretation"`
	Verdict               string              `json:"verdict"`
}

// Argument is a single supporting argument with its evidence strength.
type Argument struct {
	Argument string `json:"argument"`
	Evidence string `json:"evidence"`
	Strength string `json:"strength"`
}

// Counterargument is a single opposing argument.
type Counterargument struct {
	Counterpoint string `json:"counterpoint"`
	Evidence     string `json:"evidence"`
	Strength     string `json:"strength"`
}

// Fallacy describes one logical fallacy found in the video's reasoning.
type Fallacy struct {
	Type         string `json:"type"`
	Example      string `json:"example"`
	WhyItMatters string `json:"why_it_matters"`
}

// EvidenceReliability summarizes how well-supported the video's claims are.
type EvidenceReliability struct {
	VerifiedFacts        int    `json:"verified_facts"`
	SpeculationLevel     string `json:"speculation_level"`
	IndependentSources   int    `json:"independent_sources"`
	VideoEvidenceQuality int    `json:"video_evidence_quality"`
}

// DefaultDebate returns the fully-defaulted debate shape: every string field
// "insufficient data", every numeric field 0, every array empty.
func DefaultDebate() *Debate {
	return &Debate{
		CentralClaim:     DefaultString,
		ArgumentsFor:     []Argument{},
		ArgumentsAgainst: []Counterargument{},
		LogicalFallacies: []Fallacy{},
		EvidenceReliability: EvidenceReliability{
			SpeculationLevel: DefaultString,
		},
		NeutralInterpretation: DefaultString,
		Verdict:               DefaultString,
	}
}
