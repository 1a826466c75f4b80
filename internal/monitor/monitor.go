// Package monitor observes the system's own reasoning: it logs thought
// traces, scores confidence, flags errors and knowledge gaps in produced
// responses, keeps a decision trail, and runs a cognitive-bias checklist.
package monitor

import (
	"strings"

	"github.com/nidhogg/metamind/internal/memory"
	"go.uber.org/zap"
)

const (
	thoughtLogCapacity    = 20
	decisionTrailCapacity = 15
	// All trails are capped so long sessions cannot grow memory without
	// bound; the oldest entries are evicted first.
	errorLogCapacity = 50
)

// baseConfidence maps response kinds to their prior confidence. Unknown
// kinds fall back to 0.5.
var baseConfidence = map[string]float64{
	"factual":     0.8,
	"inferential": 0.7,
	"creative":    0.6,
}

// confidenceLadder is evaluated top-down; the first satisfied threshold
// names the label.
var confidenceLadder = []struct {
	threshold float64
	label     string
}{
	{0.9, "very_high"},
	{0.7, "high"},
	{0.5, "medium"},
	{0.3, "low"},
}

// biasChecklist holds the indicator phrases per bias category, in the fixed
// checklist order.
var biasChecklist = []struct {
	name       string
	indicators []string
}{
	{"confirmation_bias", []string{"only", "always", "never"}},
	{"availability_bias", []string{"recently", "famous", "popular"}},
	{"framing_effect", []string{"but", "if", "only if"}},
}

// ThoughtRecord captures one monitored reasoning pass.
type ThoughtRecord struct {
	Input      string   `json:"input"`
	Steps      []string `json:"steps"`
	StepCount  int      `json:"step_count"`
	Complexity string   `json:"complexity"`
}

// Confidence is a scored confidence assessment.
type Confidence struct {
	Kind    string  `json:"kind"`
	Numeric float64 `json:"numeric"`
	Label   string  `json:"label"`
}

// Finding holds errors and gaps detected in a response.
type Finding struct {
	Errors []string `json:"errors"`
	Gaps   []string `json:"gaps"`
}

// errorRecord is a Finding with its source sample, kept on the error log.
type errorRecord struct {
	ResponseSample string   `json:"response_sample"`
	Errors         []string `json:"errors"`
	Gaps           []string `json:"gaps"`
	Feedback       string   `json:"feedback,omitempty"`
}

// Decision is one entry on the decision trail.
type Decision struct {
	Point        string   `json:"point"`
	Alternatives []string `json:"alternatives"`
	Chosen       string   `json:"chosen"`
	Rationale    string   `json:"rationale"`
}

// Monitor is the cognitive-monitoring subsystem. One instance per session.
type Monitor struct {
	thoughtLog    *memory.BoundedLog[ThoughtRecord]
	errorLog      *memory.BoundedLog[errorRecord]
	decisionTrail *memory.BoundedLog[Decision]
	logger        *zap.Logger
}

// New creates a fresh monitor.
func New(logger *zap.Logger) *Monitor {
	return &Monitor{
		thoughtLog:    memory.NewBoundedLog[ThoughtRecord](thoughtLogCapacity),
		errorLog:      memory.NewBoundedLog[errorRecord](errorLogCapacity),
		decisionTrail: memory.NewBoundedLog[Decision](decisionTrailCapacity),
		logger:        logger,
	}
}

// MonitorThoughtProcess records a reasoning trace and rates its complexity
// by step count: <=2 low, <=5 medium, else high.
func (m *Monitor) MonitorThoughtProcess(input string, steps []string) ThoughtRecord {
	complexity := "high"
	switch {
	case len(steps) <= 2:
		complexity = "low"
	case len(steps) <= 5:
		complexity = "medium"
	}

	rec := ThoughtRecord{
		Input:      truncate(input, 50),
		Steps:      steps,
		StepCount:  len(steps),
		Complexity: complexity,
	}
	m.thoughtLog.Append(rec)
	return rec
}

// AssessConfidence multiplies the kind's base confidence by the evidence
// strength, clamps into [0.1, 0.95], and labels the result from the
// threshold ladder.
func (m *Monitor) AssessConfidence(kind string, evidenceStrength float64) Confidence {
	base, ok := baseConfidence[kind]
	if !ok {
		base = 0.5
	}

	numeric := base * evidenceStrength
	if numeric < 0.1 {
		numeric = 0.1
	}
	if numeric > 0.95 {
		numeric = 0.95
	}

	label := "very_low"
	for _, rung := range confidenceLadder {
		if numeric >= rung.threshold {
			label = rung.label
			break
		}
	}
	return Confidence{Kind: kind, Numeric: numeric, Label: label}
}

// DetectErrorsGaps inspects a response for structural problems. A record is
// logged only when something was found.
func (m *Monitor) DetectErrorsGaps(response, feedback string) Finding {
	var f Finding

	if strings.TrimSpace(response) == "" {
		f.Errors = append(f.Errors, "empty_response")
	}
	if strings.Contains(response, "always") && strings.Contains(response, "sometimes") {
		f.Errors = append(f.Errors, "possible_contradiction_in_certainty")
	}
	if strings.Contains(response, "I don't know") && strings.Contains(response, "?") {
		f.Gaps = append(f.Gaps, "knowledge_gap: question exists with no answer")
	}

	if len(f.Errors) > 0 || len(f.Gaps) > 0 {
		m.errorLog.Append(errorRecord{
			ResponseSample: truncate(response, 100),
			Errors:         f.Errors,
			Gaps:           f.Gaps,
			Feedback:       feedback,
		})
		m.logger.Debug("response anomalies detected",
			zap.Strings("errors", f.Errors),
			zap.Strings("gaps", f.Gaps))
	}
	return f
}

// TrackDecision appends a decision record to the trail.
func (m *Monitor) TrackDecision(point string, alternatives []string, chosen, rationale string) Decision {
	d := Decision{
		Point:        point,
		Alternatives: alternatives,
		Chosen:       chosen,
		Rationale:    rationale,
	}
	m.decisionTrail.Append(d)
	return d
}

// CheckBiases returns every bias category with an indicator present in the
// reasoning text. Presence is a boolean OR over indicators.
func (m *Monitor) CheckBiases(reasoning string) []string {
	lower := strings.ToLower(reasoning)

	var detected []string
	for _, bias := range biasChecklist {
		for _, ind := range bias.indicators {
			if strings.Contains(lower, ind) {
				detected = append(detected, bias.name)
				break
			}
		}
	}
	return detected
}

// BaseConfidence exposes the prior confidence table for the report snapshot.
func (m *Monitor) BaseConfidence() map[string]float64 {
	out := make(map[string]float64, len(baseConfidence))
	for k, v := range baseConfidence {
		out[k] = v
	}
	return out
}

// Decisions returns the retained decision trail, oldest first.
func (m *Monitor) Decisions() []Decision { return m.decisionTrail.All() }

// Thoughts returns the retained thought records, oldest first.
func (m *Monitor) Thoughts() []ThoughtRecord { return m.thoughtLog.All() }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
