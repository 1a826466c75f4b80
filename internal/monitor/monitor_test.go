package monitor

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestMonitorThoughtProcessComplexity(t *testing.T) {
	m := New(zap.NewNop())

	tests := []struct {
		steps int
		want  string
	}{
		{1, "low"},
		{2, "low"},
		{3, "medium"},
		{5, "medium"},
		{6, "high"},
	}
	for _, tt := range tests {
		steps := make([]string, tt.steps)
		for i := range steps {
			steps[i] = fmt.Sprintf("step %d", i+1)
		}
		rec := m.MonitorThoughtProcess("some input", steps)
		if rec.Complexity != tt.want {
			t.Errorf("%d steps: got complexity %q, want %q", tt.steps, rec.Complexity, tt.want)
		}
		if rec.StepCount != tt.steps {
			t.Errorf("%d steps: got step count %d", tt.steps, rec.StepCount)
		}
	}
}

func TestThoughtLogBounded(t *testing.T) {
	m := New(zap.NewNop())
	for i := 0; i < 30; i++ {
		m.MonitorThoughtProcess(fmt.Sprintf("input %d", i), []string{"a"})
	}
	thoughts := m.Thoughts()
	if len(thoughts) != 20 {
		t.Fatalf("got %d records, want 20", len(thoughts))
	}
	if thoughts[0].Input != "input 10" {
		t.Errorf("oldest record: got %q, want %q", thoughts[0].Input, "input 10")
	}
}

func TestAssessConfidence(t *testing.T) {
	m := New(zap.NewNop())

	tests := []struct {
		kind        string
		evidence    float64
		wantNumeric float64
		wantLabel   string
	}{
		{"factual", 1.0, 0.8, "high"},
		{"factual", 0.0, 0.1, "very_low"},
		{"inferential", 0.7, 0.49, "low"},
		{"creative", 1.0, 0.6, "medium"},
		{"factual", 2.0, 0.95, "very_high"},
		{"unheard_of", 1.0, 0.5, "medium"},
	}
	for _, tt := range tests {
		got := m.AssessConfidence(tt.kind, tt.evidence)
		if math.Abs(got.Numeric-tt.wantNumeric) > 1e-9 {
			t.Errorf("AssessConfidence(%q, %v): numeric %v, want %v", tt.kind, tt.evidence, got.Numeric, tt.wantNumeric)
		}
		if got.Label != tt.wantLabel {
			t.Errorf("AssessConfidence(%q, %v): label %q, want %q", tt.kind, tt.evidence, got.Label, tt.wantLabel)
		}
		if got.Numeric < 0.1 || got.Numeric > 0.95 {
			t.Errorf("numeric %v outside [0.1, 0.95]", got.Numeric)
		}
	}
}

func TestDetectErrorsGaps(t *testing.T) {
	m := New(zap.NewNop())

	f := m.DetectErrorsGaps("", "")
	if !reflect.DeepEqual(f.Errors, []string{"empty_response"}) {
		t.Errorf("empty response: got errors %v", f.Errors)
	}
	if len(f.Gaps) != 0 {
		t.Errorf("empty response: got gaps %v, want none", f.Gaps)
	}

	f = m.DetectErrorsGaps("it always works, well, sometimes", "")
	if len(f.Errors) != 1 || f.Errors[0] != "possible_contradiction_in_certainty" {
		t.Errorf("contradiction: got %v", f.Errors)
	}

	f = m.DetectErrorsGaps("I don't know, what do you think?", "")
	if len(f.Gaps) != 1 {
		t.Errorf("knowledge gap: got %v", f.Gaps)
	}

	f = m.DetectErrorsGaps("a perfectly fine answer", "")
	if len(f.Errors) != 0 || len(f.Gaps) != 0 {
		t.Errorf("clean response: got %+v", f)
	}
}

func TestDecisionTrailBounded(t *testing.T) {
	m := New(zap.NewNop())
	for i := 0; i < 20; i++ {
		m.TrackDecision(fmt.Sprintf("point %d", i), []string{"a", "b"}, "a", "r")
	}
	if got := len(m.Decisions()); got != 15 {
		t.Errorf("got %d decisions, want 15", got)
	}
}

func TestCheckBiases(t *testing.T) {
	m := New(zap.NewNop())

	tests := []struct {
		text string
		want []string
	}{
		{"this is always true", []string{"confirmation_bias"}},
		{"a recently famous case", []string{"availability_bias"}},
		{"fine, but only if you ask", []string{"confirmation_bias", "framing_effect"}},
		{"plain reasoning", nil},
	}
	for _, tt := range tests {
		if got := m.CheckBiases(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CheckBiases(%q): got %v, want %v", tt.text, got, tt.want)
		}
	}
}
