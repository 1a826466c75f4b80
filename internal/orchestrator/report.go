package orchestrator

import (
	"strings"

	"github.com/nidhogg/metamind/internal/monitor"
	"github.com/nidhogg/metamind/internal/quality"
)

// InputAnalysis describes the raw input.
type InputAnalysis struct {
	Length           int    `json:"length"`
	ContainsQuestion bool   `json:"contains_question"`
	Topic            string `json:"topic_detected,omitempty"`
}

// ResponseAnalysis describes the synthesized response.
type ResponseAnalysis struct {
	Length       int     `json:"length"`
	WordCount    int     `json:"word_count"`
	QualityScore float64 `json:"quality_score"`
}

// UserModelSnapshot is the per-turn user model excerpt.
type UserModelSnapshot struct {
	EmotionalState string `json:"emotional_state"`
	Expertise      string `json:"expertise_level"`
}

// SelfAssessment is the per-turn system self-view.
type SelfAssessment struct {
	Confidence     monitor.Confidence `json:"confidence"`
	ConfidenceBase map[string]float64 `json:"confidence_base"`
	AttentionSpan  int                `json:"attention_level"`
	ProcessingMode string             `json:"processing_mode"`
}

// Anomalies carries the per-turn error, gap, and bias findings.
type Anomalies struct {
	Errors []string `json:"errors,omitempty"`
	Gaps   []string `json:"gaps,omitempty"`
	Biases []string `json:"biases,omitempty"`
}

// Report is the metacognitive report returned with every response.
type Report struct {
	InputAnalysis    InputAnalysis     `json:"input_analysis"`
	ResponseAnalysis ResponseAnalysis  `json:"response_analysis"`
	UserModel        UserModelSnapshot `json:"user_model_snapshot"`
	SelfAssessment   SelfAssessment    `json:"system_self_assessment"`
	Limitations      []string          `json:"limitations,omitempty"`
	Anomalies        Anomalies         `json:"anomalies"`
	Suggestions      []string          `json:"improvement_suggestions"`
}

func (c *Core) buildReport(
	input, response string,
	eval quality.Evaluation,
	confidence monitor.Confidence,
	limitations, biases []string,
	finding monitor.Finding,
) Report {
	profile := c.user.Profile()
	mode := c.control.Mode()

	return Report{
		InputAnalysis: InputAnalysis{
			Length:           len(input),
			ContainsQuestion: strings.Contains(input, "?"),
			Topic:            c.awareness.Topic(),
		},
		ResponseAnalysis: ResponseAnalysis{
			Length:       len(response),
			WordCount:    len(strings.Fields(response)),
			QualityScore: eval.Overall,
		},
		UserModel: UserModelSnapshot{
			EmotionalState: profile.EmotionalState,
			Expertise:      profile.Expertise,
		},
		SelfAssessment: SelfAssessment{
			Confidence:     confidence,
			ConfidenceBase: c.monitor.BaseConfidence(),
			AttentionSpan:  c.control.Focus().Span,
			ProcessingMode: mode.Speed + "/" + mode.Depth + "/" + mode.Rigor,
		},
		Limitations: limitations,
		Anomalies: Anomalies{
			Errors: finding.Errors,
			Gaps:   finding.Gaps,
			Biases: biases,
		},
		Suggestions: c.quality.RecentSuggestions(3),
	}
}
