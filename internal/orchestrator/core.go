// Package orchestrator runs the fixed seven-stage metacognitive pipeline
// over each input: self-awareness, user modeling, cognitive control,
// monitoring, response synthesis, quality evaluation, and learning. Each
// stage feeds only forward; one input is one pass.
package orchestrator

import (
	"strings"

	"github.com/nidhogg/metamind/internal/awareness"
	"github.com/nidhogg/metamind/internal/control"
	"github.com/nidhogg/metamind/internal/memory"
	"github.com/nidhogg/metamind/internal/monitor"
	"github.com/nidhogg/metamind/internal/quality"
	"github.com/nidhogg/metamind/internal/responder"
	"github.com/nidhogg/metamind/internal/usermodel"
	"go.uber.org/zap"
)

// The interaction trail is capped; counters keep exact session totals even
// after old entries are evicted.
const interactionCapacity = 50

// reasoningSteps is the fixed trace monitored for every input.
var reasoningSteps = []string{
	"Analyzing user request",
	"Searching relevant knowledge",
	"Organizing information",
	"Designing response",
}

// Interaction is one completed pipeline pass.
type Interaction struct {
	Input        string  `json:"input"`
	Response     string  `json:"response"`
	Emotion      string  `json:"emotion"`
	QualityScore float64 `json:"quality_score"`
}

// Result is the public outcome of one processed input.
type Result struct {
	Response   string `json:"response"`
	Report     Report `json:"metacognitive_report"`
	Understood bool   `json:"user_understood"`
	Aware      bool   `json:"system_aware"`
}

// Insights summarizes the session so far.
type Insights struct {
	TotalInteractions   int                    `json:"total_interactions"`
	AverageQualityScore float64                `json:"average_quality_score"`
	CommonTopics        []usermodel.TopicCount `json:"common_topics"`
	PendingImprovements []string               `json:"pending_improvements"`
}

// Core wires the five subsystems into one isolated session. Construction
// yields fresh subsystem instances; nothing is shared between cores.
type Core struct {
	awareness *awareness.Model
	monitor   *monitor.Monitor
	control   *control.Controller
	user      *usermodel.Model
	quality   *quality.Engine

	history      *memory.BoundedLog[Interaction]
	interactions int
	qualitySum   float64

	lastInput    string
	lastResponse string

	logger *zap.Logger
}

// NewCore creates an isolated pipeline core for one session.
func NewCore(logger *zap.Logger) *Core {
	return &Core{
		awareness: awareness.New(logger),
		monitor:   monitor.New(logger),
		control:   control.New(logger),
		user:      usermodel.New(logger),
		quality:   quality.New(logger),
		history:   memory.NewBoundedLog[Interaction](interactionCapacity),
		logger:    logger,
	}
}

// ProcessInput runs the seven pipeline stages over one input. Every stage
// is total; degenerate inputs degrade to defaults instead of failing.
func (c *Core) ProcessInput(input string) Result {
	// Stage 1: self-awareness.
	c.awareness.IdentifyUser(input)
	limitations := c.awareness.CheckLimitations(input)
	c.awareness.UpdateContext(input, "")

	// Stage 2: user mental model.
	c.user.UnderstandGoals(input)
	emotion := c.user.DetectEmotionalState(input, c.recentEmotions())

	// Stage 3: cognitive control, using the just-updated profile.
	profile := c.user.Profile()
	strategy := c.control.RegulateStrategy(input, &control.Profile{Expertise: profile.Expertise})
	c.monitor.TrackDecision("strategy_selection",
		control.RegistryAlternatives(), strategy,
		"task-type match adjusted for user profile")
	c.control.AllocateAttention([]string{input}, nil)
	c.control.RegulateProcessing(input, nil)

	// Stage 4: cognitive monitoring.
	c.monitor.MonitorThoughtProcess(input, reasoningSteps)
	confidence := c.monitor.AssessConfidence("inferential", 0.7)
	biases := c.monitor.CheckBiases(input)

	// Stage 5: response synthesis.
	explanation, _ := c.control.ActiveStrategy("explanation")
	response := responder.Synthesize(input, explanation == "example_based")

	// Stage 6: performance evaluation.
	eval := c.quality.Evaluate(response, input, nil)
	c.quality.AnalyzeConsequences(response, emotion.Primary, nil)
	finding := c.monitor.DetectErrorsGaps(response, "")

	// Stage 7: update and learning.
	c.user.UpdateKnowledgeModel(input, response, "")
	c.user.PredictFutureNeeds(input)

	c.history.Append(Interaction{
		Input:        input,
		Response:     response,
		Emotion:      emotion.Primary,
		QualityScore: eval.Overall,
	})
	c.interactions++
	c.qualitySum += eval.Overall
	c.lastInput = input
	c.lastResponse = response

	c.logger.Info("input processed",
		zap.String("emotion", emotion.Primary),
		zap.String("strategy", strategy),
		zap.Float64("quality", eval.Overall))

	return Result{
		Response:   response,
		Report:     c.buildReport(input, response, eval, confidence, limitations, biases, finding),
		Understood: true,
		Aware:      true,
	}
}

// recentEmotions lists the primary emotions of the latest interactions,
// oldest first, for the detection history boost.
func (c *Core) recentEmotions() []string {
	recent := c.history.Last(3)
	if len(recent) == 0 {
		return nil
	}
	out := make([]string, len(recent))
	for i, rec := range recent {
		out[i] = rec.Emotion
	}
	return out
}

// ProcessFeedback routes a user feedback message into the quality engine
// and the knowledge model, referencing the previous turn. Negative
// quality lessons also trigger the matching self-corrections.
func (c *Core) ProcessFeedback(feedback string) quality.FeedbackRecord {
	rec := c.quality.ProcessFeedback(feedback, c.lastResponse)
	c.user.UpdateKnowledgeModel(c.lastInput, c.lastResponse, feedback)

	if label := correctionLabel(rec.Lessons); label != "" {
		c.quality.SelfCorrect(label, "user feedback")
	}
	return rec
}

// correctionLabel names the quality dimensions the learned lessons point
// at, in lesson order.
func correctionLabel(lessons []string) string {
	var dims []string
	for _, lesson := range lessons {
		switch lesson {
		case "providing more complete information":
			dims = append(dims, "completeness")
		case "referencing reliable sources":
			dims = append(dims, "accuracy")
		case "increasing clarity":
			dims = append(dims, "coherence")
		}
	}
	return strings.Join(dims, " ")
}

// Insights summarizes the session: totals, average quality, the three
// most frequent topics, and up to five pending improvements.
func (c *Core) Insights() Insights {
	avg := 0.0
	if c.interactions > 0 {
		avg = c.qualitySum / float64(c.interactions)
	}
	return Insights{
		TotalInteractions:   c.interactions,
		AverageQualityScore: avg,
		CommonTopics:        c.user.FrequentTopics(3),
		PendingImprovements: c.quality.Suggestions(5),
	}
}

// ProfileSummary snapshots the user model with the recognized identity.
func (c *Core) ProfileSummary() ProfileSnapshot {
	return ProfileSnapshot{
		Identity: c.awareness.Identity(),
		Summary:  c.user.ProfileSummary(),
		Topic:    c.awareness.Topic(),
	}
}

// ProfileSnapshot is the session-level user view for the API.
type ProfileSnapshot struct {
	Identity awareness.Identity `json:"identity"`
	Summary  usermodel.Summary  `json:"profile"`
	Topic    string             `json:"topic,omitempty"`
}
