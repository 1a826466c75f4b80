// Package control selects how the system should work on a given input:
// which response strategy, which problem-solving method, where attention
// goes, and how fast/deep/rigorous processing should be.
package control

import (
	"strings"

	"github.com/nidhogg/metamind/internal/lexicon"
	"github.com/nidhogg/metamind/internal/memory"
	"go.uber.org/zap"
)

// Adaptation history is capped; the oldest records are evicted first.
const adaptationCapacity = 50

const defaultStrategy = "general_analysis"

// strategyRegistry maps task-type keys to strategies. Declaration order is
// load-bearing: the first key that is a substring of the task label wins.
var strategyRegistry = []struct {
	taskType string
	strategy string
}{
	{"scientific_question", "evidence_based_analysis"},
	{"creative_question", "divergent_thinking"},
	{"explanation_request", "example_based_with_analogy"},
	{"problem_solving", "stepwise_analysis"},
	{"philosophical_discussion", "logical_reasoning"},
	{"help_request", "stepwise_guidance"},
}

// methodRegistry maps problem-solving methods to the feature tags they
// apply to, with a coarse cost rating.
var methodRegistry = []struct {
	method        string
	applicability []string
	complexity    string
}{
	{"divide_and_conquer", []string{"complex", "large", "multipart"}, "medium"},
	{"computational", []string{"numerical", "computational", "quantitative"}, "low"},
	{"deductive_reasoning", []string{"logical", "philosophical", "mathematical"}, "high"},
	{"analogy_finding", []string{"creative", "design", "innovative"}, "medium"},
	{"trial_and_error", []string{"uncertain", "exploratory", "experimental"}, "low"},
}

// priorityKeywords flag an input element for primary attention.
var priorityKeywords = []string{"urgent", "important", "please", "help", "question"}

// Profile carries the user traits that influence strategy selection.
type Profile struct {
	Expertise string `json:"expertise"`
}

// Constraints limit problem-solving method selection.
type Constraints struct {
	Time string `json:"time"` // "short" excludes high-complexity methods
}

// Resources override the processing mode after demand matching.
type Resources struct {
	Time       string `json:"time"`       // "limited" forces fast speed
	Importance string `json:"importance"` // "high" forces strict rigor
}

// Focus is the current attention allocation.
type Focus struct {
	Primary   string   `json:"primary_focus"`
	Secondary []string `json:"secondary_focus"`
	Span      int      `json:"attention_span"` // 0-100
}

// AttentionContext feeds the span adjustment.
type AttentionContext struct {
	Complexity string `json:"complexity"`
}

// ProcessingMode describes the speed/depth/rigor trade-off in effect.
type ProcessingMode struct {
	Speed string `json:"speed"`
	Depth string `json:"depth"`
	Rigor string `json:"rigor"`
}

// AdaptationRecord is one entry on the adaptation history.
type AdaptationRecord struct {
	Kind        string         `json:"kind"` // strategy | method | processing
	TaskType    string         `json:"task_type,omitempty"`
	Strategy    string         `json:"strategy,omitempty"`
	UsedProfile bool           `json:"user_profile_considered,omitempty"`
	Problem     string         `json:"problem,omitempty"`
	Features    []string       `json:"features,omitempty"`
	Method      string         `json:"method,omitempty"`
	Considered  int            `json:"alternatives_considered,omitempty"`
	Demand      string         `json:"demand,omitempty"`
	Mode        ProcessingMode `json:"mode"`
}

// Controller is the strategy and attention subsystem. One instance per
// session.
type Controller struct {
	activeStrategies map[string]string
	focus            Focus
	mode             ProcessingMode
	history          *memory.BoundedLog[AdaptationRecord]
	logger           *zap.Logger
}

// New creates a fresh controller with the default strategies active.
func New(logger *zap.Logger) *Controller {
	return &Controller{
		activeStrategies: map[string]string{
			"problem_solving": "stepwise_analysis",
			"explanation":     "example_based",
			"learning":        "repetition_practice",
		},
		focus: Focus{Span: 100},
		mode: ProcessingMode{
			Speed: "normal",
			Depth: "balanced",
			Rigor: "standard",
		},
		history: memory.NewBoundedLog[AdaptationRecord](adaptationCapacity),
		logger:  logger,
	}
}

// RegulateStrategy picks a strategy for the task label. The first registry
// key contained in the label names the task type, defaulting to the
// scientific type. A user profile then adjusts the result: beginners get
// the simplified-with-examples strategy unless the choice is already
// example based; experts get a technical-detail suffix appended unless the
// choice is already technical.
func (c *Controller) RegulateStrategy(taskLabel string, profile *Profile) string {
	detected := "scientific_question"
	for _, entry := range strategyRegistry {
		if strings.Contains(taskLabel, entry.taskType) {
			detected = entry.taskType
			break
		}
	}

	strategy := defaultStrategy
	for _, entry := range strategyRegistry {
		if entry.taskType == detected {
			strategy = entry.strategy
			break
		}
	}

	if profile != nil {
		switch profile.Expertise {
		case "beginner":
			if !strings.Contains(strategy, "example_based") {
				strategy = "simplification_with_examples"
			}
		case "expert":
			if !strings.Contains(strategy, "technical") {
				strategy += " with technical details"
			}
		}
	}

	c.activeStrategies[taskLabel] = strategy
	c.history.Append(AdaptationRecord{
		Kind:        "strategy",
		TaskType:    taskLabel,
		Strategy:    strategy,
		UsedProfile: profile != nil,
	})
	c.logger.Debug("strategy regulated",
		zap.String("task_type", detected),
		zap.String("strategy", strategy))
	return strategy
}

// SelectMethod picks a problem-solving method by feature overlap with the
// registry. High-complexity methods are excluded under short time
// constraints. The highest match score wins; on a tie a medium-complexity
// method is preferred. With no candidates the generic analysis method is
// returned with a zero count.
func (c *Controller) SelectMethod(problem string, constraints *Constraints) (string, int) {
	features := lexicon.Extract(problem, lexicon.ProblemFeatures)

	type candidate struct {
		method     string
		score      int
		complexity string
	}
	var candidates []candidate
	for _, entry := range methodRegistry {
		score := 0
		for _, f := range features {
			for _, a := range entry.applicability {
				if f == a {
					score++
					break
				}
			}
		}
		if score == 0 {
			continue
		}
		if constraints != nil && constraints.Time == "short" && entry.complexity == "high" {
			continue
		}
		candidates = append(candidates, candidate{entry.method, score, entry.complexity})
	}

	selected := defaultStrategy
	if len(candidates) > 0 {
		best := candidates[0]
		for _, cand := range candidates[1:] {
			if cand.score > best.score {
				best = cand
			} else if cand.score == best.score && cand.complexity == "medium" && best.complexity != "medium" {
				best = cand
			}
		}
		selected = best.method
	}

	c.history.Append(AdaptationRecord{
		Kind:       "method",
		Problem:    truncate(problem, 50),
		Features:   features,
		Method:     selected,
		Considered: len(candidates),
	})
	return selected, len(candidates)
}

// AllocateAttention splits input elements into one primary focus and the
// ordered remainder. An element is flagged by a priority keyword or a
// question mark; the first flagged element becomes primary. When nothing
// is flagged the first element wins by position.
func (c *Controller) AllocateAttention(elements []string, attCtx *AttentionContext) Focus {
	var primary string
	var secondary []string

	for _, element := range elements {
		if primary == "" && isFlagged(element) {
			primary = element
			continue
		}
		secondary = append(secondary, element)
	}

	if primary == "" && len(elements) > 0 {
		primary = elements[0]
		secondary = append([]string(nil), elements[1:]...)
	}

	span := 100
	if len(elements) > 3 {
		span = 80
	}
	// Context complexity is checked after, and wins over, the count rule.
	if attCtx != nil && attCtx.Complexity == "high" {
		span = 90
	}

	c.focus = Focus{Primary: primary, Secondary: secondary, Span: span}
	return c.focus
}

func isFlagged(element string) bool {
	lower := strings.ToLower(element)
	for _, kw := range priorityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return strings.Contains(element, "?")
}

// RegulateProcessing matches the demand text against the ordered trigger
// rules, first match wins; no match leaves the previous mode untouched.
// Resource overrides are applied afterward.
func (c *Controller) RegulateProcessing(demand string, resources *Resources) ProcessingMode {
	switch {
	case strings.Contains(demand, "urgent") || strings.Contains(demand, "fast"):
		c.mode.Speed = "fast"
		c.mode.Depth = "shallow"
	case strings.Contains(demand, "accurate") || strings.Contains(demand, "detailed"):
		c.mode.Speed = "slow"
		c.mode.Depth = "deep"
	case strings.Contains(demand, "balanced"):
		c.mode.Speed = "normal"
		c.mode.Depth = "balanced"
	}

	if resources != nil {
		if resources.Time == "limited" {
			c.mode.Speed = "fast"
		}
		if resources.Importance == "high" {
			c.mode.Rigor = "strict"
		}
	}

	c.history.Append(AdaptationRecord{
		Kind:   "processing",
		Demand: demand,
		Mode:   c.mode,
	})
	return c.mode
}

// ActiveStrategy returns the strategy registered for a task label.
func (c *Controller) ActiveStrategy(taskLabel string) (string, bool) {
	s, ok := c.activeStrategies[taskLabel]
	return s, ok
}

// Focus returns the current attention allocation.
func (c *Controller) Focus() Focus { return c.focus }

// Mode returns the processing mode in effect.
func (c *Controller) Mode() ProcessingMode { return c.mode }

// History returns the retained adaptation records, oldest first.
func (c *Controller) History() []AdaptationRecord { return c.history.All() }

// RegistryAlternatives lists the strategies a regulation chooses between,
// for decision-trail records.
func RegistryAlternatives() []string {
	out := make([]string, len(strategyRegistry))
	for i, entry := range strategyRegistry {
		out[i] = entry.strategy
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
