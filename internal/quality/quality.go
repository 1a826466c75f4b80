// Package quality scores produced responses on five heuristics, analyzes
// their likely consequences, and turns feedback into a deduplicated list
// of improvement suggestions.
package quality

import (
	"strings"

	"github.com/nidhogg/metamind/internal/memory"
	"go.uber.org/zap"
)

const (
	trendCapacity = 20
	// Consequence and feedback trails are capped; the oldest entries are
	// evicted first.
	trailCapacity = 50
)

// accuracyBoosts reward evidence-citing phrases.
var accuracyBoosts = []struct {
	phrase string
	boost  float64
}{
	{"according to research", 0.2},
	{"studies show", 0.15},
	{"scientifically proven", 0.2},
	{"statistics show", 0.15},
}

// hedgingPhrases penalize accuracy and flag potential misunderstandings.
var hedgingPhrases = []string{"maybe", "probably", "I think", "in my opinion"}

// ambiguousTerms each produce one potential-misunderstanding entry.
var ambiguousTerms = []string{"maybe", "probably", "might be"}

// coherenceBoosts reward connective phrases.
var coherenceBoosts = []struct {
	phrase string
	boost  float64
}{
	{"first", 0.05},
	{"then", 0.05},
	{"therefore", 0.1},
	{"in conclusion", 0.1},
	{"in summary", 0.05},
}

// completenessMarkers reward structural response elements.
var completenessMarkers = []struct {
	marker string
	value  float64
}{
	{"definition", 0.1},
	{"explanation", 0.2},
	{"example", 0.15},
	{"conclusion", 0.1},
	{"reference", 0.05},
}

// sentimentBuckets classify feedback, first match wins; anything else is
// constructive.
var sentimentBuckets = []struct {
	label      string
	indicators []string
}{
	{"positive", []string{"excellent", "great"}},
	{"negative", []string{"poor", "bad"}},
	{"neutral", []string{"average", "acceptable"}},
}

// lessonPatterns map feedback phrasing to lessons learned.
var lessonPatterns = []struct {
	pattern string
	lesson  string
}{
	{"more complete", "providing more complete information"},
	{"shorter", "providing more concise responses"},
	{"simpler", "simplifying explanations"},
	{"example", "increasing use of examples"},
	{"source", "referencing reliable sources"},
	{"clear", "increasing clarity"},
}

// correctiveActions map error-label substrings to fixed action lists.
var correctiveActions = []struct {
	label   string
	actions []string
}{
	{"accuracy", []string{"add references to sources", "use more cautious language"}},
	{"completeness", []string{"increase response details", "cover more aspects"}},
	{"coherence", []string{"use more connecting words", "better organize information"}},
}

// Evaluation is one response quality assessment.
type Evaluation struct {
	Accuracy     float64 `json:"accuracy"`
	Relevance    float64 `json:"relevance"`
	Coherence    float64 `json:"coherence"`
	Completeness float64 `json:"completeness"`
	Timeliness   float64 `json:"timeliness"`
	Overall      float64 `json:"overall_score"`
}

// Context carries evaluation context such as urgency.
type Context struct {
	Urgency string `json:"urgency"`
}

// Consequences is the rule-based consequence analysis of a response.
type Consequences struct {
	ImmediateEffects          []string `json:"immediate_effects"`
	PotentialMisunderstanding []string `json:"potential_misunderstandings"`
	LearningOpportunities     []string `json:"learning_opportunities"`
}

// FeedbackRecord is the outcome of one processed feedback message.
type FeedbackRecord struct {
	Feedback        string   `json:"feedback"`
	RelatedResponse string   `json:"related_response,omitempty"`
	Sentiment       string   `json:"feedback_type"`
	Lessons         []string `json:"lessons_learned"`
}

// Correction reports the actions chosen for a detected error.
type Correction struct {
	DetectedError string   `json:"detected_error"`
	Actions       []string `json:"correction_actions"`
	Context       string   `json:"context_considered"`
}

// trendRecord is one entry on the performance trend.
type trendRecord struct {
	Query   string  `json:"query"`
	Overall float64 `json:"overall_score"`
}

// consequenceRecord is one entry on the consequence trail.
type consequenceRecord struct {
	ResponseSample string       `json:"response_sample"`
	Analysis       Consequences `json:"analysis"`
	UserReaction   string       `json:"user_reaction,omitempty"`
}

// Engine is the quality scoring subsystem. One instance per session.
type Engine struct {
	// Running metrics merged as (previous + new) / 2 per evaluation.
	metrics struct {
		accuracy     float64
		relevance    float64
		coherence    float64
		completeness float64
	}
	trend        *memory.BoundedLog[trendRecord]
	consequences *memory.BoundedLog[consequenceRecord]
	feedback     *memory.BoundedLog[FeedbackRecord]
	suggestions  []string
	logger       *zap.Logger
}

// New creates a fresh scoring engine.
func New(logger *zap.Logger) *Engine {
	return &Engine{
		trend:        memory.NewBoundedLog[trendRecord](trendCapacity),
		consequences: memory.NewBoundedLog[consequenceRecord](trailCapacity),
		feedback:     memory.NewBoundedLog[FeedbackRecord](trailCapacity),
		logger:       logger,
	}
}

// Evaluate scores a response against its query on the five heuristics and
// returns their arithmetic mean as the overall score. Four of the five
// metrics feed the persistent running averages; timeliness does not.
func (e *Engine) Evaluate(response, query string, evalCtx *Context) Evaluation {
	ev := Evaluation{
		Accuracy:     assessAccuracy(response),
		Relevance:    assessRelevance(response, query),
		Coherence:    assessCoherence(response),
		Completeness: assessCompleteness(response),
		Timeliness:   assessTimeliness(response, evalCtx),
	}
	ev.Overall = (ev.Accuracy + ev.Relevance + ev.Coherence + ev.Completeness + ev.Timeliness) / 5

	e.metrics.accuracy = (e.metrics.accuracy + ev.Accuracy) / 2
	e.metrics.relevance = (e.metrics.relevance + ev.Relevance) / 2
	e.metrics.coherence = (e.metrics.coherence + ev.Coherence) / 2
	e.metrics.completeness = (e.metrics.completeness + ev.Completeness) / 2

	e.trend.Append(trendRecord{Query: truncate(query, 50), Overall: ev.Overall})
	return ev
}

func assessAccuracy(response string) float64 {
	score := 0.5
	for _, b := range accuracyBoosts {
		if strings.Contains(response, b.phrase) {
			score += b.boost
		}
	}
	for _, phrase := range hedgingPhrases {
		if strings.Contains(response, phrase) {
			score -= 0.05
		}
	}
	return clamp(score, 0.1, 1.0)
}

func assessRelevance(response, query string) float64 {
	keywords := make(map[string]struct{})
	for _, kw := range strings.Fields(strings.ToLower(query)) {
		keywords[kw] = struct{}{}
	}
	lower := strings.ToLower(response)

	matches := 0
	for kw := range keywords {
		if len(kw) > 3 && strings.Contains(lower, kw) {
			matches++
		}
	}
	denom := len(keywords)
	if denom < 1 {
		denom = 1
	}
	score := float64(matches) / float64(denom)

	if strings.Contains(query, "?") {
		if strings.Contains(response, "answer") || strings.Contains(response, "therefore") {
			score += 0.2
			if score > 1.0 {
				score = 1.0
			}
		}
	}
	return score
}

func assessCoherence(response string) float64 {
	score := 0.5
	for _, b := range coherenceBoosts {
		if strings.Contains(response, b.phrase) {
			score += b.boost
		}
	}

	sentences := strings.Split(response, ".")
	totalWords := 0
	for _, s := range sentences {
		totalWords += len(strings.Fields(s))
	}
	denom := len(sentences)
	if denom < 1 {
		denom = 1
	}
	avg := float64(totalWords) / float64(denom)

	if avg > 25 {
		score -= 0.1
	} else if avg < 10 {
		score -= 0.05
	}
	return clamp(score, 0.1, 1.0)
}

func assessCompleteness(response string) float64 {
	score := 0.5
	for _, m := range completenessMarkers {
		if strings.Contains(response, m.marker) {
			score += m.value
		}
	}

	words := len(strings.Fields(response))
	if words < 20 {
		score -= 0.2
	} else if words > 100 {
		score += 0.1
	}
	return clamp(score, 0.1, 1.0)
}

func assessTimeliness(response string, evalCtx *Context) float64 {
	score := 0.5
	if evalCtx != nil && evalCtx.Urgency == "high" {
		if len(strings.Fields(response)) < 50 {
			score += 0.2
		} else {
			score -= 0.1
		}
	}
	return clamp(score, 0.1, 1.0)
}

// AnalyzeConsequences tags likely effects of a response from the fixed
// phrase tables. Every call lands on the consequence trail.
func (e *Engine) AnalyzeConsequences(response, userReaction string, followUps []string) Consequences {
	var c Consequences

	if strings.Contains(strings.ToLower(response), "thank you") {
		c.ImmediateEffects = append(c.ImmediateEffects, "user_satisfaction")
	}
	if strings.Contains(response, "I don't know") {
		c.ImmediateEffects = append(c.ImmediateEffects, "knowledge_limit_disclosure")
	}
	for _, term := range ambiguousTerms {
		if strings.Contains(response, term) {
			c.PotentialMisunderstanding = append(c.PotentialMisunderstanding, "ambiguity_in_using_"+term)
		}
	}
	if len(followUps) > 0 {
		c.LearningOpportunities = append(c.LearningOpportunities, "need_for_deeper_knowledge")
	}
	if userReaction == "confused" {
		c.LearningOpportunities = append(c.LearningOpportunities, "need_for_more_clarity")
	}

	e.consequences.Append(consequenceRecord{
		ResponseSample: truncate(response, 100),
		Analysis:       c,
		UserReaction:   userReaction,
	})
	return c
}

// ProcessFeedback classifies feedback sentiment, extracts lessons, and
// merges them into the improvement-suggestion list without duplicates.
func (e *Engine) ProcessFeedback(feedback, relatedResponse string) FeedbackRecord {
	lower := strings.ToLower(feedback)

	sentiment := "constructive"
	for _, bucket := range sentimentBuckets {
		for _, ind := range bucket.indicators {
			if strings.Contains(lower, ind) {
				sentiment = bucket.label
				break
			}
		}
		if sentiment != "constructive" {
			break
		}
	}

	var lessons []string
	for _, lp := range lessonPatterns {
		if strings.Contains(lower, lp.pattern) {
			lessons = append(lessons, lp.lesson)
		}
	}

	rec := FeedbackRecord{
		Feedback:        feedback,
		RelatedResponse: truncate(relatedResponse, 50),
		Sentiment:       sentiment,
		Lessons:         lessons,
	}
	e.feedback.Append(rec)

	for _, lesson := range lessons {
		e.addSuggestion("improvement_in: " + lesson)
	}
	e.logger.Debug("feedback processed",
		zap.String("sentiment", sentiment),
		zap.Int("lessons", len(lessons)))
	return rec
}

// SelfCorrect maps a detected error label to corrective actions and merges
// them into the suggestion list.
func (e *Engine) SelfCorrect(errorLabel, context string) Correction {
	var actions []string
	for _, ca := range correctiveActions {
		if strings.Contains(errorLabel, ca.label) {
			actions = append(actions, ca.actions...)
		}
	}
	for _, action := range actions {
		e.addSuggestion(action)
	}
	return Correction{DetectedError: errorLabel, Actions: actions, Context: context}
}

func (e *Engine) addSuggestion(s string) {
	for _, existing := range e.suggestions {
		if existing == s {
			return
		}
	}
	e.suggestions = append(e.suggestions, s)
}

// Suggestions returns up to n improvement suggestions in insertion order;
// n <= 0 returns all of them.
func (e *Engine) Suggestions(n int) []string {
	out := append([]string(nil), e.suggestions...)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RecentSuggestions returns up to n of the newest suggestions, oldest
// first, for the per-turn report.
func (e *Engine) RecentSuggestions(n int) []string {
	if len(e.suggestions) <= n {
		return append([]string(nil), e.suggestions...)
	}
	return append([]string(nil), e.suggestions[len(e.suggestions)-n:]...)
}

// Metrics returns the persistent running quality metrics.
func (e *Engine) Metrics() map[string]float64 {
	return map[string]float64{
		"accuracy":     e.metrics.accuracy,
		"relevance":    e.metrics.relevance,
		"coherence":    e.metrics.coherence,
		"completeness": e.metrics.completeness,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
