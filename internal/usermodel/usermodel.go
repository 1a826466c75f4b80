// Package usermodel maintains the system's model of the person it is
// talking to: their goals, emotional state, what they know and misbelieve,
// their interaction patterns, and what they are likely to need next.
package usermodel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nidhogg/metamind/internal/lexicon"
	"github.com/nidhogg/metamind/internal/memory"
	"go.uber.org/zap"
)

const goalHistoryCapacity = 15

// explicitGoalIndicators map stated phrases to goal labels. Matching is
// case-sensitive, every present indicator contributes.
var explicitGoalIndicators = []struct {
	indicator string
	goal      string
}{
	{"I want to know", "get_information"},
	{"I need", "get_help"},
	{"how can I", "practical_guidance"},
	{"please explain", "request_explanation"},
	{"compare", "comparative_analysis"},
}

// implicitGoalClues map indirect phrasing to inferred goals.
var implicitGoalClues = []struct {
	clue string
	goal string
}{
	{"a lot of time", "get_quick_response"},
	{"say simply", "get_simple_explanation"},
	{"give example", "practical_understanding"},
	{"source", "ensure_accuracy"},
	{"is it correct", "confirm_information"},
}

// emotionCategories hold the per-emotion indicator lists, in checklist
// order. The per-category score is hits divided by list length.
var emotionCategories = []struct {
	emotion    string
	indicators []string
}{
	{"happy", []string{"thank you", "excellent", "very good", "well done", ":)"}},
	{"frustrated", []string{"I'm tired", "complicated", "I don't understand", "hard", ":("}},
	{"curious", []string{"interesting", "why", "how", "I want to know", "?"}},
	{"urgent", []string{"urgent", "quick", "now", "immediately", "!!!"}},
	{"confused", []string{"what do you mean", "I don't understand", "wrong", "I have a question"}},
}

// gapIndicators trigger the preceding-word knowledge-gap heuristic. The
// multi-word entries can never match inside a single word; that quirk is
// kept for behavioral parity with the observed system.
var gapIndicators = []string{
	"what is", "how", "why", "meaning",
	"I don't know", "I didn't understand", "explain",
}

// overgeneralizationKeywords flag misconceptions on negative feedback.
var overgeneralizationKeywords = []string{
	"always", "never", "only", "solely", "all", "none", "certainly",
}

// questionTypes classify inputs for interaction-pattern tallies.
var questionTypes = []struct {
	name       string
	indicators []string
}{
	{"definitional", []string{"what is", "meaning", "definition"}},
	{"methodological", []string{"how", "method", "way"}},
	{"causal", []string{"why", "cause", "reason"}},
	{"comparative", []string{"difference", "compare", "which is better"}},
}

// nextQuestionsByTopic predicts likely follow-up questions per topic.
var nextQuestionsByTopic = map[string][]string{
	"artificial intelligence": {
		"What are the applications of AI?",
		"What are the types of AI?",
	},
	"machine learning": {
		"What are machine learning algorithms?",
		"Difference between supervised and unsupervised learning?",
	},
	"programming": {
		"What is the best programming language to start?",
		"How to learn programming?",
	},
}

// Profile is the inferred user profile.
type Profile struct {
	Expertise          string `json:"expertise_level"`
	InteractionStyle   string `json:"interaction_style"`
	LearningPreference string `json:"learning_preference"`
	EmotionalState     string `json:"emotional_state"`
}

// GoalSet is the result of one goal-inference pass.
type GoalSet struct {
	Explicit []string `json:"explicit"`
	Implicit []string `json:"implicit"`
}

// GoalRecord is one entry on the goal history.
type GoalRecord struct {
	Input string  `json:"input"`
	Goals GoalSet `json:"goals"`
}

// EmotionResult is the outcome of one emotional-state detection.
type EmotionResult struct {
	Primary     string             `json:"primary_emotion"`
	AllDetected []string           `json:"all_detected"`
	Scores      map[string]float64 `json:"confidence_scores"`
}

// KnowledgeSummary reports what one knowledge-model update changed.
type KnowledgeSummary struct {
	TopicsUpdated        []string `json:"topics_updated"`
	KnowledgeGaps        []string `json:"knowledge_gaps_identified"`
	RecentMisconceptions []string `json:"misconceptions_updated"`
}

// Predictions estimates future user needs.
type Predictions struct {
	NextQuestions       []string `json:"next_questions"`
	LikelyNeeds         []string `json:"likely_needs"`
	PotentialConfusions []string `json:"potential_confusions"`
}

// TopicCount pairs a word with its observed frequency.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Summary is a snapshot of the whole user model.
type Summary struct {
	Expertise         string       `json:"expertise"`
	InteractionStyle  string       `json:"interaction_style"`
	EmotionalState    string       `json:"emotional_state"`
	KnownTopicCount   int          `json:"known_topics_count"`
	KnowledgeGapCount int          `json:"knowledge_gaps_count"`
	FrequentTopics    []TopicCount `json:"frequent_topics"`
}

// Model is the user mental model. One instance per session.
type Model struct {
	profile Profile

	explicitGoals []string
	implicitGoals []string
	goalHistory   *memory.BoundedLog[GoalRecord]

	knownTopics    []string
	knowledgeGaps  []string
	misconceptions []string

	frequentTopics map[string]int
	questionTally  map[string]int
	detailLevel    string

	predictions Predictions

	logger *zap.Logger
}

// New creates a fresh user model with a neutral profile.
func New(logger *zap.Logger) *Model {
	return &Model{
		profile: Profile{
			Expertise:          "unknown",
			InteractionStyle:   "neutral",
			LearningPreference: "balanced",
			EmotionalState:     "neutral",
		},
		goalHistory:    memory.NewBoundedLog[GoalRecord](goalHistoryCapacity),
		frequentTopics: make(map[string]int),
		questionTally:  make(map[string]int),
		detailLevel:    "medium",
		logger:         logger,
	}
}

// UnderstandGoals infers explicit and implicit goals from the input. The
// current goal lists are replaced, not accumulated; the goal history keeps
// every pass.
func (m *Model) UnderstandGoals(input string) GoalSet {
	var goals GoalSet
	for _, e := range explicitGoalIndicators {
		if strings.Contains(input, e.indicator) {
			goals.Explicit = append(goals.Explicit, e.goal)
		}
	}
	for _, c := range implicitGoalClues {
		if strings.Contains(input, c.clue) {
			goals.Implicit = append(goals.Implicit, c.goal)
		}
	}

	m.explicitGoals = goals.Explicit
	m.implicitGoals = goals.Implicit
	m.goalHistory.Append(GoalRecord{Input: truncate(input, 50), Goals: goals})
	return goals
}

// DetectEmotionalState scores each emotion category by indicator hit
// ratio. The primary emotion is fixed before the history boost: when the
// last three turns named the same primary at least twice its reported
// score gains 0.2 (capped at 1.0), but the choice of primary never changes.
func (m *Model) DetectEmotionalState(input string, recentEmotions []string) EmotionResult {
	lower := strings.ToLower(input)

	result := EmotionResult{Primary: "neutral", Scores: make(map[string]float64)}
	for _, cat := range emotionCategories {
		hits := 0
		for _, ind := range cat.indicators {
			if strings.Contains(lower, strings.ToLower(ind)) {
				hits++
			}
		}
		if hits > 0 {
			result.AllDetected = append(result.AllDetected, cat.emotion)
			result.Scores[cat.emotion] = float64(hits) / float64(len(cat.indicators))
		}
	}

	best := 0.0
	for _, cat := range emotionCategories {
		if score, ok := result.Scores[cat.emotion]; ok && score > best {
			best = score
			result.Primary = cat.emotion
		}
	}

	if len(recentEmotions) > 0 {
		start := len(recentEmotions) - 3
		if start < 0 {
			start = 0
		}
		repeats := 0
		for _, e := range recentEmotions[start:] {
			if e == result.Primary {
				repeats++
			}
		}
		if repeats >= 2 {
			boosted := result.Scores[result.Primary] + 0.2
			if boosted > 1.0 {
				boosted = 1.0
			}
			result.Scores[result.Primary] = boosted
		}
	}

	m.profile.EmotionalState = result.Primary
	return result
}

// UpdateKnowledgeModel folds one exchange into the knowledge model. Topics
// and gaps only ever grow; a misconception is added when negative
// correctness feedback meets an overgeneralization in the input.
func (m *Model) UpdateKnowledgeModel(input, response, correctnessFeedback string) KnowledgeSummary {
	topics := lexicon.Topics(input+" "+response, lexicon.KnowledgeTopics)
	for _, topic := range topics {
		m.knownTopics = appendUnique(m.knownTopics, topic)
	}

	gaps := identifyKnowledgeGaps(input)
	for _, gap := range gaps {
		m.knowledgeGaps = appendUnique(m.knowledgeGaps, gap)
	}

	if strings.Contains(correctnessFeedback, "wrong") || strings.Contains(correctnessFeedback, "incorrect") {
		if mc := identifyMisconception(input); mc != "" {
			m.misconceptions = appendUnique(m.misconceptions, mc)
			m.logger.Info("misconception recorded", zap.String("misconception", mc))
		}
	}

	m.analyzeInteractionPatterns(input, response)

	return KnowledgeSummary{
		TopicsUpdated:        topics,
		KnowledgeGaps:        gaps,
		RecentMisconceptions: lastN(m.misconceptions, 3),
	}
}

// identifyKnowledgeGaps scans for a gap indicator inside a word and names
// the word before it. The indicator must sit inside a containing word and
// must not open the sentence; first hit per indicator wins.
func identifyKnowledgeGaps(input string) []string {
	lower := strings.ToLower(input)

	var gaps []string
	for _, indicator := range gapIndicators {
		if !strings.Contains(lower, indicator) {
			continue
		}
		words := strings.Fields(input)
		for i, word := range words {
			if i > 0 && strings.Contains(strings.ToLower(word), indicator) {
				gaps = append(gaps, "lack_of_knowledge_about "+words[i-1])
				break
			}
		}
	}
	return gaps
}

func identifyMisconception(input string) string {
	lower := strings.ToLower(input)
	for _, kw := range overgeneralizationKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Sprintf("overgeneralization_with '%s'", kw)
		}
	}
	return ""
}

func (m *Model) analyzeInteractionPatterns(input, response string) {
	for _, word := range strings.Fields(input) {
		if len(word) > 3 {
			m.frequentTopics[word]++
		}
	}

	lower := strings.ToLower(input)
	for _, qt := range questionTypes {
		for _, ind := range qt.indicators {
			if strings.Contains(lower, ind) {
				m.questionTally[qt.name]++
				break
			}
		}
	}

	wordCount := len(strings.Fields(response))
	switch {
	case wordCount < 50:
		m.detailLevel = "low"
	case wordCount < 150:
		m.detailLevel = "medium"
	default:
		m.detailLevel = "high"
	}
}

// PredictFutureNeeds estimates next questions and likely needs from the
// current input, the profile, and recurring goals in the recent history.
func (m *Model) PredictFutureNeeds(input string) Predictions {
	var p Predictions

	if topics := lexicon.Topics(input, lexicon.KnowledgeTopics); len(topics) > 0 {
		p.NextQuestions = nextQuestionsByTopic[topics[0]]
	}

	if m.profile.Expertise == "beginner" {
		p.LikelyNeeds = append(p.LikelyNeeds, "simpler_explanations", "more_practical_examples")
	}
	if m.profile.EmotionalState == "confused" {
		p.LikelyNeeds = append(p.LikelyNeeds, "concept_clarification")
		p.PotentialConfusions = append(p.PotentialConfusions, "ambiguity_in_basic_concepts")
	}

	if frequent := m.frequentRecentGoals(); len(frequent) > 0 {
		if len(frequent) > 2 {
			frequent = frequent[:2]
		}
		p.LikelyNeeds = append(p.LikelyNeeds,
			"complete_topic_related_to: "+strings.Join(frequent, ", "))
	}

	m.predictions = p
	return p
}

// frequentRecentGoals tallies goal labels across the last three history
// records and returns those seen at least twice, in first-seen order.
func (m *Model) frequentRecentGoals() []string {
	counts := make(map[string]int)
	var order []string
	for _, rec := range m.goalHistory.Last(3) {
		for _, g := range append(append([]string(nil), rec.Goals.Explicit...), rec.Goals.Implicit...) {
			if counts[g] == 0 {
				order = append(order, g)
			}
			counts[g]++
		}
	}

	var frequent []string
	for _, g := range order {
		if counts[g] >= 2 {
			frequent = append(frequent, g)
		}
	}
	return frequent
}

// SetExpertise updates the expertise estimate.
func (m *Model) SetExpertise(level string) { m.profile.Expertise = level }

// Profile returns the current user profile.
func (m *Model) Profile() Profile { return m.profile }

// Predictions returns the latest future-need predictions.
func (m *Model) Predictions() Predictions { return m.predictions }

// GoalHistory returns the retained goal records, oldest first.
func (m *Model) GoalHistory() []GoalRecord { return m.goalHistory.All() }

// KnownTopics returns the monotone set of observed topics.
func (m *Model) KnownTopics() []string { return append([]string(nil), m.knownTopics...) }

// FrequentTopics returns the top n frequent-topic words, most frequent
// first. Equal counts order alphabetically to stay deterministic.
func (m *Model) FrequentTopics(n int) []TopicCount {
	out := make([]TopicCount, 0, len(m.frequentTopics))
	for topic, count := range m.frequentTopics {
		out = append(out, TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Topic < out[j].Topic
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ProfileSummary snapshots the whole model for reports.
func (m *Model) ProfileSummary() Summary {
	return Summary{
		Expertise:         m.profile.Expertise,
		InteractionStyle:  m.profile.InteractionStyle,
		EmotionalState:    m.profile.EmotionalState,
		KnownTopicCount:   len(m.knownTopics),
		KnowledgeGapCount: len(m.knowledgeGaps),
		FrequentTopics:    m.FrequentTopics(5),
	}
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

func lastN(list []string, n int) []string {
	if len(list) <= n {
		return append([]string(nil), list...)
	}
	return append([]string(nil), list[len(list)-n:]...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
