// Package awareness tracks what the system knows about itself: its
// limitations, its capabilities, who it is talking to, and the running
// interaction context.
package awareness

import (
	"regexp"
	"strings"

	"github.com/nidhogg/metamind/internal/lexicon"
	"github.com/nidhogg/metamind/internal/memory"
	"go.uber.org/zap"
)

const historyCapacity = 10

// sampleLen caps how much raw text is kept in interaction records.
const sampleLen = 100

var namePattern = regexp.MustCompile(`my name is (\w+)`)

// Identity describes the current user as far as the system can tell.
type Identity struct {
	Name       string `json:"name"`
	Recognized bool   `json:"recognized"`
}

// SystemState holds the self-reported operating parameters.
type SystemState struct {
	Mode           string `json:"mode"`
	AttentionLevel string `json:"attention_level"`
	MemoryUsage    string `json:"memory_usage"`
	ContextDepth   int    `json:"context_depth"`
}

// InteractionRecord is one remembered exchange.
type InteractionRecord struct {
	UserInput string `json:"user_input"`
	Response  string `json:"response,omitempty"`
}

// Model is the self-awareness subsystem. One instance per session.
type Model struct {
	identity     Identity
	state        SystemState
	limitations  map[string]bool
	capabilities map[string]bool
	topic        string
	history      *memory.BoundedLog[InteractionRecord]
	logger       *zap.Logger
}

// New creates a fresh self-awareness model.
func New(logger *zap.Logger) *Model {
	return &Model{
		identity: Identity{Name: "User"},
		state: SystemState{
			Mode:           "normal",
			AttentionLevel: "high",
			MemoryUsage:    "moderate",
			ContextDepth:   3,
		},
		limitations: map[string]bool{
			"no_real_time_data":       true,
			"cannot_execute_code":     true,
			"no_physical_interaction": true,
		},
		capabilities: map[string]bool{
			"text_generation":       true,
			"reasoning":             true,
			"multi_language":        true,
			"context_understanding": true,
		},
		history: memory.NewBoundedLog[InteractionRecord](historyCapacity),
		logger:  logger,
	}
}

// IdentifyUser tries to pick the user's name out of the input. Falls back
// to a generic unrecognized identity.
func (m *Model) IdentifyUser(input string) Identity {
	if match := namePattern.FindStringSubmatch(input); match != nil {
		m.identity = Identity{Name: match[1], Recognized: true}
		m.logger.Info("user identified", zap.String("name", match[1]))
		return m.identity
	}
	m.identity = Identity{Name: "User", Recognized: false}
	return m.identity
}

// CheckLimitations returns warnings for any known limitation the task
// would run into.
func (m *Model) CheckLimitations(task string) []string {
	var warnings []string

	if strings.Contains(task, "latest news") || strings.Contains(task, "now") {
		warnings = append(warnings, "real-time data access is limited")
	}
	if strings.Contains(task, "execute code") || strings.Contains(task, "program") {
		warnings = append(warnings, "cannot execute code directly")
	}
	if strings.Contains(task, "move") || strings.Contains(task, "physical") {
		warnings = append(warnings, "no physical interaction capability")
	}
	return warnings
}

// UpdateContext records the exchange and refreshes the session topic when
// the input names one.
func (m *Model) UpdateContext(input, response string) {
	if topics := lexicon.Topics(input, lexicon.SessionTopics); len(topics) > 0 {
		m.topic = topics[0]
	}

	rec := InteractionRecord{UserInput: truncate(input, sampleLen)}
	if response != "" {
		rec.Response = truncate(response, sampleLen)
	}
	m.history.Append(rec)
}

// Topic returns the current conversation topic, empty if none detected yet.
func (m *Model) Topic() string { return m.topic }

// Identity returns the current user identity.
func (m *Model) Identity() Identity { return m.identity }

// State returns the self-reported system state.
func (m *Model) State() SystemState { return m.state }

// History returns the retained interaction records, oldest first.
func (m *Model) History() []InteractionRecord { return m.history.All() }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
