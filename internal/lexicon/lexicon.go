// Package lexicon provides keyword-table feature extraction over plain text.
// All detection in the pipeline is literal case-insensitive substring
// matching; there is no tokenization and no scoring here.
package lexicon

import "strings"

// Unknown is the sentinel tag returned when no category matches.
const Unknown = "unknown"

// Category pairs a feature tag with the indicator substrings that trigger it.
type Category struct {
	Tag        string
	Indicators []string
}

// Table is an ordered list of categories. Declaration order is load-bearing:
// extraction visits categories in order and downstream first-match lookups
// depend on it.
type Table []Category

// ProblemFeatures classifies problem descriptions for method selection.
var ProblemFeatures = Table{
	{Tag: "numerical", Indicators: []string{"number", "calculate", "math", "sum", "subtract", "multiply", "divide"}},
	{Tag: "logical", Indicators: []string{"if", "then", "reasoning", "logic", "true", "false"}},
	{Tag: "creative", Indicators: []string{"idea", "creativity", "innovation", "new", "creative"}},
	{Tag: "complex", Indicators: []string{"complex", "difficult", "hard", "problem", "challenge"}},
	{Tag: "multipart", Indicators: []string{"step", "part", "section", "phase", "stepwise"}},
}

// KnowledgeTopics recognizes the conversation topics tracked by the user
// knowledge model. Each topic is its own indicator.
var KnowledgeTopics = Table{
	{Tag: "artificial intelligence", Indicators: []string{"artificial intelligence"}},
	{Tag: "machine learning", Indicators: []string{"machine learning"}},
	{Tag: "programming", Indicators: []string{"programming"}},
	{Tag: "mathematics", Indicators: []string{"mathematics"}},
	{Tag: "data science", Indicators: []string{"data science"}},
	{Tag: "neural networks", Indicators: []string{"neural networks"}},
	{Tag: "natural language processing", Indicators: []string{"natural language processing"}},
}

// SessionTopics is the coarse topic vocabulary used for the session-level
// topic of conversation.
var SessionTopics = Table{
	{Tag: "science", Indicators: []string{"science"}},
	{Tag: "technology", Indicators: []string{"technology"}},
	{Tag: "art", Indicators: []string{"art"}},
	{Tag: "mathematics", Indicators: []string{"mathematics"}},
	{Tag: "programming", Indicators: []string{"programming"}},
	{Tag: "philosophy", Indicators: []string{"philosophy"}},
}

// Extract maps text to the tags of every category with at least one
// indicator present in the text. One indicator per category is enough;
// extra hits do not add weight. If nothing matches the result is the
// Unknown sentinel alone. Pure function of (text, table).
func Extract(text string, table Table) []string {
	lower := strings.ToLower(text)

	var tags []string
	for _, cat := range table {
		for _, ind := range cat.Indicators {
			if strings.Contains(lower, ind) {
				tags = append(tags, cat.Tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		tags = append(tags, Unknown)
	}
	return tags
}

// Topics extracts matched topics only, without the Unknown sentinel.
func Topics(text string, table Table) []string {
	tags := Extract(text, table)
	if len(tags) == 1 && tags[0] == Unknown {
		return nil
	}
	return tags
}
