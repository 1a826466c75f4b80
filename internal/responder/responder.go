// Package responder synthesizes reply text by question-type template
// substitution. It stands in for a real language generator; the pipeline
// treats it as an opaque collaborator.
package responder

import (
	"fmt"
	"strings"
)

// templates are checked in declaration order; the first question type
// contained in the input wins.
var templates = []struct {
	questionType string
	template     string
}{
	{"what is", "%s is an important concept in the related field that includes various aspects."},
	{"how", "To understand %s, you need to go through different steps including learning basic principles and then practical practice."},
	{"why", "%s is a valuable topic to study due to its importance and wide applications."},
}

const defaultTemplate = "Your question about '%s' is interesting. This topic includes various aspects that can be viewed from different angles."

const exampleClause = " For example, consider a case that demonstrates the practical application of this concept."

// responseTopics is the narrow topic vocabulary the templates substitute.
var responseTopics = []string{
	"artificial intelligence", "machine learning", "programming", "mathematics",
}

// Synthesize builds a templated response for the input. When exampleBased
// is set the active explanation strategy wants a worked example, so the
// example clause is appended.
func Synthesize(input string, exampleBased bool) string {
	lower := strings.ToLower(input)

	template := defaultTemplate
	for _, t := range templates {
		if strings.Contains(lower, t.questionType) {
			template = t.template
			break
		}
	}

	topic := "this topic"
	for _, t := range responseTopics {
		if strings.Contains(lower, t) {
			topic = t
			break
		}
	}

	response := fmt.Sprintf(template, topic)
	if exampleBased {
		response += exampleClause
	}
	return response
}
