package lexicon

import (
	"reflect"
	"testing"
)

func TestExtractProblemFeatures(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "numeric and complex",
			text: "calculate this difficult sum",
			want: []string{"numerical", "complex"},
		},
		{
			name: "no match falls back to unknown",
			text: "hello there",
			want: []string{Unknown},
		},
		{
			name: "one indicator per category is enough",
			text: "math sum divide",
			want: []string{"numerical"},
		},
		{
			name: "case insensitive",
			text: "CREATIVE Idea",
			want: []string{"creative"},
		},
		{
			name: "declaration order preserved",
			text: "a stepwise logic problem with numbers",
			want: []string{"numerical", "logical", "complex", "multipart"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, ProblemFeatures)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "a hard machine learning problem with many steps"
	first := Extract(text, ProblemFeatures)
	for i := 0; i < 10; i++ {
		if got := Extract(text, ProblemFeatures); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestTopics(t *testing.T) {
	got := Topics("tell me about machine learning and programming", KnowledgeTopics)
	want := []string{"machine learning", "programming"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := Topics("nothing relevant", KnowledgeTopics); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
