package control

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func TestRegulateStrategy(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		profile *Profile
		want    string
	}{
		{
			name: "first matching registry key wins",
			task: "a problem_solving exercise",
			want: "stepwise_analysis",
		},
		{
			name: "unmatched label defaults to scientific",
			task: "random chatter",
			want: "evidence_based_analysis",
		},
		{
			name:    "beginner replaces non example-based strategy",
			task:    "philosophical_discussion tonight",
			profile: &Profile{Expertise: "beginner"},
			want:    "simplification_with_examples",
		},
		{
			name:    "beginner keeps example-based strategy",
			task:    "explanation_request",
			profile: &Profile{Expertise: "beginner"},
			want:    "example_based_with_analogy",
		},
		{
			name:    "expert gets technical suffix",
			task:    "creative_question",
			profile: &Profile{Expertise: "expert"},
			want:    "divergent_thinking with technical details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(zap.NewNop())
			got := c.RegulateStrategy(tt.task, tt.profile)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if active, ok := c.ActiveStrategy(tt.task); !ok || active != tt.want {
				t.Errorf("active strategy: got %q %v, want %q", active, ok, tt.want)
			}
			if len(c.History()) != 1 {
				t.Errorf("got %d adaptation records, want 1", len(c.History()))
			}
		})
	}
}

func TestSelectMethod(t *testing.T) {
	tests := []struct {
		name        string
		problem     string
		constraints *Constraints
		wantMethod  string
		wantCount   int
	}{
		{
			name:       "feature overlap selects method",
			problem:    "calculate the sum of these numbers",
			wantMethod: "computational",
			wantCount:  1,
		},
		{
			name:       "no features selects general analysis",
			problem:    "greetings",
			wantMethod: "general_analysis",
			wantCount:  0,
		},
		{
			name:        "short time excludes high complexity",
			problem:     "a logic reasoning puzzle",
			constraints: &Constraints{Time: "short"},
			wantMethod:  "general_analysis",
			wantCount:   0,
		},
		{
			name:       "medium complexity wins score ties",
			problem:    "a creative reasoning problem",
			wantMethod: "divide_and_conquer",
			wantCount:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(zap.NewNop())
			method, count := c.SelectMethod(tt.problem, tt.constraints)
			if method != tt.wantMethod {
				t.Errorf("got method %q, want %q", method, tt.wantMethod)
			}
			if count != tt.wantCount {
				t.Errorf("got %d candidates, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestSelectMethodMediumTieBreak(t *testing.T) {
	c := New(zap.NewNop())
	// "logical" matches deductive_reasoning (high) and "complex" matches
	// divide_and_conquer (medium); both score 1, medium must win.
	method, count := c.SelectMethod("a complex logic question", nil)
	if method != "divide_and_conquer" {
		t.Errorf("got %q, want divide_and_conquer on medium tie-break", method)
	}
	if count != 2 {
		t.Errorf("got %d candidates, want 2", count)
	}
}

func TestAllocateAttention(t *testing.T) {
	c := New(zap.NewNop())

	focus := c.AllocateAttention([]string{"hello", "urgent help now", "about ML"}, nil)
	if focus.Primary != "urgent help now" {
		t.Errorf("got primary %q, want %q", focus.Primary, "urgent help now")
	}
	if !reflect.DeepEqual(focus.Secondary, []string{"hello", "about ML"}) {
		t.Errorf("got secondary %v", focus.Secondary)
	}
	if focus.Span != 100 {
		t.Errorf("got span %d, want 100", focus.Span)
	}
}

func TestAllocateAttentionFallback(t *testing.T) {
	c := New(zap.NewNop())

	focus := c.AllocateAttention([]string{"one", "two", "three"}, nil)
	if focus.Primary != "one" {
		t.Errorf("got primary %q, want first element", focus.Primary)
	}
	if !reflect.DeepEqual(focus.Secondary, []string{"two", "three"}) {
		t.Errorf("got secondary %v", focus.Secondary)
	}
}

func TestAllocateAttentionSpan(t *testing.T) {
	c := New(zap.NewNop())

	focus := c.AllocateAttention([]string{"a", "b", "c", "d"}, nil)
	if focus.Span != 80 {
		t.Errorf("more than 3 elements: got span %d, want 80", focus.Span)
	}

	// High complexity is evaluated after the count rule and wins.
	focus = c.AllocateAttention([]string{"a", "b", "c", "d"}, &AttentionContext{Complexity: "high"})
	if focus.Span != 90 {
		t.Errorf("high complexity: got span %d, want 90", focus.Span)
	}

	if focus.Span < 0 || focus.Span > 100 {
		t.Errorf("span %d outside [0,100]", focus.Span)
	}
}

func TestRegulateProcessing(t *testing.T) {
	c := New(zap.NewNop())

	mode := c.RegulateProcessing("this is urgent", nil)
	if mode.Speed != "fast" || mode.Depth != "shallow" {
		t.Errorf("urgent: got %+v", mode)
	}

	mode = c.RegulateProcessing("be accurate please", nil)
	if mode.Speed != "slow" || mode.Depth != "deep" {
		t.Errorf("accurate: got %+v", mode)
	}

	// No trigger leaves the previous mode untouched.
	mode = c.RegulateProcessing("whatever", nil)
	if mode.Speed != "slow" || mode.Depth != "deep" {
		t.Errorf("no trigger: got %+v, want previous mode", mode)
	}
}

func TestRegulateProcessingResourceOverrides(t *testing.T) {
	c := New(zap.NewNop())

	mode := c.RegulateProcessing("accurate work", &Resources{Time: "limited", Importance: "high"})
	if mode.Speed != "fast" {
		t.Errorf("limited time must force fast speed, got %q", mode.Speed)
	}
	if mode.Depth != "deep" {
		t.Errorf("depth should keep the accurate setting, got %q", mode.Depth)
	}
	if mode.Rigor != "strict" {
		t.Errorf("high importance must force strict rigor, got %q", mode.Rigor)
	}
}
