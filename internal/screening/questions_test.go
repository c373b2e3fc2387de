package screening

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateParsesNumberedList(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{responses: []string{
		"1. What is a goroutine?\n2. Explain channel buffering.\n3. How does the GC work?\n4. What are interfaces?",
	}}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	questions := gen.Generate(context.Background(), []string{"Go"}, English)
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d: %v", len(questions), questions)
	}
	if questions[0] != "What is a goroutine?" {
		t.Fatalf("expected numbering stripped, got %q", questions[0])
	}
	if len(stub.prompts) != 1 {
		t.Fatalf("expected a single model call, got %d", len(stub.prompts))
	}
}

func TestGenerateClampsToFive(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{responses: []string{
		"1. q one\n2. q two\n3. q three\n4. q four\n5. q five\n6. q six\n7. q seven",
	}}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	questions := gen.Generate(context.Background(), []string{"Python"}, English)
	if len(questions) != 5 {
		t.Fatalf("expected clamp to 5, got %d", len(questions))
	}
	if questions[4] != "q five" {
		t.Fatalf("expected first five in response order, got %v", questions)
	}
}

func TestGenerateRetriesWithStrictInstructionThenFallsBack(t *testing.T) {
	t.Parallel()

	blob := "Here is one long run-on paragraph that never breaks into separate questions at all."
	stub := &stubGenerator{responses: []string{blob, blob}}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	questions := gen.Generate(context.Background(), []string{"Python", "Django"}, English)

	if len(stub.prompts) != 2 {
		t.Fatalf("expected one retry, got %d calls", len(stub.prompts))
	}
	if !strings.Contains(stub.prompts[1], "one question per line") {
		t.Fatalf("expected stricter instruction on retry: %s", stub.prompts[1])
	}
	if len(questions) != 3 {
		t.Fatalf("expected fallback set of exactly 3, got %d", len(questions))
	}
	if !strings.Contains(questions[0], "Python") {
		t.Fatalf("expected fallback templated on the stack, got %q", questions[0])
	}
}

func TestGenerateModelFailureUsesFallback(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{}
	gen := NewQuestionGenerator(stub, zap.NewNop(), 0)

	questions := gen.Generate(context.Background(), []string{"Rust"}, English)
	if len(questions) != 3 {
		t.Fatalf("expected fallback set, got %d", len(questions))
	}
}

func TestGenerateNilGeneratorUsesFallback(t *testing.T) {
	t.Parallel()

	gen := NewQuestionGenerator(nil, zap.NewNop(), 0)

	questions := gen.Generate(context.Background(), nil, English)
	if len(questions) != 3 {
		t.Fatalf("expected fallback set, got %d", len(questions))
	}
}

func TestParseQuestionsStripsFenceInfoString(t *testing.T) {
	t.Parallel()

	raw := "```text\n1. What is the Django ORM?\n2. How do migrations work?\n3. Explain middleware.\n```"
	questions := parseQuestions(raw)

	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d: %v", len(questions), questions)
	}
	if questions[0] != "What is the Django ORM?" {
		t.Fatalf("fence info string must not survive as a question, got %q", questions[0])
	}
}

func TestParseQuestionsDedupAndMarkers(t *testing.T) {
	t.Parallel()

	raw := "```\nHere are the questions:\n- What is Django ORM?\n* what is django orm?\n• How do migrations work?\n\n3) Explain middleware.\n```"
	questions := parseQuestions(raw)

	if len(questions) != 3 {
		t.Fatalf("expected 3 distinct questions, got %d: %v", len(questions), questions)
	}
	if questions[2] != "Explain middleware." {
		t.Fatalf("expected marker stripped, got %q", questions[2])
	}
}
