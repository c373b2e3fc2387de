package screening

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"

	"go.uber.org/zap"
)

const (
	minQuestions = 3
	maxQuestions = 5

	defaultMaxLogLength = 200
)

// QuestionGenerator turns a confirmed tech stack into 3-5 screening questions.
// It degrades to a built-in template set when the model yields nothing usable,
// so the count contract always holds.
type QuestionGenerator struct {
	generator ai.TextGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestionGenerator(generator ai.TextGenerator, log *zap.Logger, maxLogLength int) *QuestionGenerator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &QuestionGenerator{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Generate asks the model once, retries once with a stricter instruction when
// parsing yields fewer than 3 questions, then falls back to templates.
func (q *QuestionGenerator) Generate(ctx context.Context, stack []string, lang Language) []string {
	if q.generator == nil {
		return fallbackQuestions(stack, lang)
	}

	for _, strict := range []bool{false, true} {
		questions := q.attempt(ctx, stack, lang, strict)
		if len(questions) >= minQuestions {
			if len(questions) > maxQuestions {
				questions = questions[:maxQuestions]
			}
			return questions
		}
	}

	q.logger.Warn("falling back to built-in question templates",
		zap.Strings("tech_stack", stack),
	)

	return fallbackQuestions(stack, lang)
}

func (q *QuestionGenerator) attempt(ctx context.Context, stack []string, lang Language, strict bool) []string {
	prompt := buildQuestionsPrompt(stack, lang, strict)

	raw, err := q.generator.GenerateText(ctx, prompt)
	if err != nil {
		q.logger.Warn("question generation call failed",
			zap.Bool("strict", strict),
			zap.Error(err),
		)
		return nil
	}

	q.logger.Debug("question generation response",
		zap.Bool("strict", strict),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, q.maxLogLen)),
	)

	return parseQuestions(raw)
}

// parseQuestions splits the raw model reply into discrete questions, stripping
// list markers and dropping empty or duplicate lines.
func parseQuestions(raw string) []string {
	raw = stripFences(raw)

	questions := make([]string, 0, maxQuestions)
	seen := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		question := stripListMarker(strings.TrimSpace(line))
		if question == "" || strings.HasSuffix(question, ":") {
			// Intro lines like "Here are your questions:" are not questions.
			continue
		}
		key := strings.ToLower(question)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		questions = append(questions, question)
	}
	return questions
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```")
		// Drop an info string like "text" on the opening fence line.
		if idx := strings.Index(raw, "\n"); idx != -1 {
			raw = raw[idx+1:]
		} else {
			raw = ""
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

func stripListMarker(line string) string {
	// Numbering like "12." or "3)".
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}

	line = strings.TrimSpace(line)
	for _, marker := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, marker) {
			line = strings.TrimPrefix(line, marker)
			break
		}
	}
	return strings.TrimSpace(line)
}

// fallbackQuestions returns exactly minQuestions generic questions targeting
// the candidate's leading technologies.
func fallbackQuestions(stack []string, lang Language) []string {
	primary := "your primary technology"
	if lang == Hindi {
		primary = "आपकी मुख्य तकनीक"
	}
	if len(stack) > 0 {
		primary = stack[0]
	}

	if lang == Hindi {
		return []string{
			fmt.Sprintf("%s का उपयोग करके आपने जो सबसे चुनौतीपूर्ण समस्या हल की, उसका वर्णन करें।", primary),
			fmt.Sprintf("%s की मुख्य ताकतें और कमजोरियां इसके विकल्पों की तुलना में क्या हैं?", primary),
			fmt.Sprintf("%s से बने एप्लिकेशन का परीक्षण और डिबग आप कैसे करते हैं?", primary),
		}
	}

	return []string{
		fmt.Sprintf("Describe a challenging problem you solved using %s and how you approached it.", primary),
		fmt.Sprintf("What are the core strengths and trade-offs of %s compared to its alternatives?", primary),
		fmt.Sprintf("How do you test and debug applications built with %s?", primary),
	}
}
