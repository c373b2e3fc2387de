package screening

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/ai"

	"go.uber.org/zap"
)

// Phase is the discrete stage of a screening conversation. Phases only move
// forward, except for a tech stack correction which bounces back through
// Gathering.
type Phase int

const (
	PhaseGreeting Phase = iota
	PhaseGathering
	PhaseConfirmingStack
	PhaseGeneratingQuestions
	PhaseChatting
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseGreeting:
		return "greeting"
	case PhaseGathering:
		return "gathering"
	case PhaseConfirmingStack:
		return "confirming_stack"
	case PhaseGeneratingQuestions:
		return "generating_questions"
	case PhaseChatting:
		return "chatting"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the ordered conversation transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Reply is what the session hands back to the transport for one user turn.
type Reply struct {
	Text   string
	Closed bool
}

// Config tunes a session. Zero values fall back to sensible defaults.
type Config struct {
	Language        Language
	GoodbyeKeywords []string
	HistoryWindow   int
	MaxLogLength    int
}

const defaultHistoryWindow = 6

// Session owns the full state of one screening conversation: the phase, the
// candidate record, the transcript and the generated question set. It is the
// only writer of its record. One user turn is processed fully before the next
// is accepted; the session itself does no locking.
type Session struct {
	id            string
	language      Language
	goodbyes      []string
	historyWindow int

	generator ai.TextGenerator
	questions *QuestionGenerator
	sink      SummarySink
	logger    *zap.Logger

	phase       Phase
	record      CandidateRecord
	transcript  []Turn
	questionSet []string
	current     Field

	now  func() time.Time
	pick func(n int) int
}

func NewSession(id string, generator ai.TextGenerator, sink SummarySink, cfg *Config, log *zap.Logger) *Session {
	if cfg == nil {
		cfg = &Config{}
	}

	goodbyes := cfg.GoodbyeKeywords
	if len(goodbyes) == 0 {
		goodbyes = DefaultGoodbyeKeywords
	}

	window := cfg.HistoryWindow
	if window <= 0 {
		window = defaultHistoryWindow
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		id:            id,
		language:      cfg.Language,
		goodbyes:      goodbyes,
		historyWindow: window,
		generator:     generator,
		questions:     NewQuestionGenerator(generator, log, cfg.MaxLogLength),
		sink:          sink,
		logger:        log.With(zap.String("session_id", id)),
		phase:         PhaseGreeting,
		now:           time.Now,
		pick:          rand.Intn,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Closed() bool { return s.phase == PhaseClosed }

// Record returns a copy of the candidate record collected so far.
func (s *Session) Record() CandidateRecord { return s.record }

func (s *Session) Questions() []string {
	return append([]string(nil), s.questionSet...)
}

func (s *Session) Transcript() []Turn {
	return append([]Turn(nil), s.transcript...)
}

// Greeting produces the opening assistant message plus the first field
// question. It must be rendered before the first user turn is handled.
func (s *Session) Greeting() string {
	texts := textsFor(s.language)

	s.current = FieldName
	text := texts.greeting + "\n\n" + texts.ask[s.current]
	s.transcript = append(s.transcript, Turn{Role: RoleAssistant, Text: text})
	return text
}

// HandleTurn processes one user turn end to end: extraction, state update,
// zero or one model call, reply. It never fails on user input; anomalies
// degrade to fallback prompts.
func (s *Session) HandleTurn(ctx context.Context, userText string) Reply {
	texts := textsFor(s.language)

	if s.phase == PhaseClosed {
		return Reply{Text: texts.ended, Closed: true}
	}

	userText = strings.TrimSpace(userText)
	s.transcript = append(s.transcript, Turn{Role: RoleUser, Text: userText})

	if s.isGoodbye(userText) {
		return s.close(userText)
	}

	var text string
	switch s.phase {
	case PhaseGreeting:
		s.phase = PhaseGathering
		text = s.gather(ctx, userText)
	case PhaseGathering:
		text = s.gather(ctx, userText)
	case PhaseConfirmingStack:
		text = s.confirm(ctx, userText)
	case PhaseChatting:
		text = s.chat(ctx, userText)
	default:
		text = texts.fallback
	}

	s.transcript = append(s.transcript, Turn{Role: RoleAssistant, Text: text})
	return Reply{Text: text}
}

// gather consumes the answer for the currently requested field and decides
// what to ask next.
func (s *Session) gather(ctx context.Context, userText string) string {
	texts := textsFor(s.language)

	if s.current == "" {
		if s.record.Complete() {
			return s.toConfirmation()
		}
		s.current = s.record.MissingFields()[0]
	}

	ext := ExtractField(s.current, userText)
	switch ext.Status {
	case Extracted:
		s.record.Set(s.current, ext.Value)
		s.logger.Debug("field collected",
			zap.String("field", string(s.current)),
			zap.String("phase", s.phase.String()),
		)
	case InvalidFormat, OutOfRange:
		if corrective, ok := texts.invalid[s.current]; ok {
			return corrective + " " + texts.ask[s.current]
		}
		return texts.fallback
	case Unparseable:
		return texts.fallback
	}

	if s.record.Complete() {
		return s.toConfirmation()
	}

	s.current = s.record.MissingFields()[0]
	return s.askNext(ctx)
}

func (s *Session) toConfirmation() string {
	s.phase = PhaseConfirmingStack
	s.current = ""
	texts := textsFor(s.language)
	return fmt.Sprintf(texts.confirmStack, strings.Join(s.record.TechStack, ", "))
}

// askNext phrases the question for the next missing field via the model,
// falling back to the fixed per-field text.
func (s *Session) askNext(ctx context.Context) string {
	texts := textsFor(s.language)
	fixed := texts.ask[s.current]

	if s.generator == nil {
		return fixed
	}

	prompt := buildGatheringPrompt(&s.record, s.current, s.language)
	phrased, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("falling back to fixed field prompt",
			zap.String("field", string(s.current)),
			zap.Error(err),
		)
		return fixed
	}

	phrased = strings.TrimSpace(phrased)
	if phrased == "" {
		return fixed
	}
	return phrased
}

// confirm handles the tech stack confirmation step. An affirmative answer
// moves on to question generation; a corrected technology list replaces the
// stack and re-asks; a bare negation bounces back to Gathering to collect the
// stack again; anything else gets the clarification fallback.
func (s *Session) confirm(ctx context.Context, userText string) string {
	texts := textsFor(s.language)

	if s.isAffirmative(userText) && !s.isNegative(userText) {
		s.phase = PhaseGeneratingQuestions
		s.questionSet = s.questions.Generate(ctx, s.record.TechStack, s.language)
		s.phase = PhaseChatting

		lines := make([]string, 0, len(s.questionSet))
		for _, q := range s.questionSet {
			lines = append(lines, "- "+q)
		}

		s.logger.Info("questions generated",
			zap.Int("count", len(s.questionSet)),
			zap.Strings("tech_stack", s.record.TechStack),
		)

		return texts.questionsIntro + "\n" + strings.Join(lines, "\n") + "\n\n" + texts.chatReady
	}

	if stack := s.correctedStack(userText); len(stack) > 0 {
		s.record.TechStack = stack
		s.logger.Debug("tech stack corrected", zap.Strings("tech_stack", stack))
		return fmt.Sprintf(texts.confirmStack, strings.Join(stack, ", "))
	}

	if s.isNegative(userText) {
		s.record.TechStack = nil
		s.phase = PhaseGathering
		s.current = FieldTechStack
		return texts.ask[FieldTechStack]
	}

	return texts.fallback
}

// correctedStack parses a replacement technology list from a confirmation
// reply. Entries that are negations rather than technologies are dropped, so
// "no, Go and Rust" yields Go and Rust while a plain "no" yields nothing.
func (s *Session) correctedStack(text string) []string {
	parsed := ParseTechStack(text)
	stack := make([]string, 0, len(parsed))
	for _, item := range parsed {
		if !s.isNegative(item) {
			stack = append(stack, item)
		}
	}
	return stack
}

// chat serves the open conversation that follows the screening questions.
func (s *Session) chat(ctx context.Context, userText string) string {
	texts := textsFor(s.language)

	if s.generator == nil {
		return texts.fallback
	}

	history := s.transcript
	if len(history) > s.historyWindow {
		history = history[len(history)-s.historyWindow:]
	}

	prompt := buildChatPrompt(&s.record, history, userText, s.language)
	response, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("chat response failed", zap.Error(err))
		return texts.fallback
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return texts.fallback
	}
	return response
}

// close builds the summary, attempts exactly one store append and transitions
// to Closed. A failed append degrades to a visible warning.
func (s *Session) close(finalText string) Reply {
	texts := textsFor(s.language)

	polarity, mood := Sentiment(finalText)

	lines := make([]string, 0, len(requiredFields))
	for _, f := range requiredFields {
		if v := s.record.Get(f); v != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", f, v))
		}
	}
	summary := texts.noDetails
	if len(lines) > 0 {
		summary = strings.Join(lines, "\n")
	}

	var builder strings.Builder
	builder.WriteString(texts.goodbyes[s.pick(len(texts.goodbyes))])
	builder.WriteString(fmt.Sprintf("\n(%s: %s, polarity=%.2f)", texts.sentimentLabel, mood, polarity))
	builder.WriteString(fmt.Sprintf("\n\n%s:\n%s", texts.summaryTitle, summary))

	if s.sink != nil {
		err := s.sink.Append(Summary{
			CreatedAt: s.now(),
			Record:    s.record,
			Questions: s.questionSet,
			Sentiment: mood,
		})
		if err != nil {
			s.logger.Warn("saving candidate summary failed", zap.Error(err))
			builder.WriteString("\n\n" + texts.storeWarning)
		} else {
			s.logger.Info("candidate summary saved",
				zap.String("candidate", s.record.Name),
				zap.Int("questions", len(s.questionSet)),
			)
		}
	}

	s.phase = PhaseClosed
	text := builder.String()
	s.transcript = append(s.transcript, Turn{Role: RoleAssistant, Text: text})
	return Reply{Text: text, Closed: true}
}

func (s *Session) isGoodbye(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range s.goodbyes {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (s *Session) isAffirmative(text string) bool {
	return containsToken(text, textsFor(s.language).affirmations)
}

func (s *Session) isNegative(text string) bool {
	return containsToken(text, textsFor(s.language).negations)
}

func containsToken(text string, words []string) bool {
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?;:'")
		for _, word := range words {
			if token == word {
				return true
			}
		}
	}
	return false
}
