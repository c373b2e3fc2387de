package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"

	defaultMaxLogLength = 200
	retryBaseDelay      = 2 * time.Second
)

// supportedModels is the static preference list. An unknown or empty name
// resolves to the default.
var supportedModels = map[string]struct{}{
	"gemini-2.5-flash": {},
	"gemini-2.5-pro":   {},
}

// Generator wraps the Google GenAI client behind the ai.TextGenerator
// capability.
type Generator struct {
	client     *genai.Client
	modelName  string
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Generator{
		client:     client,
		modelName:  ResolveModel(model),
		maxRetries: maxRetries,
		maxLogLen:  defaultMaxLogLength,
		logger:     log,
	}, nil
}

// ResolveModel maps the preferred model name onto a supported one, falling
// back to the default when the name is unknown.
func ResolveModel(preferred string) string {
	preferred = strings.TrimSuffix(strings.TrimSpace(preferred), "-latest")
	if _, ok := supportedModels[preferred]; ok {
		return preferred
	}
	return defaultModel
}

// GenerateText sends the prompt to Gemini and returns the joined textual
// response. Provider failures are mapped onto the ai package sentinel errors.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("%w: gemini generator is not initialized", ai.ErrModelUnavailable)
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.logger.Debug("gemini generate text request",
		zap.String("model", g.modelName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			if err := waitFor(ctx, time.Duration(attempt)*retryBaseDelay); err != nil {
				return "", fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
			}
			g.logger.Debug("retrying gemini call", zap.Int("attempt", attempt))
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = classify(err)
			if errors.Is(lastErr, ai.ErrRateLimited) {
				continue
			}
			return "", lastErr
		}

		output := joinCandidates(resp)
		if output == "" {
			lastErr = fmt.Errorf("%w: gemini api returned empty response", ai.ErrModelUnavailable)
			continue
		}

		g.logger.Debug("gemini generate text response",
			zap.Int("response_length", utf8.RuneCountInString(output)),
			zap.String("response_preview", logger.TruncateForLog(output, g.maxLogLen)),
		)

		return output, nil
	}

	return "", lastErr
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func joinCandidates(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

// classify maps provider errors onto the taxonomy the core understands.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") {
		return fmt.Errorf("%w: %w", ai.ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", ai.ErrModelUnavailable, err)
}

// waitFor sleeps for d unless the context is cancelled first.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
