package ai

import (
	"context"
	"errors"
)

var (
	// ErrModelUnavailable reports that the hosted model could not produce a
	// usable response. Callers fall back to fixed templates.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrRateLimited reports that the provider rejected the call due to quota.
	ErrRateLimited = errors.New("model rate limited")
)

// TextGenerator is the capability the conversational core needs from a hosted
// language model. Implementations live under provider subpackages; tests use
// deterministic stubs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
