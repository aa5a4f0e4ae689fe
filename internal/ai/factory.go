package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/namevibe/internal/config"
)

// NewFromConfig creates the configured vision provider.
func NewFromConfig(ctx context.Context, cfg *config.Config) (FaceClassifier, error) {
	switch cfg.Vision.Provider {
	case "", "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is required")
		}
		return NewGeminiProvider(ctx, cfg.Gemini.APIKey)
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, errors.New("OPENAI_TOKEN environment variable is required")
		}
		return NewOpenAIProvider(cfg.OpenAI.Token), nil
	default:
		return nil, fmt.Errorf("unknown vision provider %q (use gemini or openai)", cfg.Vision.Provider)
	}
}
