package ai

import (
	"fmt"

	"github.com/voyago/tripsmith/internal/ai/mock"
	"github.com/voyago/tripsmith/internal/ai/ollama"
	"github.com/voyago/tripsmith/internal/ai/openai"
	"github.com/voyago/tripsmith/internal/config"
	"github.com/voyago/tripsmith/pkg/models"
)

// NewGenerator constructs the appropriate generator based on config.
// Called once at server startup.
func NewGenerator(cfg config.AIConfig) (models.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	case "mock":
		return mock.NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, ollama, mock", cfg.Provider)
	}
}
