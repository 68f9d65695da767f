package ai

import (
	"fmt"

	"github.com/ashwinpai/mailsentry/internal/ai/anthropic"
	"github.com/ashwinpai/mailsentry/internal/ai/ollama"
	"github.com/ashwinpai/mailsentry/internal/ai/openai"
	"github.com/ashwinpai/mailsentry/internal/ai/rules"
	"github.com/ashwinpai/mailsentry/internal/config"
	"github.com/ashwinpai/mailsentry/pkg/models"
)

// NewAnalyzer constructs the appropriate analysis backend based on config.
// Called once at server startup.
func NewAnalyzer(cfg config.AIConfig) (models.Analyzer, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewProvider(cfg.OpenAI), nil
	case "anthropic":
		return anthropic.NewProvider(cfg.Anthropic), nil
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	case "rules":
		return rules.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, anthropic, ollama, rules", cfg.Provider)
	}
}
