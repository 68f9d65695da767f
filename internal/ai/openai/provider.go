package openai

import (
	"context"
	"fmt"

	"github.com/ashwinpai/mailsentry/internal/ai/prompt"
	"github.com/ashwinpai/mailsentry/internal/analysis"
	"github.com/ashwinpai/mailsentry/internal/config"
	"github.com/ashwinpai/mailsentry/pkg/models"
	openai "github.com/sashabaranov/go-openai"
)

// Provider implements models.Analyzer using the OpenAI Chat Completions API.
type Provider struct {
	client *openai.Client
	model  string
}

func NewProvider(cfg config.OpenAIConfig) *Provider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Provider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.Build(req)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.AnalysisResult{}, fmt.Errorf("openai returned no choices")
	}

	return analysis.Parse(resp.Choices[0].Message.Content), nil
}

var _ models.Analyzer = (*Provider)(nil)
