package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ashwinpai/mailsentry/internal/ai/prompt"
	"github.com/ashwinpai/mailsentry/internal/analysis"
	"github.com/ashwinpai/mailsentry/internal/config"
	"github.com/ashwinpai/mailsentry/pkg/models"
)

// Provider implements models.Analyzer using a local Ollama server.
type Provider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewProvider(cfg config.OllamaConfig) *Provider {
	return &Provider{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{},
	}
}

func (p *Provider) Name() string { return "ollama" }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

func (p *Provider) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	body, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: prompt.Build(req),
		System: prompt.System,
		Stream: false,
	})
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("create ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("read ollama response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("decode ollama response: %w", err)
	}
	if parsed.Error != "" {
		return models.AnalysisResult{}, fmt.Errorf("ollama API error: %s", parsed.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return models.AnalysisResult{}, fmt.Errorf("ollama API returned status %d", resp.StatusCode)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return models.AnalysisResult{}, fmt.Errorf("ollama returned an empty response")
	}

	return analysis.Parse(parsed.Response), nil
}

var _ models.Analyzer = (*Provider)(nil)
