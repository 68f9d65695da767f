// Package rules adapts the deterministic analyzer to the models.Analyzer
// interface so it can stand in wherever a model backend would.
package rules

import (
	"context"

	"github.com/ashwinpai/mailsentry/internal/analysis"
	"github.com/ashwinpai/mailsentry/pkg/models"
)

// Provider is the rule-based fallback analyzer. It never fails and needs
// no configuration.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "rules" }

func (p *Provider) Analyze(_ context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	return analysis.Analyze(req.Message, req.SenderInfo, req.Context), nil
}

var _ models.Analyzer = (*Provider)(nil)
