package models

import "context"

// Analyzer is the core interface that all analysis backends must implement.
// Never call specific model providers directly — always inject this interface.
type Analyzer interface {
	// Analyze classifies a business message and proposes a response.
	Analyze(ctx context.Context, req AnalysisRequest) (AnalysisResult, error)
	// Name returns the provider identifier (e.g., "openai", "rules").
	Name() string
}

// AnalysisRequest is the input to an analysis operation. SenderInfo and
// Context are optional free-text hints passed through to model backends.
type AnalysisRequest struct {
	Message    string
	SenderInfo string
	Context    string
}
