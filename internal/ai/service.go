package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ashwinpai/mailsentry/internal/ai/rules"
	"github.com/ashwinpai/mailsentry/internal/cache"
	"github.com/ashwinpai/mailsentry/internal/store"
	"github.com/ashwinpai/mailsentry/pkg/models"
	"github.com/google/uuid"
)

// TriageParams holds validated parameters for a triage request.
type TriageParams struct {
	TenantID   uuid.UUID
	Message    string
	SenderInfo string
	Context    string
}

// TriageService orchestrates message analysis: cache lookup, model inference
// with a deterministic fallback, persistence, and caching of the result.
type TriageService struct {
	provider models.Analyzer
	fallback models.Analyzer
	store    store.Store
	cache    cache.Cache
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewTriageService creates a new TriageService.
func NewTriageService(provider models.Analyzer, st store.Store, ca cache.Cache, timeout, cacheTTL time.Duration) *TriageService {
	return &TriageService{
		provider: provider,
		fallback: rules.NewProvider(),
		store:    st,
		cache:    ca,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

// Triage analyzes an inbound message and returns the persisted record.
// Identical requests within the cache TTL are served from Redis without
// re-running inference.
func (s *TriageService) Triage(ctx context.Context, params TriageParams) (*models.TriageRecord, error) {
	if strings.TrimSpace(params.Message) == "" {
		return nil, ErrEmptyMessage
	}

	hash := MessageHash(params.Message, params.SenderInfo, params.Context)

	if cached, ok, err := s.cache.GetTriageRecord(ctx, params.TenantID, hash); err == nil && ok {
		return cached, nil
	}

	result, providerName := s.analyze(ctx, models.AnalysisRequest{
		Message:    params.Message,
		SenderInfo: params.SenderInfo,
		Context:    params.Context,
	})

	result.LeadQualityScore = models.ClampLeadScore(result.LeadQualityScore)
	result.RiskLevel = models.ParseRiskLevel(string(result.RiskLevel))

	rec := &models.TriageRecord{
		ID:          uuid.New(),
		TenantID:    params.TenantID,
		Provider:    providerName,
		MessageHash: hash,
		Message:     truncateString(params.Message, 10000),
		SenderInfo:  truncateString(params.SenderInfo, 1000),
		Result:      result,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.CreateTriageRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("storing triage record: %w", err)
	}

	if err := s.cache.SetTriageRecord(ctx, params.TenantID, hash, rec, s.cacheTTL); err != nil {
		slog.Warn("failed to cache triage record", "error", err, "record_id", rec.ID)
	}

	return rec, nil
}

// analyze runs the configured provider with a timeout, falling back to
// rule-based analysis when the model call fails. The fallback never errors.
func (s *TriageService) analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, string) {
	inferCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.provider.Analyze(inferCtx, req)
	if err == nil {
		return result, s.provider.Name()
	}

	slog.Warn("model analysis failed, using rule-based fallback",
		"provider", s.provider.Name(), "error", err)

	result, _ = s.fallback.Analyze(ctx, req)
	return result, s.fallback.Name()
}

// MessageHash returns the sha256 hex digest identifying a triage request.
// Sender and context are part of the identity: the same message body from a
// different sender is a different request.
func MessageHash(message, senderInfo, contextInfo string) string {
	h := sha256.New()
	h.Write([]byte(message))
	h.Write([]byte{'|'})
	h.Write([]byte(senderInfo))
	h.Write([]byte{'|'})
	h.Write([]byte(contextInfo))
	return hex.EncodeToString(h.Sum(nil))
}

// truncateString truncates s to maxBytes without splitting UTF-8 runes.
func truncateString(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
