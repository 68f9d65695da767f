package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashwinpai/mailsentry/internal/ai"
	mw "github.com/ashwinpai/mailsentry/internal/api/middleware"
	"github.com/ashwinpai/mailsentry/pkg/models"
	"github.com/google/uuid"
)

func setTenantCtx(ctx context.Context, id uuid.UUID) context.Context {
	return mw.SetTenantID(ctx, id)
}

// --- mock Triager ---

type mockTriager struct {
	fn func(params ai.TriageParams) (*models.TriageRecord, error)
}

func (m *mockTriager) Triage(_ context.Context, params ai.TriageParams) (*models.TriageRecord, error) {
	return m.fn(params)
}

func successTriager() *mockTriager {
	return &mockTriager{fn: func(params ai.TriageParams) (*models.TriageRecord, error) {
		return &models.TriageRecord{
			ID:          uuid.New(),
			TenantID:    params.TenantID,
			Provider:    "mock",
			MessageHash: "abc123",
			Message:     params.Message,
			Result: models.AnalysisResult{
				RiskLevel:         models.RiskSafe,
				Reason:            "No risk indicators detected.",
				BusinessImpact:    "None",
				RecommendedAction: "Respond normally",
				LeadQualityScore:  6,
				BusinessInsight:   "General inquiry",
			},
			CreatedAt: time.Now().UTC(),
		}, nil
	}}
}

// --- helpers ---

func triageReq(t *testing.T, body any, tenantID uuid.UUID) *http.Request {
	t.Helper()
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/triage", bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r.WithContext(setTenantCtx(r.Context(), tenantID))
}

func parseData(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) map[string]any {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("expected %d, got %d: %s", wantStatus, rec.Code, rec.Body.String())
	}
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Data
}

func parseErr(t *testing.T, rec *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, env.Error.Code
}

// --- tests ---

func TestTriageHandler_Success(t *testing.T) {
	h := NewTriageHandler(successTriager())
	rec := httptest.NewRecorder()
	tid := uuid.New()

	body := map[string]any{
		"message":    "Hi, do you ship to Canada?",
		"senderInfo": "buyer@example.com",
	}
	h.ServeHTTP(rec, triageReq(t, body, tid))

	data := parseData(t, rec, http.StatusCreated)
	result := data["result"].(map[string]any)
	if result["riskLevel"] != "Safe" {
		t.Errorf("unexpected riskLevel: %v", result["riskLevel"])
	}
	if data["provider"] != "mock" {
		t.Errorf("unexpected provider: %v", data["provider"])
	}
}

func TestTriageHandler_PassesParamsThrough(t *testing.T) {
	var captured ai.TriageParams
	mock := &mockTriager{fn: func(params ai.TriageParams) (*models.TriageRecord, error) {
		captured = params
		return &models.TriageRecord{Result: models.AnalysisResult{RiskLevel: models.RiskSafe}}, nil
	}}

	h := NewTriageHandler(mock)
	rec := httptest.NewRecorder()
	tid := uuid.New()

	body := map[string]any{
		"message":    "quote please",
		"senderInfo": "alice@example.com",
		"context":    "previous thread about pricing",
	}
	h.ServeHTTP(rec, triageReq(t, body, tid))

	if captured.TenantID != tid {
		t.Errorf("expected tenant %s, got %s", tid, captured.TenantID)
	}
	if captured.SenderInfo != "alice@example.com" {
		t.Errorf("unexpected senderInfo: %q", captured.SenderInfo)
	}
	if captured.Context != "previous thread about pricing" {
		t.Errorf("unexpected context: %q", captured.Context)
	}
}

func TestTriageHandler_MissingTenant(t *testing.T) {
	h := NewTriageHandler(successTriager())
	rec := httptest.NewRecorder()

	b, _ := json.Marshal(map[string]any{"message": "hello"})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/triage", bytes.NewReader(b))
	h.ServeHTTP(rec, r)

	status, code := parseErr(t, rec)
	if status != http.StatusUnauthorized || code != "INVALID_TOKEN" {
		t.Errorf("expected 401 INVALID_TOKEN, got %d %s", status, code)
	}
}

func TestTriageHandler_MissingMessage(t *testing.T) {
	h := NewTriageHandler(successTriager())
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, triageReq(t, map[string]any{"senderInfo": "x@y.z"}, uuid.New()))

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
	}
}

func TestTriageHandler_InvalidJSON(t *testing.T) {
	h := NewTriageHandler(successTriager())
	rec := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/triage", bytes.NewReader([]byte("{not json")))
	r = r.WithContext(setTenantCtx(r.Context(), uuid.New()))
	h.ServeHTTP(rec, r)

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
	}
}

func TestTriageHandler_BlankMessage(t *testing.T) {
	mock := &mockTriager{fn: func(_ ai.TriageParams) (*models.TriageRecord, error) {
		return nil, ai.ErrEmptyMessage
	}}
	h := NewTriageHandler(mock)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, triageReq(t, map[string]any{"message": "   "}, uuid.New()))

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
	}
}

func TestTriageHandler_InternalError(t *testing.T) {
	mock := &mockTriager{fn: func(_ ai.TriageParams) (*models.TriageRecord, error) {
		return nil, errors.New("pg: connection refused")
	}}
	h := NewTriageHandler(mock)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, triageReq(t, map[string]any{"message": "hi"}, uuid.New()))

	status, code := parseErr(t, rec)
	if status != http.StatusInternalServerError || code != "INTERNAL_ERROR" {
		t.Errorf("expected 500 INTERNAL_ERROR, got %d %s", status, code)
	}
}
