package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ashwinpai/mailsentry/internal/ai"
	mw "github.com/ashwinpai/mailsentry/internal/api/middleware"
	"github.com/ashwinpai/mailsentry/internal/api/response"
	"github.com/ashwinpai/mailsentry/pkg/models"
)

const maxMessageBytes = 64 * 1024

// Triager defines the interface the triage handler depends on.
type Triager interface {
	Triage(ctx context.Context, params ai.TriageParams) (*models.TriageRecord, error)
}

// NewTriageHandler returns an http.HandlerFunc for POST /api/v1/triage.
func NewTriageHandler(svc Triager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		var req struct {
			Message    string `json:"message"`
			SenderInfo string `json:"senderInfo"`
			Context    string `json:"context"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxMessageBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.Message == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "message is required", nil)
			return
		}

		rec, err := svc.Triage(r.Context(), ai.TriageParams{
			TenantID:   tenantID,
			Message:    req.Message,
			SenderInfo: req.SenderInfo,
			Context:    req.Context,
		})
		if err != nil {
			switch {
			case errors.Is(err, ai.ErrEmptyMessage):
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"message must not be blank", nil)
			case errors.Is(err, ai.ErrProviderUnavailable):
				response.Error(w, http.StatusBadGateway, "AI_PROVIDER_UNAVAILABLE",
					"The AI provider is not available", nil)
			case errors.Is(err, ai.ErrInferenceTimeout):
				response.Error(w, http.StatusGatewayTimeout, "AI_INFERENCE_TIMEOUT",
					"Analysis took too long and was cancelled", nil)
			default:
				response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
					"An unexpected error occurred", nil)
			}
			return
		}

		response.Created(w, rec)
	}
}
