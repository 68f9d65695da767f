package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	mw "github.com/ashwinpai/mailsentry/internal/api/middleware"
	"github.com/ashwinpai/mailsentry/internal/api/response"
	"github.com/ashwinpai/mailsentry/internal/store"
	"github.com/ashwinpai/mailsentry/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NewListTriageHandler returns an http.HandlerFunc for GET /api/v1/triage.
// Supports riskLevel, since, page and limit query parameters.
func NewListTriageHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		filter := store.TriageFilter{TenantID: tenantID}

		if lvl := r.URL.Query().Get("riskLevel"); lvl != "" {
			parsed := models.ParseRiskLevel(lvl)
			if parsed == models.RiskUnknown && lvl != string(models.RiskUnknown) {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"riskLevel must be one of Safe, Suspicious, High Risk Fraud, Unknown", nil)
				return
			}
			filter.RiskLevel = parsed
		}

		if since := r.URL.Query().Get("since"); since != "" {
			t, err := time.Parse(time.RFC3339, since)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"since must be a valid RFC3339 timestamp", nil)
				return
			}
			filter.Since = t
		}

		filter.Page = queryInt(r, "page", 1)
		filter.Limit = queryInt(r, "limit", 20)

		records, total, err := st.ListTriageRecords(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to list triage records", nil)
			return
		}

		if records == nil {
			records = []*models.TriageRecord{}
		}

		limit := filter.Limit
		if limit <= 0 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}
		page := filter.Page
		if page <= 0 {
			page = 1
		}

		response.Collection(w, records, response.PaginationMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasNext: page*limit < total,
		})
	}
}

// NewGetTriageHandler returns an http.HandlerFunc for GET /api/v1/triage/{recordID}.
func NewGetTriageHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		recordID, err := uuid.Parse(chi.URLParam(r, "recordID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"recordID must be a valid UUID", nil)
			return
		}

		rec, err := st.GetTriageRecord(r.Context(), recordID, tenantID)
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "NOT_FOUND", "Triage record not found", nil)
			return
		}
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to fetch triage record", nil)
			return
		}

		response.JSON(w, rec)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
