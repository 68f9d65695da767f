package store

import (
	"context"
	"errors"
	"time"

	"github.com/ashwinpai/mailsentry/pkg/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error
	GetDefaultTenant(ctx context.Context) (*models.Tenant, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	CreateTriageRecord(ctx context.Context, rec *models.TriageRecord) error
	ListTriageRecords(ctx context.Context, filter TriageFilter) ([]*models.TriageRecord, int, error)
	GetTriageRecord(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.TriageRecord, error)
}

type TriageFilter struct {
	TenantID  uuid.UUID
	RiskLevel models.RiskLevel
	Since     time.Time
	Page      int
	Limit     int
}
