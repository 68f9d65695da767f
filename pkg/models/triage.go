package models

import (
	"time"

	"github.com/google/uuid"
)

// TriageRecord is a persisted analysis of a single inbound message.
// The embedded AnalysisResult is immutable once written.
type TriageRecord struct {
	ID          uuid.UUID      `db:"id"           json:"id"`
	TenantID    uuid.UUID      `db:"tenant_id"    json:"tenant_id"`
	Provider    string         `db:"provider"     json:"provider"`
	MessageHash string         `db:"message_hash" json:"message_hash"`
	Message     string         `db:"message"      json:"message"`
	SenderInfo  string         `db:"sender_info"  json:"sender_info,omitempty"`
	Result      AnalysisResult `db:"-"            json:"result"`
	CreatedAt   time.Time      `db:"created_at"   json:"created_at"`
}
