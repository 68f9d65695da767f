package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func TriageKey(tenantID uuid.UUID, messageHash string) string {
	return fmt.Sprintf("triage:%s:%s", tenantID, messageHash)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
