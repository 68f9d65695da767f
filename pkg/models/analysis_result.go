// Package models contains shared data models used across the MailSentry codebase.
package models

import "strings"

// RiskLevel is the core classification output for a triaged message.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "Safe"
	RiskSuspicious RiskLevel = "Suspicious"
	RiskHighFraud  RiskLevel = "High Risk Fraud"
	RiskUnknown    RiskLevel = "Unknown"
)

// ParseRiskLevel maps a free-form risk level string to the canonical enum.
// Matching is case-insensitive; anything unrecognized becomes RiskUnknown.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return RiskSafe
	case "suspicious":
		return RiskSuspicious
	case "high risk fraud":
		return RiskHighFraud
	default:
		return RiskUnknown
	}
}

// AnalysisResult is the normalized output of message analysis, whether it
// came from a model backend or the rule-based fallback. Field names on the
// wire are fixed; downstream consumers depend on them.
type AnalysisResult struct {
	RiskLevel         RiskLevel `json:"riskLevel"`
	Reason            string    `json:"reason"`
	BusinessImpact    string    `json:"businessImpact"`
	RecommendedAction string    `json:"recommendedAction"`
	SuggestedReply    string    `json:"suggestedReply,omitempty"`
	LeadQualityScore  int       `json:"leadQualityScore"`
	BusinessInsight   string    `json:"businessInsight"`
}

// ClampLeadScore bounds a lead quality score to [0, 10].
func ClampLeadScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
