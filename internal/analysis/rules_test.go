package analysis_test

import (
	"strings"
	"testing"

	"github.com/ashwinpai/mailsentry/internal/analysis"
	"github.com/ashwinpai/mailsentry/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptyMessage(t *testing.T) {
	res := analysis.Analyze("", "", "")

	assert.Equal(t, models.RiskSafe, res.RiskLevel)
	assert.Equal(t, 0, res.LeadQualityScore)
	assert.NotEmpty(t, res.Reason)
	assert.NotEmpty(t, res.BusinessImpact)
	assert.NotEmpty(t, res.RecommendedAction)
	assert.NotEmpty(t, res.BusinessInsight)
}

func TestAnalyze_HighRiskFraud(t *testing.T) {
	msg := "URGENT: your bank account is suspended. Wire the fee and verify your password at https://x.com"
	res := analysis.Analyze(msg, "", "")

	assert.Equal(t, models.RiskHighFraud, res.RiskLevel)
	assert.Equal(t, 0, res.LeadQualityScore)
	assert.Empty(t, res.SuggestedReply, "fraud messages get no reply template")
	assert.Contains(t, res.RecommendedAction, "Do not respond")
}

func TestAnalyze_UrgencyWithoutURLIsSuspiciousOnly(t *testing.T) {
	res := analysis.Analyze("This is urgent, please call me back today", "", "")

	assert.Equal(t, models.RiskSuspicious, res.RiskLevel)
	assert.Empty(t, res.SuggestedReply)
}

func TestAnalyze_InfoRequestIsSuspicious(t *testing.T) {
	res := analysis.Analyze("Could you send over the credit card details for the invoice?", "", "")

	assert.Equal(t, models.RiskSuspicious, res.RiskLevel)
}

func TestAnalyze_UrgencyPlusInfoRequestPlusURLEscalates(t *testing.T) {
	// No fraud keyword from the fixed set beyond urgency phrasing, but
	// urgency + sensitive-data request + link still escalates.
	res := analysis.Analyze("Respond immediately with your ssn via https://forms.example.com", "", "")

	assert.Equal(t, models.RiskHighFraud, res.RiskLevel)
}

func TestAnalyze_SalesLead_ShortMessage(t *testing.T) {
	msg := "Interested in pricing, our budget is set, need a demo next week"
	require.LessOrEqual(t, len(msg), 200)

	res := analysis.Analyze(msg, "", "")

	assert.Equal(t, models.RiskSafe, res.RiskLevel)
	// base 5 + budget 2 + demo 1
	assert.Equal(t, 8, res.LeadQualityScore)
	assert.Contains(t, res.SuggestedReply, "pricing")
	assert.Contains(t, res.BusinessInsight, "8/10")
}

func TestAnalyze_SalesLead_LongMessageGetsLengthBonus(t *testing.T) {
	msg := "Interested in pricing, our budget is set, need a demo next week. When can we start? " +
		strings.Repeat("We are evaluating vendors this quarter. ", 4)
	require.Greater(t, len(msg), 200)

	res := analysis.Analyze(msg, "", "")

	assert.Equal(t, models.RiskSafe, res.RiskLevel)
	// base 5 + budget 2 + when 1 + demo 1 + length 1, capped at 10
	assert.Equal(t, 10, res.LeadQualityScore)
}

func TestAnalyze_LeadScoreZeroWhenRisky(t *testing.T) {
	// Sales signals but urgency pressure: risk escalates, score stays 0.
	res := analysis.Analyze("Interested in pricing, need a quote asap", "", "")

	assert.Equal(t, models.RiskSuspicious, res.RiskLevel)
	assert.Equal(t, 0, res.LeadQualityScore)
}

func TestAnalyze_Complaint(t *testing.T) {
	res := analysis.Analyze("I want a refund, the service was terrible", "", "")

	assert.Equal(t, models.RiskSafe, res.RiskLevel)
	assert.Contains(t, res.SuggestedReply, "sorry")
	assert.Contains(t, res.RecommendedAction, "apology")
	assert.Contains(t, res.BusinessInsight, "satisfaction")
}

func TestAnalyze_ComplaintReplySurvivesSuspiciousRisk(t *testing.T) {
	// Complaint + urgency: risk narratives win for impact/action, but the
	// apology template still applies regardless of risk.
	res := analysis.Analyze("This is urgent, I am unhappy and want a refund", "", "")

	assert.Equal(t, models.RiskSuspicious, res.RiskLevel)
	assert.Contains(t, res.SuggestedReply, "sorry")
	assert.Contains(t, res.BusinessImpact, "phishing")
}

func TestAnalyze_SafeGenericReply(t *testing.T) {
	res := analysis.Analyze("Hello, attaching the notes from yesterday", "", "")

	assert.Equal(t, models.RiskSafe, res.RiskLevel)
	assert.Contains(t, res.SuggestedReply, "Thanks for reaching out")
}

func TestAnalyze_RiskNarrativesTakePriorityOverContent(t *testing.T) {
	msg := "Act now! Verify your bank account password here https://evil.example"
	res := analysis.Analyze(msg, "", "")

	assert.Equal(t, models.RiskHighFraud, res.RiskLevel)
	assert.Contains(t, res.BusinessImpact, "financial loss")
	assert.Contains(t, res.BusinessInsight, "Fraud attempt")
}

func TestAnalyze_IgnoresSenderAndContext(t *testing.T) {
	base := analysis.Analyze("Looking for a quote", "", "")
	withMeta := analysis.Analyze("Looking for a quote", "ceo@example.com", "prior thread")

	assert.Equal(t, base, withMeta)
}

func TestAnalyze_Deterministic(t *testing.T) {
	msg := "urgent wire transfer needed, verify password https://x.com"
	first := analysis.Analyze(msg, "", "")
	second := analysis.Analyze(msg, "", "")

	assert.Equal(t, first, second)
}

func TestDetectSignals_CaseInsensitive(t *testing.T) {
	sig := analysis.DetectSignals("WIRE the funds, I am DISAPPOINTED, send a QUOTE")

	assert.True(t, sig.Fraud)
	assert.True(t, sig.Complaint)
	assert.True(t, sig.Sales)
	assert.False(t, sig.URL)
}
