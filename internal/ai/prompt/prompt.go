// Package prompt builds the analysis prompts sent to model backends.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ashwinpai/mailsentry/pkg/models"
)

// System is the system prompt shared by all model backends.
const System = "You are a business message triage assistant. You classify inbound " +
	"business messages (email, chat, sales leads) for fraud risk, estimate business " +
	"impact, and propose a response. Be factual and concise."

// Build renders the user prompt for an analysis request. The requested JSON
// field names and the labeled-line fallback format must stay in sync with
// the response parser.
func Build(req models.AnalysisRequest) string {
	var b strings.Builder

	b.WriteString("Analyze the following business message.\n\n")
	fmt.Fprintf(&b, "Message:\n%s\n", req.Message)
	if req.SenderInfo != "" {
		fmt.Fprintf(&b, "\nSender info: %s\n", req.SenderInfo)
	}
	if req.Context != "" {
		fmt.Fprintf(&b, "\nAdditional context: %s\n", req.Context)
	}

	b.WriteString(`
Respond with a single JSON object using exactly these fields:
{
  "riskLevel": "Safe" | "Suspicious" | "High Risk Fraud",
  "reason": "why you chose that risk level",
  "businessImpact": "expected impact on the business",
  "recommendedAction": "what the operator should do",
  "suggestedReply": "a reply template, or empty if none applies",
  "leadQualityScore": 0-10 integer, 0 unless this is a qualified sales inquiry,
  "businessInsight": "one observation useful for business trends"
}

If you cannot produce JSON, use labeled lines instead:
Risk Level: ...
Reason: ...
Business Impact: ...
Recommended Action: ...
Suggested Reply: ...
Lead Quality Score: ...
Business Insight: ...
`)

	return b.String()
}
