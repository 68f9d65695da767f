package analysis

import (
	"fmt"
	"strings"

	"github.com/ashwinpai/mailsentry/pkg/models"
)

// ruleInput carries everything a narrative rule table can branch on.
type ruleInput struct {
	risk  models.RiskLevel
	sig   Signals
	score int
}

// textRule is one (predicate, outcome) pair. Tables are evaluated in
// order, first match wins.
type textRule struct {
	when func(ruleInput) bool
	text func(ruleInput) string
}

func static(s string) func(ruleInput) string {
	return func(ruleInput) string { return s }
}

func evalRules(rules []textRule, in ruleInput, fallback string) string {
	for _, r := range rules {
		if r.when(in) {
			return r.text(in)
		}
	}
	return fallback
}

var impactRules = []textRule{
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskHighFraud },
		text: static("Potential financial loss and credential exposure if anyone acts on this message."),
	},
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskSuspicious },
		text: static("Possible phishing attempt; engaging could expose sensitive business information."),
	},
	{
		when: func(in ruleInput) bool { return in.sig.Complaint },
		text: static("Unresolved complaint risks customer churn and negative word of mouth."),
	},
	{
		when: func(in ruleInput) bool { return in.sig.Sales },
		text: static("Active sales opportunity; a slow response risks losing the lead to a competitor."),
	},
}

var actionRules = []textRule{
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskHighFraud },
		text: static("Do not respond. Report the message to your security team and block the sender."),
	},
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskSuspicious },
		text: static("Verify the sender through a known channel before responding; do not click any links."),
	},
	{
		when: func(in ruleInput) bool { return in.sig.Complaint },
		text: static("Respond within 24 hours with an apology and a concrete remediation plan."),
	},
	{
		when: func(in ruleInput) bool { return in.sig.Sales },
		text: static("Respond promptly with pricing details and propose a meeting."),
	},
}

var insightRules = []textRule{
	{
		when: func(in ruleInput) bool { return in.sig.Sales },
		text: func(in ruleInput) string {
			return fmt.Sprintf("Sales inquiry scored %d/10 on buying signals; track conversion against response time.", in.score)
		},
	},
	{
		when: func(in ruleInput) bool { return in.sig.Complaint },
		text: static("Customer satisfaction issue; watch for recurring product or service themes."),
	},
	{
		when: func(in ruleInput) bool { return in.sig.Fraud },
		text: static("Fraud attempt targeting the business; consider tightening inbound filtering."),
	},
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskSuspicious },
		text: static("Potentially risky contact; monitor for repeated attempts from this sender."),
	},
}

const (
	impactDefault  = "Routine correspondence with minimal business risk."
	actionDefault  = "Reply at your normal cadence; no special handling required."
	insightDefault = "Routine business correspondence; no notable trend signals."
)

const salesReplyTemplate = `Hi [Name],

Thank you for your interest in [Product/Service]. I'd be happy to walk you
through pricing and set up a demo.

Would [Day/Time] work for a quick call?

Best regards,
[Your Name]`

const complaintReplyTemplate = `Hi [Name],

I'm sorry to hear about your experience — that is not the standard we hold
ourselves to, and I'd like to make it right.

[Proposed remediation: refund / replacement / follow-up call]

Thank you for your patience,
[Your Name]`

const genericReplyTemplate = `Hi [Name],

Thanks for reaching out. We've received your message and will get back to
you within [Timeframe].

Best regards,
[Your Name]`

var replyRules = []textRule{
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskSafe && in.sig.Sales },
		text: static(salesReplyTemplate),
	},
	{
		when: func(in ruleInput) bool { return in.sig.Complaint },
		text: static(complaintReplyTemplate),
	},
	{
		when: func(in ruleInput) bool { return in.risk == models.RiskSafe },
		text: static(genericReplyTemplate),
	},
}

// Analyze classifies a business message using lexical pattern matching.
// It is a pure function of message: senderInfo and contextInfo are accepted
// for signature symmetry with model-backed analyzers but do not affect
// scoring. Every input, including the empty string, produces a complete
// result.
func Analyze(message, senderInfo, contextInfo string) models.AnalysisResult {
	_ = senderInfo
	_ = contextInfo

	sig := DetectSignals(message)
	risk, reason := classifyRisk(sig)
	score := leadScore(message, sig, risk)

	in := ruleInput{risk: risk, sig: sig, score: score}
	return models.AnalysisResult{
		RiskLevel:         risk,
		Reason:            reason,
		BusinessImpact:    evalRules(impactRules, in, impactDefault),
		RecommendedAction: evalRules(actionRules, in, actionDefault),
		SuggestedReply:    evalRules(replyRules, in, ""),
		LeadQualityScore:  score,
		BusinessInsight:   evalRules(insightRules, in, insightDefault),
	}
}

// classifyRisk applies the risk ladder in strict order, first match wins.
func classifyRisk(sig Signals) (models.RiskLevel, string) {
	switch {
	case (sig.Fraud || (sig.Urgency && sig.InfoRequest)) && sig.URL:
		return models.RiskHighFraud,
			"Message combines known fraud language or credential harvesting with an embedded link."
	case sig.Urgency || sig.InfoRequest || (sig.URL && sig.Fraud):
		return models.RiskSuspicious,
			"Message applies urgency pressure or requests sensitive information."
	default:
		return models.RiskSafe,
			"No fraud, urgency, or sensitive-data patterns detected."
	}
}

// leadScore rates sales-inquiry strength. Non-zero only for safe sales
// messages: base 5, plus bonuses for budget, timeline, and meeting
// signals and for longer, more detailed messages. Capped at 10.
func leadScore(message string, sig Signals, risk models.RiskLevel) int {
	if !sig.Sales || risk != models.RiskSafe {
		return 0
	}
	text := strings.ToLower(message)
	score := 5
	if strings.Contains(text, "budget") {
		score += 2
	}
	if strings.Contains(text, "timeline") || strings.Contains(text, "when") {
		score++
	}
	if strings.Contains(text, "demo") || strings.Contains(text, "meeting") {
		score++
	}
	if len(message) > 200 {
		score++
	}
	return models.ClampLeadScore(score)
}
