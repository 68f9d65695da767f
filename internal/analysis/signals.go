// Package analysis implements the deterministic message analyzer and the
// model-response parser. Both are pure functions with no shared state and
// are safe for concurrent use.
package analysis

import (
	"regexp"
	"strings"
)

var reURL = regexp.MustCompile(`(?i)https?://`)

// Keyword sets tested case-insensitively against the message body.
var (
	fraudTerms = []string{
		"urgent", "wire", "bank account", "password", "verify",
		"suspended", "click here", "act now", "limited time",
	}
	salesTerms = []string{
		"interested", "quote", "pricing", "demo", "meeting",
		"budget", "looking for", "need",
	}
	complaintTerms = []string{
		"disappointed", "unhappy", "refund", "complaint",
		"terrible", "awful", "never again",
	}
	urgencyTerms = []string{
		"urgent", "immediately", "asap", "right now", "act now",
	}
	infoRequestTerms = []string{
		"password", "account", "credit card", "ssn", "social security",
	}
)

// Signals are the lexical detection results for a single message.
type Signals struct {
	Fraud       bool
	Sales       bool
	Complaint   bool
	URL         bool
	Urgency     bool
	InfoRequest bool
}

// DetectSignals runs all keyword and pattern tests against the message.
func DetectSignals(message string) Signals {
	text := strings.ToLower(message)
	return Signals{
		Fraud:       containsAny(text, fraudTerms),
		Sales:       containsAny(text, salesTerms),
		Complaint:   containsAny(text, complaintTerms),
		URL:         reURL.MatchString(message),
		Urgency:     containsAny(text, urgencyTerms),
		InfoRequest: containsAny(text, infoRequestTerms),
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
