package analysis

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/ashwinpai/mailsentry/pkg/models"
)

// Defaults used when a model response omits a field. The parser never
// returns an empty narrative field.
const (
	defaultReason  = "No reason provided"
	defaultImpact  = "No impact assessment provided"
	defaultAction  = "No action recommended"
	defaultInsight = "No insight provided"
)

var reInteger = regexp.MustCompile(`\d+`)

// Parse normalizes free-form model output into an AnalysisResult. It never
// fails: a brace-delimited JSON object is the primary path; malformed or
// absent JSON degrades to a line-oriented label scan, and anything still
// missing is filled with documented defaults.
func Parse(text string) models.AnalysisResult {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var raw struct {
			RiskLevel         string `json:"riskLevel"`
			Reason            string `json:"reason"`
			BusinessImpact    string `json:"businessImpact"`
			RecommendedAction string `json:"recommendedAction"`
			SuggestedReply    string `json:"suggestedReply"`
			LeadQualityScore  int    `json:"leadQualityScore"`
			BusinessInsight   string `json:"businessInsight"`
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err == nil {
			return fillDefaults(models.AnalysisResult{
				RiskLevel:         models.ParseRiskLevel(raw.RiskLevel),
				Reason:            raw.Reason,
				BusinessImpact:    raw.BusinessImpact,
				RecommendedAction: raw.RecommendedAction,
				SuggestedReply:    raw.SuggestedReply,
				LeadQualityScore:  models.ClampLeadScore(raw.LeadQualityScore),
				BusinessInsight:   raw.BusinessInsight,
			})
		} else {
			slog.Debug("model response is not valid JSON, scanning labels", "error", err)
		}
	}

	return fillDefaults(scanLabels(text))
}

// scanLabels extracts fields from prose-formatted responses that use the
// labels the prompt asked for. Lines before the first recognized label are
// preamble and are dropped. Continuation lines append to the active field:
// newline-joined for the reply template, space-joined otherwise.
func scanLabels(text string) models.AnalysisResult {
	var out models.AnalysisResult
	var riskRaw string

	var current *string
	joinWith := " "

	setField := func(target *string, value, sep string) {
		*target = value
		current = target
		joinWith = sep
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "risk level:"):
			setField(&riskRaw, strings.TrimSpace(line[len("risk level:"):]), " ")
		case strings.HasPrefix(lower, "reason:"):
			setField(&out.Reason, strings.TrimSpace(line[len("reason:"):]), " ")
		case strings.HasPrefix(lower, "business impact:"):
			setField(&out.BusinessImpact, strings.TrimSpace(line[len("business impact:"):]), " ")
		case strings.HasPrefix(lower, "recommended action:"):
			setField(&out.RecommendedAction, strings.TrimSpace(line[len("recommended action:"):]), " ")
		case strings.HasPrefix(lower, "business insight:"):
			setField(&out.BusinessInsight, strings.TrimSpace(line[len("business insight:"):]), " ")
		case strings.HasPrefix(lower, "suggested reply"):
			rest := strings.TrimSpace(line[len("suggested reply"):])
			rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			setField(&out.SuggestedReply, rest, "\n")
		case strings.HasPrefix(lower, "lead quality score"):
			if m := reInteger.FindString(line); m != "" {
				n, _ := strconv.Atoi(m)
				out.LeadQualityScore = models.ClampLeadScore(n)
			}
			current = nil
		default:
			if current == nil {
				continue
			}
			if *current == "" {
				*current = line
			} else {
				*current += joinWith + line
			}
		}
	}

	out.RiskLevel = models.ParseRiskLevel(riskRaw)
	return out
}

func fillDefaults(r models.AnalysisResult) models.AnalysisResult {
	if r.RiskLevel == "" {
		r.RiskLevel = models.RiskUnknown
	}
	if r.Reason == "" {
		r.Reason = defaultReason
	}
	if r.BusinessImpact == "" {
		r.BusinessImpact = defaultImpact
	}
	if r.RecommendedAction == "" {
		r.RecommendedAction = defaultAction
	}
	if r.BusinessInsight == "" {
		r.BusinessInsight = defaultInsight
	}
	return r
}
