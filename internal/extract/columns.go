package extract

import "strings"

// Reference column headers used by the standard transfer export.
const (
	SentReferenceHeader = "Transaction ID / UTR Number2"
	LinkReferenceHeader = "Transaction Id / UTR Number"
)

// Rule names the detection rule that resolved a reference column.
type Rule string

const (
	RuleNone           Rule = "none"
	RuleExact          Rule = "exact"
	RuleDigitFallback  Rule = "digit_fallback"
	RuleFirstCandidate Rule = "first_candidate"
	RuleReuseLink      Rule = "reuse_link"
)

// ReferenceColumns is the result of reference-column detection on a transfer
// sheet. Link and Sent may be equal, and are "" when unresolved.
type ReferenceColumns struct {
	Link       string   `json:"link"`
	Sent       string   `json:"sent"`
	LinkRule   Rule     `json:"linkRule"`
	SentRule   Rule     `json:"sentRule"`
	Candidates []string `json:"candidates"`
}

// Ambiguous reports whether more than two candidate columns were present.
func (c ReferenceColumns) Ambiguous() bool {
	return len(c.Candidates) > 2
}

// UsedFallback reports whether either slot was resolved by a heuristic.
func (c ReferenceColumns) UsedFallback() bool {
	return c.LinkRule != RuleExact || c.SentRule != RuleExact
}

// DetectReferenceColumns decides which original headers carry the sent and
// the link (received) transaction references.
func DetectReferenceColumns(originalColumns []string) ReferenceColumns {
	cols := ReferenceColumns{LinkRule: RuleNone, SentRule: RuleNone}

	for _, h := range originalColumns {
		upper := strings.ToUpper(h)
		if strings.Contains(upper, "UTR") || strings.Contains(upper, "TRANSACTION ID") {
			cols.Candidates = append(cols.Candidates, h)
		}
	}

	for _, h := range originalColumns {
		switch h {
		case SentReferenceHeader:
			if cols.Sent == "" {
				cols.Sent, cols.SentRule = h, RuleExact
			}
		case LinkReferenceHeader:
			if cols.Link == "" {
				cols.Link, cols.LinkRule = h, RuleExact
			}
		}
	}

	if cols.Sent == "" {
		for _, h := range cols.Candidates {
			if strings.Contains(h, "2") {
				cols.Sent, cols.SentRule = h, RuleDigitFallback
				break
			}
		}
	}

	if cols.Link == "" && len(cols.Candidates) > 0 {
		cols.Link, cols.LinkRule = cols.Candidates[0], RuleFirstCandidate
	}

	if cols.Sent == "" && cols.Link != "" {
		cols.Sent, cols.SentRule = cols.Link, RuleReuseLink
	}

	return cols
}
