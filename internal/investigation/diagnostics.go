package investigation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/moneytrail/internal/diaglog"
	"github.com/cleared-dev/moneytrail/internal/extract"
	"github.com/cleared-dev/moneytrail/internal/graph"
)

// Diagnostic stages.
const (
	StageExtract = "extract"
	StageBuild   = "build"
)

// Diagnostics lists what the session's extraction and build could not use
// cleanly, stamped with now.
func (s *Session) Diagnostics(now time.Time) []diaglog.Entry {
	if s == nil {
		return nil
	}
	var entries []diaglog.Entry
	add := func(stage, code, subject, detail string) {
		entries = append(entries, diaglog.Entry{
			Timestamp: now,
			Workbook:  s.Path,
			Stage:     stage,
			Code:      code,
			Subject:   subject,
			Detail:    detail,
		})
	}

	ext := s.Extraction
	cols := ext.Columns
	if len(ext.Transfers) > 0 || ext.TransferStats.Rows > 0 {
		if cols.LinkRule != extract.RuleExact {
			add(StageExtract, "link_column_"+string(cols.LinkRule), "transfer", cols.Link)
		}
		if cols.SentRule != extract.RuleExact {
			add(StageExtract, "sent_column_"+string(cols.SentRule), "transfer", cols.Sent)
		}
		if cols.Ambiguous() {
			add(StageExtract, "ambiguous_reference_columns", "transfer", strings.Join(cols.Candidates, "; "))
		}
	}

	for _, st := range []struct {
		kind  string
		stats extract.Stats
	}{
		{"transfer", ext.TransferStats},
		{"withdrawal", ext.WithdrawalStats},
	} {
		reasons := make([]string, 0, len(st.stats.Skipped))
		for r := range st.stats.Skipped {
			reasons = append(reasons, string(r))
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			n := st.stats.Skipped[extract.SkipReason(r)]
			add(StageExtract, "skipped_"+r, st.kind, fmt.Sprintf("%d of %d rows", n, st.stats.Rows))
		}
	}

	if s.Report != nil {
		if s.Report.TransfersInvalid > 0 {
			add(StageBuild, "invalid_transfer_account", "transfer",
				fmt.Sprintf("%d transfers", s.Report.TransfersInvalid))
		}
		for _, issue := range s.Report.Issues {
			add(StageBuild, string(issue.Code), issue.Account, issueDetail(issue))
		}
	}
	return entries
}

// issueDetail describes an issue without the withdrawal's opaque id, so the
// same finding reads the same on every build.
func issueDetail(issue graph.Issue) string {
	d := fmt.Sprintf("reference %q", issue.Reference)
	if issue.Layer > 0 {
		d += fmt.Sprintf(" layer %d", issue.Layer)
	}
	if issue.Detail != "" {
		d += ": " + issue.Detail
	}
	return d
}
