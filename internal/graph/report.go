package graph

import "fmt"

// IssueCode classifies a withdrawal that was dropped or linked loosely.
type IssueCode string

const (
	IssueInvalidAccount     IssueCode = "invalid_account"
	IssueAccountNotInGraph  IssueCode = "account_not_in_graph"
	IssueLayerOutOfWindow   IssueCode = "layer_out_of_window"
	IssueLayerMismatch      IssueCode = "layer_mismatch"
	IssueReferenceUnmatched IssueCode = "reference_unmatched"
)

// Dropped reports whether the issue kept the withdrawal out of the graph.
func (c IssueCode) Dropped() bool {
	switch c {
	case IssueInvalidAccount, IssueAccountNotInGraph, IssueLayerOutOfWindow:
		return true
	}
	return false
}

// Issue is one diagnostic raised while matching a withdrawal.
type Issue struct {
	Code         IssueCode `json:"code"`
	WithdrawalID string    `json:"withdrawalId"`
	Account      string    `json:"account"`
	Reference    string    `json:"reference,omitempty"`
	Layer        int       `json:"layer,omitempty"`
	Detail       string    `json:"detail,omitempty"`
}

func (i Issue) String() string {
	s := fmt.Sprintf("%s: withdrawal %s account %q", i.Code, i.WithdrawalID, i.Account)
	if i.Detail != "" {
		s += " (" + i.Detail + ")"
	}
	return s
}

// Report summarizes one build.
type Report struct {
	TransfersConsidered int `json:"transfersConsidered"`

	// TransfersFiltered fell outside the layer or amount window.
	TransfersFiltered int `json:"transfersFiltered"`

	// TransfersInvalid had an empty canonical account on either side.
	TransfersInvalid int `json:"transfersInvalid"`

	// FlowsLeavingWindow had a target layer beyond MaxLayer: the outflow is
	// counted on the source but no edge is drawn.
	FlowsLeavingWindow int `json:"flowsLeavingWindow"`

	NodesMerged        int     `json:"nodesMerged"`
	WithdrawalsLinked  int     `json:"withdrawalsLinked"`
	WithdrawalsDropped int     `json:"withdrawalsDropped"`
	ReferencesMatched  int     `json:"referencesMatched"`
	Issues             []Issue `json:"issues,omitempty"`
}

func (r *Report) addIssue(issue Issue) {
	r.Issues = append(r.Issues, issue)
	if issue.Code.Dropped() {
		r.WithdrawalsDropped++
	}
}

// IssueCount returns the number of issues with the given code.
func (r *Report) IssueCount(code IssueCode) int {
	n := 0
	for _, i := range r.Issues {
		if i.Code == code {
			n++
		}
	}
	return n
}
