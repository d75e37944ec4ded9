package search

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/moneytrail/internal/model"
)

func transfer(from, to string, amount int64, layer int) *model.MoneyTransfer {
	return &model.MoneyTransfer{
		BaseTransaction:   model.BaseTransaction{ID: from + to, Account: from, Amount: decimal.NewFromInt(amount)},
		FromAccount:       from,
		ToAccount:         to,
		Layer:             layer,
		ReferenceSent:     model.NotAvailable,
		ReferenceReceived: model.NotAvailable,
	}
}

func fixtures() ([]*model.MoneyTransfer, []*model.Withdrawal, []*model.OtherTransaction) {
	transfers := []*model.MoneyTransfer{
		transfer("ACC100", "0042ab", 100, 1),
		transfer("0042AB", "ZZ9", 60, 2),
		transfer("X1", "Y1", 5, 1),
	}
	withdrawals := []*model.Withdrawal{
		{BaseTransaction: model.BaseTransaction{ID: "w1", Account: "42AB", Amount: decimal.NewFromInt(20), Category: model.CategoryATM}, LinkedLayer: 3},
		{BaseTransaction: model.BaseTransaction{ID: "w2", Account: "777", Amount: decimal.NewFromInt(9), Category: model.CategoryPOS}},
	}
	others := []*model.OtherTransaction{
		{BaseTransaction: model.BaseTransaction{ID: "o1", Account: "", Category: model.CategoryHold, RawData: model.Row{model.FieldFromAccount: "0042ab"}}, Sheet: "Hold"},
		{BaseTransaction: model.BaseTransaction{ID: "o2", Account: "555", Category: model.CategoryAEPS}, Sheet: "AEPS"},
	}
	return transfers, withdrawals, others
}

func TestSearchAccount(t *testing.T) {
	transfers, withdrawals, others := fixtures()

	res := SearchAccount(" 42ab ", transfers, withdrawals, others)

	assert.Equal(t, "42ab", res.Query)
	require.Len(t, res.Incoming, 1)
	assert.Equal(t, "0042ab", res.Incoming[0].ToAccount)
	require.Len(t, res.Outgoing, 1)
	assert.Equal(t, "0042AB", res.Outgoing[0].FromAccount)
	require.Len(t, res.Withdrawals, 1)
	assert.Equal(t, "w1", res.Withdrawals[0].ID)
	require.Len(t, res.Other, 1)
	assert.Equal(t, "o1", res.Other[0].ID)
	assert.False(t, res.Empty())
}

func TestSearchAccount_BlankQuery(t *testing.T) {
	transfers, withdrawals, others := fixtures()

	res := SearchAccount("   ", transfers, withdrawals, others)

	assert.True(t, res.Empty())
}

func TestSearchAccount_NoMatch(t *testing.T) {
	transfers, withdrawals, others := fixtures()

	assert.True(t, SearchAccount("nope", transfers, withdrawals, others).Empty())
}

func TestSummarize(t *testing.T) {
	transfers, withdrawals, others := fixtures()

	trail := Summarize(SearchAccount("42ab", transfers, withdrawals, others))

	assert.Equal(t, "42ab", trail.Account)
	assert.True(t, decimal.NewFromInt(100).Equal(trail.TotalInflow))
	assert.True(t, decimal.NewFromInt(60).Equal(trail.TotalOutflow))
	assert.True(t, decimal.NewFromInt(20).Equal(trail.TotalWithdrawals))
	assert.Equal(t, []int{2, 3}, trail.LayersInvolved)
	assert.Equal(t, 4, trail.TransactionCount)
}

func TestSummarize_Empty(t *testing.T) {
	trail := Summarize(Results{Query: "x"})

	assert.Empty(t, trail.LayersInvolved)
	assert.True(t, trail.TotalInflow.IsZero())
	assert.Zero(t, trail.TransactionCount)
}

func graphFixture() *model.Graph {
	t1 := transfer("A1", "00123", 100, 1)
	t1.ReferenceSent = "UTR-SENT"
	t1.ReferenceReceived = "UTR-RECV"
	w := &model.Withdrawal{BaseTransaction: model.BaseTransaction{ID: "w1", Account: "123", Reference: "ATM-REF"}}

	return &model.Graph{
		Nodes: []*model.GraphNode{
			{ID: "A1_1", Account: "A1", Layer: 1, Kind: model.NodeAccount, Transactions: []model.Transaction{t1}},
			{ID: "123_2", Account: "00123", Layer: 2, Kind: model.NodeAccount, Transactions: []model.Transaction{t1}},
			{ID: "ATM_123_w1", Account: "123", Layer: 2, Kind: model.NodeWithdrawal, Transactions: []model.Transaction{w}},
			{ID: "Q9_1", Account: "Q9", Layer: 1, Kind: model.NodeAccount, ReferenceReceived: model.NotAvailable},
		},
		Edges: []*model.GraphEdge{
			{ID: "e1", Source: "A1_1", Target: "123_2", Reference: "UTR-SENT", Kind: model.EdgeTransfer},
			{ID: "e2", Source: "123_2", Target: "ATM_123_w1", Reference: "EDGE-ONLY", Kind: model.EdgeWithdrawal},
		},
	}
}

func TestGraphSearch(t *testing.T) {
	g := graphFixture()

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{"canonical account", "0000123", "123_2", true},
		{"case-insensitive substring", "a", "A1_1", true},
		{"transaction reference", "utr-recv", "A1_1", true},
		{"withdrawal reference", "ATM-REF", "ATM_123_w1", true},
		{"edge reference", "EDGE-ONLY", "ATM_123_w1", true},
		{"blank", "  ", "", false},
		{"placeholder", "N/A", "", false},
		{"no match", "zzz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GraphSearch(tt.query, g)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGraphSearch_NilGraph(t *testing.T) {
	_, ok := GraphSearch("123", nil)
	assert.False(t, ok)
}
