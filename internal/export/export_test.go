package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/moneytrail/internal/model"
	"github.com/cleared-dev/moneytrail/internal/sheets"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteTransfers(t *testing.T) {
	transfers := []*model.MoneyTransfer{
		{
			BaseTransaction:   model.BaseTransaction{ID: "t1", Amount: dec("1500.5"), Date: "2024-01-15", Bank: "HDFC, Main", IFSC: "HDFC0001"},
			FromAccount:       "0011",
			ToAccount:         "0022",
			Layer:             2,
			ReferenceSent:     "S1",
			ReferenceReceived: model.NotAvailable,
			LinkageVerified:   true,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteTransfers(&buf, transfers))

	records := readCSV(t, buf.String())
	require.Len(t, records, 2)
	assert.Equal(t, strings.Split(TransferHeader, ","), records[0])
	assert.Equal(t, []string{"t1", "2", "0011", "0022", "1500.50", "2024-01-15", "S1", "N/A", "true", "HDFC, Main", "HDFC0001"}, records[1])
}

func TestMarshalWithdrawal(t *testing.T) {
	w := &model.Withdrawal{
		BaseTransaction: model.BaseTransaction{ID: "w1", Account: "123", Amount: dec("200"), Category: model.CategoryATM, Reference: "U1"},
		TerminalID:      "T-01",
	}
	row := MarshalWithdrawal(w)
	assert.Equal(t, "", row[7], "unlinked withdrawal has no layer")
	assert.Equal(t, "200.00", row[3])
	assert.Equal(t, "atm", row[1])

	w.LinkedLayer = 3
	w.LinkedReference = "U1"
	row = MarshalWithdrawal(w)
	assert.Equal(t, "3", row[7])
	assert.Equal(t, "U1", row[8])
	assert.Len(t, row, len(strings.Split(WithdrawalHeader, ",")))
}

func TestWriteWithdrawals_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWithdrawals(&buf, nil))
	assert.Equal(t, WithdrawalHeader+"\n", buf.String())
}

func TestWriteNodesAndEdges(t *testing.T) {
	nodes := []*model.GraphNode{
		{ID: "123_1", Account: "0123", Layer: 1, Kind: model.NodeAccount, TotalInflow: decimal.Zero, TotalOutflow: dec("120"), Transactions: make([]model.Transaction, 2)},
		{ID: "ATM_123_w1", Account: "123", Layer: 1, Kind: model.NodeWithdrawal, WithdrawalCategory: model.CategoryATM, TotalInflow: dec("10"), TotalOutflow: decimal.Zero},
	}
	edges := []*model.GraphEdge{
		{ID: "e0001", Kind: model.EdgeWithdrawal, Source: "123_1", Target: "ATM_123_w1", Amount: dec("10"), ReferenceMatched: true},
	}

	var nb, eb bytes.Buffer
	require.NoError(t, WriteNodes(&nb, nodes))
	require.NoError(t, WriteEdges(&eb, edges))

	nrec := readCSV(t, nb.String())
	require.Len(t, nrec, 3)
	assert.Equal(t, []string{"123_1", "account", "0123", "1", "", "0.00", "120.00", "2", "", "", "", "", "false"}, nrec[1])
	assert.Equal(t, "atm", nrec[2][4])

	erec := readCSV(t, eb.String())
	require.Len(t, erec, 2)
	assert.Equal(t, []string{"e0001", "withdrawal", "123_1", "ATM_123_w1", "10.00", "", "", "false", "true", "", ""}, erec[1])
}

func TestWriteSheet(t *testing.T) {
	sheet := sheets.BuildSheet("Money Transfer", []string{"Account No", "Amount", "Remarks"}, []sheets.Record{
		{"Account No": "0042", "Amount": "₹1,200", "Remarks": "first"},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSheet(&buf, sheet))

	records := readCSV(t, buf.String())
	require.Len(t, records, 2)
	assert.Equal(t, []string{"account", "amount", "remarks"}, records[0])
	assert.Equal(t, []string{"0042", "1200", "first"}, records[1])
}
