package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/moneytrail/internal/model"
)

// CSV headers, one per record kind.
const (
	TransferHeader   = "id,layer,from_account,to_account,amount,date,reference_sent,reference_received,linkage_verified,bank,ifsc"
	WithdrawalHeader = "id,category,account,amount,date,reference,terminal_id,linked_layer,linked_reference,bank,ifsc"
	NodeHeader       = "id,kind,account,layer,withdrawal_category,total_inflow,total_outflow,transactions,bank,ifsc,reference_sent,reference_received,linkage_verified"
	EdgeHeader       = "id,kind,source,target,amount,reference,date,linkage_verified,reference_matched,bank,ifsc"
)

// MarshalTransfer converts a transfer to a CSV row.
func MarshalTransfer(t *model.MoneyTransfer) []string {
	return []string{
		t.ID,
		strconv.Itoa(t.Layer),
		t.FromAccount,
		t.ToAccount,
		t.Amount.StringFixed(2),
		t.Date,
		t.ReferenceSent,
		t.ReferenceReceived,
		strconv.FormatBool(t.LinkageVerified),
		t.Bank,
		t.IFSC,
	}
}

// MarshalWithdrawal converts a withdrawal to a CSV row. Link columns are
// blank until a build has linked the withdrawal.
func MarshalWithdrawal(w *model.Withdrawal) []string {
	linkedLayer := ""
	if w.Linked() {
		linkedLayer = strconv.Itoa(w.LinkedLayer)
	}
	return []string{
		w.ID,
		string(w.Category),
		w.Account,
		w.Amount.StringFixed(2),
		w.Date,
		w.Reference,
		w.TerminalID,
		linkedLayer,
		w.LinkedReference,
		w.Bank,
		w.IFSC,
	}
}

// MarshalNode converts a graph node to a CSV row.
func MarshalNode(n *model.GraphNode) []string {
	return []string{
		n.ID,
		string(n.Kind),
		n.Account,
		strconv.Itoa(n.Layer),
		string(n.WithdrawalCategory),
		n.TotalInflow.StringFixed(2),
		n.TotalOutflow.StringFixed(2),
		strconv.Itoa(len(n.Transactions)),
		n.Bank,
		n.IFSC,
		n.ReferenceSent,
		n.ReferenceReceived,
		strconv.FormatBool(n.LinkageVerified),
	}
}

// MarshalEdge converts a graph edge to a CSV row.
func MarshalEdge(e *model.GraphEdge) []string {
	return []string{
		e.ID,
		string(e.Kind),
		e.Source,
		e.Target,
		e.Amount.StringFixed(2),
		e.Reference,
		e.Date,
		strconv.FormatBool(e.LinkageVerified),
		strconv.FormatBool(e.ReferenceMatched),
		e.Bank,
		e.IFSC,
	}
}

// WriteTransfers writes transfers with a header row.
func WriteTransfers(w io.Writer, transfers []*model.MoneyTransfer) error {
	return writeRows(w, TransferHeader, transfers, MarshalTransfer)
}

// WriteWithdrawals writes withdrawals with a header row.
func WriteWithdrawals(w io.Writer, withdrawals []*model.Withdrawal) error {
	return writeRows(w, WithdrawalHeader, withdrawals, MarshalWithdrawal)
}

// WriteNodes writes graph nodes with a header row.
func WriteNodes(w io.Writer, nodes []*model.GraphNode) error {
	return writeRows(w, NodeHeader, nodes, MarshalNode)
}

// WriteEdges writes graph edges with a header row.
func WriteEdges(w io.Writer, edges []*model.GraphEdge) error {
	return writeRows(w, EdgeHeader, edges, MarshalEdge)
}

func writeRows[T any](w io.Writer, header string, items []T, marshal func(T) []string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, item := range items {
		if err := cw.Write(marshal(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSheet writes a processed sheet using its normalized columns. The
// _orig_ and _raw_ namespaces are not exported.
func WriteSheet(w io.Writer, sheet model.SheetData) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(sheet.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range sheet.Rows {
		rec := make([]string, len(sheet.Columns))
		for j, col := range sheet.Columns {
			rec[j] = row.Text(col)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
