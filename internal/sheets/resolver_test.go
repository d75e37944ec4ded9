package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/moneytrail/internal/model"
)

func TestNormalizeColumnName(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Account No./ (Wallet /PG/PA) Id", model.FieldAccount},
		{"Account No", model.FieldAccount},
		{"Sender Account", model.FieldAccount},
		{"A/C No", model.FieldAccount},
		{"Amount", model.FieldAmount},
		{"Disputed Amount", model.FieldAmount},
		{"Transaction Date", model.FieldDate},
		{"Transaction Id / UTR Number", model.FieldReference},
		{"Transaction ID / UTR Number2", model.FieldReference},
		{"ＵＴＲ", model.FieldReference},
		{"Bank/FIs", model.FieldBank},
		{"Ifsc Code", model.FieldIFSC},
		{"Layer", model.FieldLayer},
		{"Remitter", model.FieldFromAccount},
		{"Beneficiary", model.FieldToAccount},
		{"ATM ID", model.FieldTerminalID},
		{"Remarks", "remarks"},
		{"  Status  ", "status"},
		{"Put On Hold?", "put_on_hold_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeColumnName(tt.header), "NormalizeColumnName(%q)", tt.header)
	}
}

func TestClassifySheet(t *testing.T) {
	tests := []struct {
		name string
		want model.Category
	}{
		{"Money Transfer to", model.CategoryTransfer},
		{"Fund Transfer", model.CategoryTransfer},
		{"Withdrawal through ATM", model.CategoryATM},
		{"Withdrawal through POS", model.CategoryPOS},
		{"Cash Withdrawal through Cheque", model.CategoryCheque},
		{"AEPS", model.CategoryAEPS},
		{"Aadhaar pay", model.CategoryAEPS},
		{"Micro ATM", model.CategoryATM},
		{"Transaction put on hold", model.CategoryHold},
		{"Lien marked", model.CategoryHold},
		{"Others less than 500", model.CategoryOther},
		{"Misc", model.CategoryOther},
		{"Summary", model.CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySheet(tt.name), "ClassifySheet(%q)", tt.name)
	}
}
