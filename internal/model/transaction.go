package model

import (
	"github.com/shopspring/decimal"
)

// Transaction is anything that contributes to a graph node.
type Transaction interface {
	Base() *BaseTransaction
}

// BaseTransaction holds the fields shared by every extracted record.
type BaseTransaction struct {
	ID        string          `json:"id"`
	Account   string          `json:"account"`
	Amount    decimal.Decimal `json:"amount"` // never negative
	Date      string          `json:"date"`
	Reference string          `json:"reference"`
	Bank      string          `json:"bank,omitempty"`
	IFSC      string          `json:"ifsc,omitempty"`
	Category  Category        `json:"category"`
	RawData   Row             `json:"-"`
}

// Base returns the shared fields.
func (b *BaseTransaction) Base() *BaseTransaction { return b }

// MoneyTransfer is one row of the transfer sheet.
type MoneyTransfer struct {
	BaseTransaction
	FromAccount       string `json:"fromAccount"`
	ToAccount         string `json:"toAccount"`
	Layer             int    `json:"layer"`
	ReferenceSent     string `json:"referenceSent"`
	ReferenceReceived string `json:"referenceReceived"`
	LinkageVerified   bool   `json:"linkageVerified"`
}

// Withdrawal is a terminal cash-out event (ATM, POS or cheque).
type Withdrawal struct {
	BaseTransaction
	LinkedLayer     int    `json:"linkedLayer,omitempty"` // 0 until linked by the graph builder
	LinkedReference string `json:"linkedReference,omitempty"`
	TerminalID      string `json:"terminalId,omitempty"`
}

// Linked reports whether the last graph build attached w to a funding account.
func (w *Withdrawal) Linked() bool { return w.LinkedLayer > 0 }

// OtherTransaction is a row from an aeps, hold or other sheet surfaced by search.
type OtherTransaction struct {
	BaseTransaction
	Sheet string `json:"sheet"`
}
