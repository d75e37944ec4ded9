package extract

import (
	"github.com/rs/zerolog"

	"github.com/cleared-dev/moneytrail/internal/accounts"
	"github.com/cleared-dev/moneytrail/internal/id"
	"github.com/cleared-dev/moneytrail/internal/model"
)

// Result is everything extracted from one set of sheets.
type Result struct {
	Transfers       []*model.MoneyTransfer
	Withdrawals     []*model.Withdrawal
	Others          []*model.OtherTransaction
	References      model.ReferenceIndex
	Columns         ReferenceColumns
	TransferStats   Stats
	WithdrawalStats Stats
}

// Extractor turns processed sheets into typed transaction records.
type Extractor struct {
	log   zerolog.Logger
	newID func() string
}

// NewExtractor creates an Extractor that logs to log.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log, newID: id.NewOpaque}
}

// Extract runs transfer, withdrawal and other-row extraction.
func (e *Extractor) Extract(sheets []model.SheetData) *Result {
	res := &Result{References: model.ReferenceIndex{}}
	res.Transfers, res.References, res.Columns, res.TransferStats = e.Transfers(sheets)
	res.Withdrawals, res.WithdrawalStats = e.Withdrawals(sheets)
	res.Others = e.Others(sheets)

	e.log.Info().
		Int("transfers", len(res.Transfers)).
		Int("withdrawals", len(res.Withdrawals)).
		Int("other_rows", len(res.Others)).
		Int("references", len(res.References)).
		Int("skipped", res.TransferStats.SkippedTotal()+res.WithdrawalStats.SkippedTotal()).
		Msg("extraction complete")
	return res
}

// Transfers extracts transfer records from the first sheet classified as a
// transfer sheet. The reference index covers every row of that sheet,
// including rows later skipped.
func (e *Extractor) Transfers(sheets []model.SheetData) ([]*model.MoneyTransfer, model.ReferenceIndex, ReferenceColumns, Stats) {
	refs := model.ReferenceIndex{}
	var stats Stats

	sheet, ok := model.FirstOfCategory(sheets, model.CategoryTransfer)
	if !ok {
		e.log.Warn().Msg("no transfer sheet found")
		return nil, refs, ReferenceColumns{LinkRule: RuleNone, SentRule: RuleNone}, stats
	}

	cols := DetectReferenceColumns(sheet.OriginalColumns)
	e.logColumns(sheet.Name, cols)

	if cols.Link != "" {
		for _, row := range sheet.Rows {
			if ref := OriginalValue(row, cols.Link); ref != model.NotAvailable {
				refs[ref] = row
			}
		}
	}

	var transfers []*model.MoneyTransfer
	for i, row := range sheet.Rows {
		stats.Rows++
		t, reason := e.transfer(row, cols, refs)
		if t == nil {
			stats.skip(reason)
			e.log.Debug().Str("sheet", sheet.Name).Int("row", i+1).Str("reason", string(reason)).Msg("skipping transfer row")
			continue
		}
		stats.Extracted++
		transfers = append(transfers, t)
	}
	return transfers, refs, cols, stats
}

func (e *Extractor) transfer(row model.Row, cols ReferenceColumns, refs model.ReferenceIndex) (*model.MoneyTransfer, SkipReason) {
	layer, ok := row.Layer()
	if !ok || layer < 1 {
		layer = 1
	}

	from := accounts.Normalize(fieldOr(row, model.FieldFromAccount, HeaderSourceAccount))
	if from == "" {
		return nil, SkipMissingFromAccount
	}
	to := accounts.Normalize(fieldOr(row, model.FieldToAccount, HeaderAccountNo))
	if to == "" {
		return nil, SkipMissingToAccount
	}
	amount := row.Amount()
	if !amount.IsPositive() {
		return nil, SkipNonPositiveAmount
	}

	sent, link := model.NotAvailable, model.NotAvailable
	if cols.Sent != "" {
		sent = OriginalValue(row, cols.Sent)
	}
	if cols.Link != "" {
		link = OriginalValue(row, cols.Link)
	}

	verified := false
	if next, ok := refs.Lookup(sent); ok {
		verified = fieldOr(next, model.FieldFromAccount, HeaderSourceAccount) == to
	}

	return &model.MoneyTransfer{
		BaseTransaction: model.BaseTransaction{
			ID:        e.newID(),
			Account:   from,
			Amount:    amount,
			Date:      row.Text(model.FieldDate),
			Reference: sent,
			Bank:      fieldOr(row, model.FieldBank, HeaderBank),
			IFSC:      fieldOr(row, model.FieldIFSC, HeaderIFSC),
			Category:  model.CategoryTransfer,
			RawData:   row,
		},
		FromAccount:       from,
		ToAccount:         to,
		Layer:             layer,
		ReferenceSent:     sent,
		ReferenceReceived: link,
		LinkageVerified:   verified,
	}, ""
}

func (e *Extractor) logColumns(sheet string, cols ReferenceColumns) {
	if cols.Ambiguous() {
		e.log.Warn().Str("sheet", sheet).Strs("candidates", cols.Candidates).Msg("ambiguous reference columns")
	}
	if cols.UsedFallback() {
		e.log.Info().
			Str("sheet", sheet).
			Str("link", cols.Link).Str("link_rule", string(cols.LinkRule)).
			Str("sent", cols.Sent).Str("sent_rule", string(cols.SentRule)).
			Msg("reference columns resolved by fallback")
	}
}

// Withdrawals extracts withdrawal records from the first sheet of each
// withdrawal category, in atm, pos, cheque order.
func (e *Extractor) Withdrawals(sheets []model.SheetData) ([]*model.Withdrawal, Stats) {
	var (
		out   []*model.Withdrawal
		total Stats
	)
	for _, category := range model.WithdrawalCategories {
		sheet, ok := model.FirstOfCategory(sheets, category)
		if !ok {
			continue
		}
		var stats Stats
		for i, row := range sheet.Rows {
			stats.Rows++
			w, reason := e.withdrawal(row, category)
			if w == nil {
				stats.skip(reason)
				e.log.Debug().Str("sheet", sheet.Name).Int("row", i+1).Str("reason", string(reason)).Msg("skipping withdrawal row")
				continue
			}
			stats.Extracted++
			out = append(out, w)
		}
		e.log.Debug().Str("sheet", sheet.Name).Str("category", string(category)).Int("extracted", stats.Extracted).Msg("withdrawal sheet processed")
		total.add(stats)
	}
	return out, total
}

func (e *Extractor) withdrawal(row model.Row, category model.Category) (*model.Withdrawal, SkipReason) {
	account := accounts.Normalize(fieldOr(row, model.FieldAccount, withdrawalAccountHeaders...))
	if account == "" {
		return nil, SkipMissingAccount
	}
	amount := row.Amount()
	if !amount.IsPositive() {
		return nil, SkipNonPositiveAmount
	}

	return &model.Withdrawal{
		BaseTransaction: model.BaseTransaction{
			ID:        e.newID(),
			Account:   account,
			Amount:    amount,
			Date:      row.Text(model.FieldDate),
			Reference: fieldOr(row, model.FieldReference, withdrawalReferenceHeaders...),
			Bank:      fieldOr(row, model.FieldBank),
			IFSC:      fieldOr(row, model.FieldIFSC),
			Category:  category,
			RawData:   row,
		},
		TerminalID: fieldOr(row, model.FieldTerminalID, HeaderATMID),
	}, ""
}

// Others returns every row of the aeps, hold and other sheets so search can
// surface them. No row is skipped.
func (e *Extractor) Others(sheets []model.SheetData) []*model.OtherTransaction {
	var out []*model.OtherTransaction
	for _, sheet := range sheets {
		if !sheet.Category.IsOther() {
			continue
		}
		for _, row := range sheet.Rows {
			account := accounts.Normalize(fieldOr(row, model.FieldAccount))
			if account == "" {
				account = accounts.Normalize(fieldOr(row, model.FieldFromAccount))
			}
			out = append(out, &model.OtherTransaction{
				BaseTransaction: model.BaseTransaction{
					ID:        e.newID(),
					Account:   account,
					Amount:    row.Amount().Abs(),
					Date:      row.Text(model.FieldDate),
					Reference: fieldOr(row, model.FieldReference),
					Bank:      fieldOr(row, model.FieldBank),
					IFSC:      fieldOr(row, model.FieldIFSC),
					Category:  sheet.Category,
					RawData:   row,
				},
				Sheet: sheet.Name,
			})
		}
	}
	return out
}
