package degiro

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CashKind classifies a cash-ledger row by its free-text description.
type CashKind int

const (
	KindOther CashKind = iota
	KindDeposit
	KindFee
	KindDividend
	KindDividendTax
)

func (k CashKind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindFee:
		return "fee"
	case KindDividend:
		return "dividend"
	case KindDividendTax:
		return "dividend-tax"
	default:
		return "other"
	}
}

// CashEvent is one row of the broker's cash account report.
type CashEvent struct {
	Date        Date
	Description string
	Product     string
	Amount      decimal.Decimal // signed, column 8 of the report
	Currency    string          // currency of the balance ("Saldo") column
}

// Classify tags the event based on its free-text description.
//
// The rules mirror the broker's wording: the fee rule wins, then the
// configured deposit descriptions, then the two exact dividend descriptions.
// A row matching nothing is Other and is ignored by the reconciliation fold.
func (e CashEvent) Classify(cfg Config) CashKind {
	if strings.Contains(strings.ToLower(e.Description), "transactiekosten") {
		return KindFee
	}
	for _, deposit := range cfg.DepositDescriptions {
		if strings.Contains(e.Description, deposit) {
			return KindDeposit
		}
	}
	switch e.Description {
	case "Dividend":
		return KindDividend
	case "Dividendbelasting":
		return KindDividendTax
	}
	return KindOther
}
