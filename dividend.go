package degiro

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// DividendRecord is a dividend cash event enriched with its resolved exchange
// rate, withholding tax, and yield on the paying position. Records are
// immutable once resolved.
type DividendRecord struct {
	Date         Date
	Product      string
	Amount       decimal.Decimal // gross, in Currency
	Currency     string
	Tax          decimal.Decimal // withheld, same currency as Amount
	Exchange     decimal.Decimal // local currency units per euro
	AmountEUR    decimal.Decimal // net of tax, converted to euro
	ReferenceEUR decimal.Decimal // position value the yield is computed on
	YieldPct     decimal.Decimal
}

// TaxEUR returns the withholding tax converted at the resolved rate.
func (r DividendRecord) TaxEUR() decimal.Decimal { return r.Tax.Div(r.Exchange) }

// ResolveDividends builds one record per dividend cash event in the ledger.
//
// A failed resolution degrades to an approximate placeholder (rate 1, a
// reference of one hundred times the gross amount) and a warning naming the
// product; the pass itself never aborts.
func ResolveDividends(ledger *Ledger, store SnapshotStore, cfg Config) []DividendRecord {
	var records []DividendRecord
	for _, e := range ledger.Dividends() {
		rec := DividendRecord{
			Date:     e.Date,
			Product:  e.Product,
			Amount:   e.Amount,
			Currency: e.Currency,
			Tax:      ledger.DividendTax(e.Product, e.Date),
		}
		if rec.Tax.IsZero() {
			log.Printf("warning: no withholding tax found for the dividend of %q on %s", e.Product, e.Date)
		}

		exchange, reference, err := resolveExchange(store, e.Date, e.Product, e.Currency, cfg.Lookback)
		if err != nil {
			log.Printf("warning: no position found for the dividend of %q on %s: %v", e.Product, e.Date, err)
			exchange, reference = one, e.Amount.Mul(hundred)
		}
		rec.Exchange = exchange
		rec.ReferenceEUR = reference
		rec.AmountEUR = e.Amount.Sub(rec.Tax).Div(exchange)
		if !reference.IsZero() {
			rec.YieldPct = rec.AmountEUR.Div(reference).Mul(hundred)
		}
		records = append(records, rec)
	}
	return records
}

// resolveExchange finds the most recent position report on or before d that
// holds the product, and derives the local/EUR exchange rate from it.
//
// The search walks backward one day at a time, bounded by lookback calendar
// days, so a long gap in the report history fails explicitly instead of
// recursing without end. Days without a report are stepped over; a malformed
// report aborts the search.
func resolveExchange(store SnapshotStore, d Date, product, currency string, lookback int) (exchange, referenceEUR decimal.Decimal, err error) {
	for back := 0; back <= lookback; back++ {
		day := d.Add(-back)
		rows, err := store.Get(day)
		if errors.Is(err, ErrNoSnapshot) {
			continue
		}
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		for _, row := range rows {
			if row.Product == product {
				return exchangeFromRow(row, rows, currency)
			}
		}
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("no position within %d days before %s", lookback, d)
}

// exchangeFromRow derives the exchange rate from the matched position row.
//
// When the row is quoted in another currency than the dividend was paid in,
// the rate is re-derived from the largest same-currency position of that day;
// with no such position the rate falls back to 1 against the local value.
// The reference value for the yield stays the matched row's EUR value.
func exchangeFromRow(row SnapshotRow, rows []SnapshotRow, currency string) (exchange, referenceEUR decimal.Decimal, err error) {
	local, err := row.LocalValue()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if row.ValueEUR.IsZero() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("zero EUR value for %q", row.Product)
	}
	referenceEUR = row.ValueEUR
	exchange = local.Div(referenceEUR)
	if exchange.IsZero() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("zero local value for %q", row.Product)
	}

	if row.LocalCurrency() == currency {
		return exchange, referenceEUR, nil
	}

	var best *SnapshotRow
	for i := range rows {
		if !strings.Contains(rows[i].Local, currency) {
			continue
		}
		if best == nil || rows[i].ValueEUR.GreaterThan(best.ValueEUR) {
			best = &rows[i]
		}
	}
	if best == nil {
		return one, local, nil
	}
	bestLocal, err := best.LocalValue()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if best.ValueEUR.IsZero() || bestLocal.IsZero() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("zero value for %q", best.Product)
	}
	return bestLocal.Div(best.ValueEUR), referenceEUR, nil
}
