package degiro

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MonthKey identifies a calendar month bucket.
type MonthKey struct {
	Year  int
	Month string // Dutch month name
}

func monthKey(d Date) MonthKey { return MonthKey{Year: d.Year(), Month: d.MonthName()} }

// TradeMonth is one month of buy/sell aggregates.
type TradeMonth struct {
	MonthKey
	Buy  decimal.Decimal
	Sell decimal.Decimal
	Net  decimal.Decimal // Buy - Sell
}

// AggregateTrades buckets the trade ledger into true calendar months, one
// bucket per month from the earliest trade to 'until' (exclusive) even when
// no trade happened, so downstream charts get one bar per month with no gaps.
func AggregateTrades(trades []TradeEvent, until Date) []TradeMonth {
	totals := make(map[MonthKey]*TradeMonth)
	var earliest Date
	for _, t := range trades {
		if earliest.IsZero() || t.Date.Before(earliest) {
			earliest = t.Date
		}
		key := monthKey(t.Date)
		bucket := totals[key]
		if bucket == nil {
			bucket = &TradeMonth{MonthKey: key}
			totals[key] = bucket
		}
		if t.IsBuy() {
			bucket.Buy = bucket.Buy.Add(t.Value.Abs())
		} else {
			bucket.Sell = bucket.Sell.Add(t.Value.Abs())
		}
	}
	if earliest.IsZero() {
		return nil
	}

	var months []TradeMonth
	seen := make(map[MonthKey]bool)
	for d := earliest; d.Before(until); d = d.Add(1) {
		key := monthKey(d)
		if seen[key] {
			continue
		}
		seen[key] = true
		if bucket, ok := totals[key]; ok {
			bucket.Net = bucket.Buy.Sub(bucket.Sell)
			months = append(months, *bucket)
		} else {
			months = append(months, TradeMonth{MonthKey: key})
		}
	}
	return months
}

// DividendMonth is one month of dividend payments: the net EUR amount per
// product plus the withholding tax converted at each dividend's own rate.
type DividendMonth struct {
	MonthKey
	Total    bool // the terminal grand-total bucket
	Payments map[string]decimal.Decimal
	Tax      decimal.Decimal
}

// AggregateDividends buckets resolved dividends into calendar months,
// starting from the month of the earliest dividend. Months without dividends
// are omitted: unlike the trade table, the dividend table is sparse by
// design. A terminal "Totaal" bucket carries the cumulative per-product sums
// and the grand-total withholding tax.
func AggregateDividends(records []DividendRecord, until Date) []DividendMonth {
	if len(records) == 0 {
		return nil
	}

	cumulative := make(map[string]decimal.Decimal)
	var taxTotal decimal.Decimal
	var months []DividendMonth

	for d := earliestDividend(records).LastOfMonth(); d.Before(until); d = d.FirstOfNextMonth() {
		month := DividendMonth{MonthKey: monthKey(d)}
		for _, r := range records {
			if !r.Date.SameMonth(d) {
				continue
			}
			if month.Payments == nil {
				month.Payments = make(map[string]decimal.Decimal)
			}
			month.Payments[r.Product] = month.Payments[r.Product].Add(r.AmountEUR)
			month.Tax = month.Tax.Add(r.TaxEUR())
			cumulative[r.Product] = cumulative[r.Product].Add(r.AmountEUR)
			taxTotal = taxTotal.Add(r.TaxEUR())
		}
		if month.Payments != nil {
			months = append(months, month)
		}
	}

	return append(months, DividendMonth{
		Total:    true,
		Payments: cumulative,
		Tax:      taxTotal,
	})
}

// DividendTotals returns the dense month-by-month running totals per product,
// one row per month from the first dividend to 'until' (exclusive), as
// persisted in the dividend totals report.
func DividendTotals(records []DividendRecord, until Date) []DividendMonth {
	if len(records) == 0 {
		return nil
	}

	cumulative := make(map[string]decimal.Decimal)
	var months []DividendMonth

	for d := earliestDividend(records).LastOfMonth(); d.Before(until); d = d.FirstOfNextMonth() {
		for _, r := range records {
			if r.Date.SameMonth(d) {
				cumulative[r.Product] = cumulative[r.Product].Add(r.AmountEUR)
			}
		}
		month := DividendMonth{MonthKey: monthKey(d), Payments: make(map[string]decimal.Decimal, len(cumulative))}
		for product, sum := range cumulative {
			month.Payments[product] = sum
		}
		months = append(months, month)
	}
	return months
}

func earliestDividend(records []DividendRecord) Date {
	earliest := records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(earliest) {
			earliest = r.Date
		}
	}
	return earliest
}

// PaymentColumns returns the product columns of a dividend table in order of
// first appearance, months walked chronologically.
func PaymentColumns(months []DividendMonth) []string {
	var columns []string
	for _, m := range months {
		products := make([]string, 0, len(m.Payments))
		for product := range m.Payments {
			products = append(products, product)
		}
		slices.Sort(products)
		for _, product := range products {
			if !slices.Contains(columns, product) {
				columns = append(columns, product)
			}
		}
	}
	return columns
}
