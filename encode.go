package degiro

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Encoders for the generated report artifacts. All artifacts share the
// ledgers' interchange dialect: semicolon delimiters, comma decimals,
// DD-MM-YYYY dates, Dutch headers.

// commaFloat formats a float with the given precision and a decimal comma.
func commaFloat(v float64, prec int) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', prec, 64), ".", ",")
}

// commaDecimal formats a decimal with the given precision and a decimal comma.
func commaDecimal(v decimal.Decimal, prec int32) string {
	return strings.ReplaceAll(v.StringFixed(prec), ".", ",")
}

func newArtifactWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return cw
}

// EncodeStats writes the daily statistics series, two decimals per value.
func EncodeStats(w io.Writer, stats *StatsSeries) error {
	cw := newArtifactWriter(w)
	cw.Write([]string{"Datum", "Waarde", "Inleg", "Kosten", "Rendement", "Rendement(%)", "Dagelijks rendement", "Dagelijks rendement(%)"})
	for _, row := range stats.Rows() {
		cw.Write([]string{
			row.Date.String(),
			commaFloat(row.Value, 2),
			commaFloat(row.Deposited, 2),
			commaFloat(row.Costs, 2),
			commaFloat(row.Result, 2),
			commaFloat(row.ResultPct, 2),
			commaFloat(row.DailyResult, 2),
			commaFloat(row.DailyResultPct, 2),
		})
	}
	cw.Flush()
	return cw.Error()
}

// EncodeValueMatrix writes the per-product daily valuation table. Cells for
// days before a product appeared, or after it was sold off, stay empty.
func EncodeValueMatrix(w io.Writer, matrix *ValueMatrix) error {
	cw := newArtifactWriter(w)
	columns := matrix.Columns()
	cw.Write(append([]string{"Datum"}, columns...))
	for _, d := range matrix.Dates() {
		record := make([]string, 0, len(columns)+1)
		record = append(record, d.String())
		for _, product := range columns {
			if v, ok := matrix.Value(d, product); ok && !math.IsNaN(v) {
				record = append(record, commaFloat(v, 2))
			} else {
				record = append(record, "")
			}
		}
		cw.Write(record)
	}
	cw.Flush()
	return cw.Error()
}

// EncodeDividends writes the flat dividend overview, three decimals per value.
func EncodeDividends(w io.Writer, records []DividendRecord) error {
	cw := newArtifactWriter(w)
	cw.Write([]string{"Datum", "Product", "Dividend", "Percentage", "Belasting"})
	for _, r := range records {
		cw.Write([]string{
			r.Date.String(),
			r.Product,
			commaDecimal(r.AmountEUR, 3),
			commaDecimal(r.YieldPct, 3),
			commaDecimal(r.TaxEUR(), 3),
		})
	}
	cw.Flush()
	return cw.Error()
}

// EncodeDividendTotals writes the dense month-by-month running totals per
// product, as produced by DividendTotals.
func EncodeDividendTotals(w io.Writer, months []DividendMonth) error {
	cw := newArtifactWriter(w)
	columns := PaymentColumns(months)
	cw.Write(append([]string{"Jaar", "Maand"}, columns...))
	for _, m := range months {
		record := make([]string, 0, len(columns)+2)
		record = append(record, strconv.Itoa(m.Year), m.Month)
		for _, product := range columns {
			if sum, ok := m.Payments[product]; ok {
				record = append(record, commaDecimal(sum, 3))
			} else {
				record = append(record, "")
			}
		}
		cw.Write(record)
	}
	cw.Flush()
	return cw.Error()
}

// EncodeDividendPayments writes the sparse per-month payment table produced
// by AggregateDividends, its terminal grand-total row labeled "Totaal".
func EncodeDividendPayments(w io.Writer, months []DividendMonth) error {
	cw := newArtifactWriter(w)
	columns := PaymentColumns(months)
	cw.Write(append([]string{"Jaar", "Maand", "Dividendbelasting"}, columns...))
	for _, m := range months {
		record := make([]string, 0, len(columns)+3)
		if m.Total {
			record = append(record, "Totaal", "")
		} else {
			record = append(record, strconv.Itoa(m.Year), m.Month)
		}
		record = append(record, commaDecimal(m.Tax, 3))
		for _, product := range columns {
			if sum, ok := m.Payments[product]; ok {
				record = append(record, commaDecimal(sum, 3))
			} else {
				record = append(record, "")
			}
		}
		cw.Write(record)
	}
	cw.Flush()
	return cw.Error()
}

// EncodeTracked writes the benchmark tracking series, one column per ticker
// in the given order, all series sharing the same date range.
func EncodeTracked(w io.Writer, tickers []string, tracked map[string][]TrackedPoint) error {
	cw := newArtifactWriter(w)
	cw.Write(append([]string{"Datum"}, tickers...))

	var dates []Date
	for _, ticker := range tickers {
		if points := tracked[ticker]; len(points) > 0 {
			for _, p := range points {
				dates = append(dates, p.Date)
			}
			break
		}
	}
	for i, d := range dates {
		record := make([]string, 0, len(tickers)+1)
		record = append(record, d.String())
		for _, ticker := range tickers {
			points := tracked[ticker]
			if i < len(points) {
				record = append(record, commaFloat(points[i].Pct, 2))
			} else {
				record = append(record, "")
			}
		}
		cw.Write(record)
	}
	cw.Flush()
	return cw.Error()
}

// EncodeTradeMonths writes the monthly trade aggregates, two decimals.
func EncodeTradeMonths(w io.Writer, months []TradeMonth) error {
	cw := newArtifactWriter(w)
	cw.Write([]string{"Jaar", "Maand", "Koop", "Verkoop", "Netto"})
	for _, m := range months {
		cw.Write([]string{
			strconv.Itoa(m.Year),
			m.Month,
			commaDecimal(m.Buy, 2),
			commaDecimal(m.Sell, 2),
			commaDecimal(m.Net, 2),
		})
	}
	cw.Flush()
	return cw.Error()
}
