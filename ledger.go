package degiro

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// cashAmountColumn is the signed amount of a cash event. The column carries
// no header in the report (it sits right of the "Mutatie" currency column),
// so it is addressed by position.
const cashAmountColumn = 8

// Ledger indexes the cash account report and the transaction report.
//
// Events are kept in file order: the broker emits most recent first, so the
// earliest event is the last row.
type Ledger struct {
	cash   []CashEvent
	trades []TradeEvent
}

// NewLedger builds a ledger from already-decoded events, in the given order.
func NewLedger(cash []CashEvent, trades []TradeEvent) *Ledger {
	return &Ledger{cash: cash, trades: trades}
}

// LoadLedger reads both ledger files named in cfg. A missing or unreadable
// ledger is fatal: nothing can be reconciled without them.
func LoadLedger(cfg Config) (*Ledger, error) {
	cash, err := decodeFile(cfg.CashFile, DecodeCashLedger)
	if err != nil {
		return nil, fmt.Errorf("cash report: %w", err)
	}
	trades, err := decodeFile(cfg.TradesFile, DecodeTradeLedger)
	if err != nil {
		return nil, fmt.Errorf("transaction report: %w", err)
	}
	return NewLedger(cash, trades), nil
}

func decodeFile[T any](filename string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}

// CashEvents returns all cash events in file order.
func (l *Ledger) CashEvents() []CashEvent { return l.cash }

// TradeEvents returns all trade events in file order.
func (l *Ledger) TradeEvents() []TradeEvent { return l.trades }

// CashOn returns all cash events dated on d, in file order.
func (l *Ledger) CashOn(d Date) []CashEvent {
	var events []CashEvent
	for _, e := range l.cash {
		if e.Date == d {
			events = append(events, e)
		}
	}
	return events
}

// Dividends returns all cash events booked as a dividend payment.
func (l *Ledger) Dividends() []CashEvent {
	var events []CashEvent
	for _, e := range l.cash {
		if e.Description == "Dividend" {
			events = append(events, e)
		}
	}
	return events
}

// DividendTax returns the withholding tax booked for product on d, as a
// positive amount. At most one row is used; absence is zero, not an error:
// some dividends are simply untaxed and the ledger is not always consistent.
func (l *Ledger) DividendTax(product string, d Date) decimal.Decimal {
	for _, e := range l.cash {
		if e.Description == "Dividendbelasting" && e.Product == product && e.Date == d {
			return e.Amount.Abs()
		}
	}
	return decimal.Zero
}

// StartDate returns the earliest date found in either ledger.
func (l *Ledger) StartDate() Date {
	var start Date
	for _, e := range l.cash {
		if start.IsZero() || e.Date.Before(start) {
			start = e.Date
		}
	}
	for _, t := range l.trades {
		if start.IsZero() || t.Date.Before(start) {
			start = t.Date
		}
	}
	return start
}

// parseAmount parses a comma-decimal number as found in the broker reports.
// The reports use no thousands separator, so a plain comma-to-dot swap is safe.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// indexColumns maps non-empty header names to their first column index.
func indexColumns(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

// column returns the index of a named column, or -1 when absent.
func column(idx map[string]int, name string) int {
	if i, ok := idx[name]; ok {
		return i
	}
	return -1
}

// field returns the i-th field of a record, tolerating short rows.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func newReportReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// DecodeCashLedger decodes a semicolon-delimited cash account report.
//
// Rows with an unreadable date are dropped with a warning; an unreadable
// amount decodes as zero so the row still participates in lookups by
// description.
func DecodeCashLedger(r io.Reader) ([]CashEvent, error) {
	cr := newReportReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read cash report header: %w", err)
	}
	idx := indexColumns(header)

	var events []CashEvent
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read cash report line %d: %w", line, err)
		}
		d, err := ParseDate(field(record, column(idx, "Datum")))
		if err != nil {
			log.Printf("cash report line %d dropped: %v", line, err)
			continue
		}
		amount, err := parseAmount(field(record, cashAmountColumn))
		if err != nil {
			log.Printf("cash report line %d: unreadable amount %q, using 0", line, field(record, cashAmountColumn))
			amount = decimal.Zero
		}
		events = append(events, CashEvent{
			Date:        d,
			Description: field(record, column(idx, "Omschrijving")),
			Product:     field(record, column(idx, "Product")),
			Amount:      amount,
			Currency:    field(record, column(idx, "Saldo")),
		})
	}
	return events, nil
}

// DecodeTradeLedger decodes a semicolon-delimited transaction report.
func DecodeTradeLedger(r io.Reader) ([]TradeEvent, error) {
	cr := newReportReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction report header: %w", err)
	}
	idx := indexColumns(header)

	var events []TradeEvent
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read transaction report line %d: %w", line, err)
		}
		d, err := ParseDate(field(record, column(idx, "Datum")))
		if err != nil {
			log.Printf("transaction report line %d dropped: %v", line, err)
			continue
		}
		quantity, err := parseAmount(field(record, column(idx, "Aantal")))
		if err != nil {
			log.Printf("transaction report line %d: unreadable quantity %q, using 0", line, field(record, column(idx, "Aantal")))
			quantity = decimal.Zero
		}
		value, err := parseAmount(field(record, column(idx, "Waarde")))
		if err != nil {
			log.Printf("transaction report line %d: unreadable value %q, using 0", line, field(record, column(idx, "Waarde")))
			value = decimal.Zero
		}
		events = append(events, TradeEvent{
			Date:     d,
			Product:  field(record, column(idx, "Product")),
			Quantity: quantity,
			Value:    value,
		})
	}
	return events, nil
}
