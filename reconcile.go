package degiro

import (
	"errors"
	"log"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// StatsRow is one day of the portfolio statistics series.
type StatsRow struct {
	Date           Date
	Value          float64 // total position value in EUR, cash included
	Deposited      float64 // cumulative deposits since inception
	Costs          float64 // cumulative transaction fees (signed as booked)
	Result         float64 // Value - Deposited - Costs
	ResultPct      float64
	DailyResult    float64 // Result minus the previous produced row's Result
	DailyResultPct float64
}

// StatsSeries is the append-only daily statistics series: one row per
// successfully reconciled calendar day, missing days simply absent.
type StatsSeries struct {
	rows []StatsRow
}

// Len returns the number of produced rows.
func (s *StatsSeries) Len() int { return len(s.rows) }

// Rows returns all rows in chronological order.
func (s *StatsSeries) Rows() []StatsRow { return s.rows }

// Last returns the most recent row.
func (s *StatsSeries) Last() (StatsRow, bool) {
	if len(s.rows) == 0 {
		return StatsRow{}, false
	}
	return s.rows[len(s.rows)-1], true
}

// ValueMatrix is the sparse per-product daily valuation table. Rows are
// weekdays with a usable position report; columns accumulate over the whole
// range: once a product appears it keeps a column for every row, absent
// cells reading as NaN.
type ValueMatrix struct {
	dates   []Date
	columns []string
	cells   map[Date]map[string]float64
}

// Dates returns the matrix rows in chronological order.
func (m *ValueMatrix) Dates() []Date { return m.dates }

// Columns returns the product columns in order of first appearance.
func (m *ValueMatrix) Columns() []string { return m.columns }

// Value returns the cell for (d, product). Absent cells are NaN, not ok.
func (m *ValueMatrix) Value(d Date, product string) (float64, bool) {
	v, ok := m.cells[d][product]
	if !ok {
		return math.NaN(), false
	}
	return v, true
}

func (m *ValueMatrix) merge(d Date, row map[string]float64) {
	if m.cells == nil {
		m.cells = make(map[Date]map[string]float64)
	}
	m.dates = append(m.dates, d)
	m.cells[d] = row

	added := make([]string, 0, len(row))
	for product := range row {
		if !slices.Contains(m.columns, product) {
			added = append(added, product)
		}
	}
	// Map order is random; sort within the day to keep columns deterministic.
	slices.Sort(added)
	m.columns = append(m.columns, added...)
}

// accumulator carries the running totals across the daily walk.
type accumulator struct {
	deposited      decimal.Decimal
	costs          decimal.Decimal
	previousResult float64
}

// Reconcile walks the calendar from 'from' (inclusive) to 'until' (exclusive,
// normally yesterday), folding cash events and daily position reports into
// the statistics series and the per-product value matrix.
//
// A day without a usable report yields no rows but keeps the running totals,
// so a later day computes its daily result against the last produced row.
// Per-day failures are logged and never abort the walk.
func Reconcile(ledger *Ledger, store SnapshotStore, cfg Config, from, until Date) (*StatsSeries, *ValueMatrix) {
	stats := &StatsSeries{}
	matrix := &ValueMatrix{}
	var acc accumulator

	for d := from; d.Before(until); d = d.Add(1) {
		if err := reconcileDay(d, ledger, store, cfg, &acc, stats, matrix); err != nil {
			if !errors.Is(err, ErrNoSnapshot) {
				log.Printf("skipping %s: %v", d, err)
			}
		}
	}
	return stats, matrix
}

// reconcileDay processes a single calendar day. Any error means the day is
// skipped; cash events already folded into the accumulator stay folded.
func reconcileDay(d Date, ledger *Ledger, store SnapshotStore, cfg Config, acc *accumulator, stats *StatsSeries, matrix *ValueMatrix) error {
	for _, e := range ledger.CashOn(d) {
		switch e.Classify(cfg) {
		case KindFee:
			acc.costs = acc.costs.Add(e.Amount)
		case KindDeposit:
			acc.deposited = acc.deposited.Add(e.Amount)
		}
	}

	rows, err := store.Get(d)
	if err != nil {
		return err
	}

	var totalValue, cashTotal decimal.Decimal
	for _, row := range rows {
		totalValue = totalValue.Add(row.ValueEUR)
		if strings.Contains(row.Product, cfg.CashFundMarker) {
			cashTotal = cashTotal.Add(row.ValueEUR)
		}
	}

	// The per-product table only records weekdays; the stats series records
	// every day a report exists for.
	if d.IsWeekday() {
		day := make(map[string]float64, len(rows))
		for _, row := range rows {
			if row.IsZeroLocal() {
				continue
			}
			day[row.Product] = row.ValueEUR.InexactFloat64()
		}
		matrix.merge(d, day)
	}

	value := totalValue.InexactFloat64()
	cash := cashTotal.InexactFloat64()
	deposited := acc.deposited.InexactFloat64()
	costs := acc.costs.InexactFloat64()

	result := value - deposited - costs
	dailyResult := result - acc.previousResult
	stats.rows = append(stats.rows, StatsRow{
		Date:           d,
		Value:          value,
		Deposited:      deposited,
		Costs:          costs,
		Result:         result,
		ResultPct:      100 * safeDiv(result, value-result),
		DailyResult:    dailyResult,
		// The sweep cash balance does not "return": it is taken out of the
		// denominator so a large deposit does not distort the daily move.
		DailyResultPct: 100 * safeDiv(dailyResult, value-dailyResult-cash),
	})
	acc.previousResult = result
	return nil
}

// safeDiv returns x/y, or 0 when the denominator is zero.
func safeDiv(x, y float64) float64 {
	if y == 0 {
		return 0
	}
	return x / y
}
