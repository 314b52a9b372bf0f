package degiro

import (
	"testing"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory SnapshotStore for tests.
type memStore map[Date][]SnapshotRow

func (m memStore) Get(d Date) ([]SnapshotRow, error) {
	rows, ok := m[d]
	if !ok {
		return nil, ErrNoSnapshot
	}
	return rows, nil
}

func (m memStore) Exists(d Date) bool {
	_, ok := m[d]
	return ok
}

// dec parses a decimal literal, failing the test on a typo in the fixture.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

// day is shorthand for the fixture dates.
func day(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad date literal %q: %v", s, err)
	}
	return d
}

// pos builds a snapshot row from string literals.
func pos(t *testing.T, product, local, eur string) SnapshotRow {
	t.Helper()
	return SnapshotRow{Product: product, Local: local, ValueEUR: dec(t, eur)}
}

// testConfig returns the default configuration with a short lookback so the
// bounded searches stay readable in tests.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Lookback = 5
	return cfg
}
