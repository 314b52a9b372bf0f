package degiro

import (
	"errors"
	"strings"
	"testing"
)

const snapshotFixture = `Product;Symbool/ISIN;Aantal;Slotkoers;Lokale waarde;Waarde in EUR
ASML HOLDING;NL0010273215;2;650,00;EUR 1300.00;1300,00
REALTY INCOME;US7561091049;10;55,00;USD 550.00;500,00
CASH & CASH FUND & FTX CASH (EUR);;;;EUR 0.00;25,50
`

func TestDecodeSnapshot(t *testing.T) {
	rows, err := DecodeSnapshot(strings.NewReader(snapshotFixture))
	if err != nil {
		t.Fatalf("DecodeSnapshot() err = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	r := rows[1]
	if r.Product != "REALTY INCOME" {
		t.Errorf("product = %q", r.Product)
	}
	if !r.ValueEUR.Equal(dec(t, "500.00")) {
		t.Errorf("ValueEUR = %v, want 500.00", r.ValueEUR)
	}
	if got := r.LocalCurrency(); got != "USD" {
		t.Errorf("LocalCurrency() = %q, want USD", got)
	}
	local, err := r.LocalValue()
	if err != nil {
		t.Fatalf("LocalValue() err = %v", err)
	}
	if !local.Equal(dec(t, "550.00")) {
		t.Errorf("LocalValue() = %v, want 550.00", local)
	}
}

func TestDecodeSnapshotMalformedDay(t *testing.T) {
	fixture := `Product;Symbool/ISIN;Aantal;Slotkoers;Lokale waarde;Waarde in EUR
ASML HOLDING;NL0010273215;2;650,00;EUR 1300.00;not-a-number
`
	if _, err := DecodeSnapshot(strings.NewReader(fixture)); err == nil {
		t.Fatal("expected an error for an unreadable EUR value")
	}
}

func TestIsZeroLocal(t *testing.T) {
	tests := []struct {
		local string
		want  bool
	}{
		{"EUR 0,00", true},
		{"0,00", true},
		{"EUR 0.00", true},
		{"USD 550.00", false},
		{"EUR 0.001", false},
		{"", false},
	}
	for _, tc := range tests {
		r := SnapshotRow{Local: tc.local}
		if got := r.IsZeroLocal(); got != tc.want {
			t.Errorf("IsZeroLocal(%q) = %v, want %v", tc.local, got, tc.want)
		}
	}
}

func TestDirStore(t *testing.T) {
	store := NewDirStore(t.TempDir())
	d := day(t, "02-01-2024")

	if store.Exists(d) {
		t.Fatal("empty store reports an existing report")
	}
	if _, err := store.Get(d); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("Get() err = %v, want ErrNoSnapshot", err)
	}

	if err := store.Put(d, []byte(snapshotFixture)); err != nil {
		t.Fatalf("Put() err = %v", err)
	}
	if !store.Exists(d) {
		t.Error("Exists() = false after Put")
	}
	rows, err := store.Get(d)
	if err != nil {
		t.Fatalf("Get() err = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}
}
