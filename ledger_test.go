package degiro

import (
	"strings"
	"testing"
)

const cashFixture = `Datum;Tijd;Valutadatum;Product;ISIN;Omschrijving;FX;Mutatie;;Saldo;;Order Id
03-01-2024;09:05;03-01-2024;REALTY INCOME;US7561091049;Dividend;;USD;1,90;USD;1,90;
03-01-2024;09:05;03-01-2024;REALTY INCOME;US7561091049;Dividendbelasting;;USD;-0,29;USD;1,61;
02-01-2024;10:00;02-01-2024;ASML HOLDING;NL0010273215;DEGIRO Transactiekosten en/of kosten van derden;;EUR;-2,00;EUR;98,00;
01-01-2024;09:00;01-01-2024;;;iDEAL storting;;EUR;100,00;EUR;100,00;
`

const tradesFixture = `Datum;Tijd;Product;ISIN;Beurs;Aantal;Koers;;Waarde;;Transactiekosten;;Order Id
05-02-2024;14:30;ASML HOLDING;NL0010273215;EAM;-1;650,00;EUR;-650,00;EUR;-2,00;EUR;
02-01-2024;14:30;ASML HOLDING;NL0010273215;EAM;2;600,00;EUR;1200,00;EUR;-2,00;EUR;
`

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	cash, err := DecodeCashLedger(strings.NewReader(cashFixture))
	if err != nil {
		t.Fatalf("DecodeCashLedger() err = %v", err)
	}
	trades, err := DecodeTradeLedger(strings.NewReader(tradesFixture))
	if err != nil {
		t.Fatalf("DecodeTradeLedger() err = %v", err)
	}
	return NewLedger(cash, trades)
}

func TestDecodeCashLedger(t *testing.T) {
	ledger := testLedger(t)
	events := ledger.CashEvents()
	if len(events) != 4 {
		t.Fatalf("got %d cash events, want 4", len(events))
	}

	// File order is preserved: most recent first.
	first := events[0]
	if first.Description != "Dividend" || first.Product != "REALTY INCOME" {
		t.Errorf("first event = %+v, want the dividend row", first)
	}
	if !first.Amount.Equal(dec(t, "1.90")) {
		t.Errorf("first amount = %v, want 1.90", first.Amount)
	}
	if first.Currency != "USD" {
		t.Errorf("first currency = %q, want USD", first.Currency)
	}

	deposit := events[3]
	if deposit.Description != "iDEAL storting" || !deposit.Amount.Equal(dec(t, "100.00")) {
		t.Errorf("deposit event = %+v", deposit)
	}
}

func TestDecodeCashLedgerMalformed(t *testing.T) {
	fixture := `Datum;Tijd;Valutadatum;Product;ISIN;Omschrijving;FX;Mutatie;;Saldo;;Order Id
not-a-date;;;X;;iDEAL storting;;EUR;1,00;EUR;1,00;
02-01-2024;;;X;;iDEAL storting;;EUR;oops;EUR;1,00;
`
	events, err := DecodeCashLedger(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("DecodeCashLedger() err = %v", err)
	}
	// The unreadable date drops its row, the unreadable amount keeps its row
	// with a zero amount.
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if !events[0].Amount.IsZero() {
		t.Errorf("amount = %v, want 0", events[0].Amount)
	}
}

func TestDecodeTradeLedger(t *testing.T) {
	ledger := testLedger(t)
	trades := ledger.TradeEvents()
	if len(trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(trades))
	}
	sell, buy := trades[0], trades[1]
	if sell.IsBuy() {
		t.Errorf("trade %+v classified as a buy", sell)
	}
	if !buy.IsBuy() {
		t.Errorf("trade %+v classified as a sell", buy)
	}
	if !buy.Value.Equal(dec(t, "1200.00")) {
		t.Errorf("buy value = %v, want 1200.00", buy.Value)
	}
}

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		description string
		want        CashKind
	}{
		{"DEGIRO Transactiekosten en/of kosten van derden", KindFee},
		{"DEGIRO transactiekosten", KindFee},
		{"iDEAL storting", KindDeposit},
		{"Reservation iDEAL / Sofort Deposit", KindDeposit},
		{"flatex terugstorting", KindDeposit},
		{"Dividend", KindDividend},
		{"Dividendbelasting", KindDividendTax},
		{"Valuta Creditering", KindOther},
		{"dividend", KindOther}, // dividend rules match exactly
	}
	for _, tc := range tests {
		e := CashEvent{Description: tc.description}
		if got := e.Classify(cfg); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.description, got, tc.want)
		}
	}
}

func TestCashOn(t *testing.T) {
	ledger := testLedger(t)
	events := ledger.CashOn(day(t, "03-01-2024"))
	if len(events) != 2 {
		t.Fatalf("got %d events on 03-01-2024, want 2", len(events))
	}
	if len(ledger.CashOn(day(t, "04-01-2024"))) != 0 {
		t.Error("expected no events on 04-01-2024")
	}
}

func TestDividendTax(t *testing.T) {
	ledger := testLedger(t)

	tax := ledger.DividendTax("REALTY INCOME", day(t, "03-01-2024"))
	if !tax.Equal(dec(t, "0.29")) {
		t.Errorf("DividendTax() = %v, want 0.29 (positive)", tax)
	}

	// Absence is zero, not an error.
	if !ledger.DividendTax("REALTY INCOME", day(t, "04-01-2024")).IsZero() {
		t.Error("expected zero tax on a day without a tax row")
	}
	if !ledger.DividendTax("OTHER", day(t, "03-01-2024")).IsZero() {
		t.Error("expected zero tax for an unknown product")
	}
}

func TestStartDate(t *testing.T) {
	ledger := testLedger(t)
	if got := ledger.StartDate(); got != day(t, "01-01-2024") {
		t.Errorf("StartDate() = %v, want 01-01-2024", got)
	}
}
