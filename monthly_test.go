package degiro

import (
	"testing"
)

func TestAggregateTrades(t *testing.T) {
	trades := []TradeEvent{
		{Date: day(t, "10-03-2024"), Product: "ASML HOLDING", Quantity: dec(t, "-1"), Value: dec(t, "-650.00")},
		{Date: day(t, "05-01-2024"), Product: "ASML HOLDING", Quantity: dec(t, "2"), Value: dec(t, "1200.00")},
		{Date: day(t, "20-01-2024"), Product: "REALTY INCOME", Quantity: dec(t, "10"), Value: dec(t, "500.00")},
	}
	months := AggregateTrades(trades, day(t, "15-04-2024"))

	// One bucket per calendar month, gaps included: jan, feb, maart, april.
	if len(months) != 4 {
		t.Fatalf("got %d months, want 4", len(months))
	}

	jan := months[0]
	if jan.Year != 2024 || jan.Month != "januari" {
		t.Errorf("first month = %+v, want januari 2024", jan.MonthKey)
	}
	if !jan.Buy.Equal(dec(t, "1700.00")) || !jan.Sell.IsZero() {
		t.Errorf("januari = buy %v sell %v, want 1700.00 and 0", jan.Buy, jan.Sell)
	}
	if !jan.Net.Equal(dec(t, "1700.00")) {
		t.Errorf("januari net = %v, want 1700.00", jan.Net)
	}

	feb := months[1]
	if feb.Month != "februari" || !feb.Buy.IsZero() || !feb.Sell.IsZero() || !feb.Net.IsZero() {
		t.Errorf("februari = %+v, want an all-zero gap bucket", feb)
	}

	maart := months[2]
	if !maart.Sell.Equal(dec(t, "650.00")) {
		t.Errorf("maart sell = %v, want 650.00 (absolute value)", maart.Sell)
	}
	if !maart.Net.Equal(dec(t, "-650.00")) {
		t.Errorf("maart net = %v, want -650.00", maart.Net)
	}
}

func TestAggregateTradesEmpty(t *testing.T) {
	if months := AggregateTrades(nil, day(t, "15-04-2024")); months != nil {
		t.Errorf("got %v, want nil for an empty ledger", months)
	}
}

func monthlyRecords(t *testing.T) []DividendRecord {
	t.Helper()
	one := dec(t, "1")
	return []DividendRecord{
		{Date: day(t, "10-01-2024"), Product: "REALTY INCOME", AmountEUR: dec(t, "5.000"), Tax: dec(t, "0.750"), Exchange: one},
		{Date: day(t, "25-01-2024"), Product: "AHOLD", AmountEUR: dec(t, "3.000"), Tax: dec(t, "0.450"), Exchange: one},
		// No dividends in February.
		{Date: day(t, "12-03-2024"), Product: "REALTY INCOME", AmountEUR: dec(t, "5.000"), Tax: dec(t, "0.750"), Exchange: one},
	}
}

func TestAggregateDividends(t *testing.T) {
	months := AggregateDividends(monthlyRecords(t), day(t, "15-04-2024"))

	// Sparse months plus the terminal total: januari, maart, Totaal.
	if len(months) != 3 {
		t.Fatalf("got %d buckets, want 3", len(months))
	}

	jan := months[0]
	if jan.Month != "januari" || jan.Total {
		t.Errorf("first bucket = %+v, want januari", jan.MonthKey)
	}
	if !jan.Payments["REALTY INCOME"].Equal(dec(t, "5.000")) || !jan.Payments["AHOLD"].Equal(dec(t, "3.000")) {
		t.Errorf("januari payments = %v", jan.Payments)
	}
	if !jan.Tax.Equal(dec(t, "1.200")) {
		t.Errorf("januari tax = %v, want 1.200", jan.Tax)
	}

	if months[1].Month != "maart" {
		t.Errorf("second bucket = %+v, want maart (februari is skipped)", months[1].MonthKey)
	}

	total := months[2]
	if !total.Total {
		t.Fatalf("last bucket = %+v, want the Totaal bucket", total)
	}
	if !total.Payments["REALTY INCOME"].Equal(dec(t, "10.000")) {
		t.Errorf("total REALTY INCOME = %v, want 10.000", total.Payments["REALTY INCOME"])
	}
	if !total.Tax.Equal(dec(t, "1.950")) {
		t.Errorf("total tax = %v, want 1.950", total.Tax)
	}
}

func TestAggregateDividendsEmpty(t *testing.T) {
	if months := AggregateDividends(nil, day(t, "15-04-2024")); months != nil {
		t.Errorf("got %v, want nil without dividends", months)
	}
}

func TestDividendTotals(t *testing.T) {
	months := DividendTotals(monthlyRecords(t), day(t, "15-04-2024"))

	// Dense: januari, februari, maart, april(partial month of 'until').
	if len(months) != 4 {
		t.Fatalf("got %d months, want 4", len(months))
	}
	if !months[0].Payments["REALTY INCOME"].Equal(dec(t, "5.000")) {
		t.Errorf("januari total = %v", months[0].Payments["REALTY INCOME"])
	}
	// February carries the running totals forward unchanged.
	if !months[1].Payments["REALTY INCOME"].Equal(dec(t, "5.000")) || !months[1].Payments["AHOLD"].Equal(dec(t, "3.000")) {
		t.Errorf("februari totals = %v", months[1].Payments)
	}
	if !months[2].Payments["REALTY INCOME"].Equal(dec(t, "10.000")) {
		t.Errorf("maart total = %v, want 10.000", months[2].Payments["REALTY INCOME"])
	}
}

func TestPaymentColumns(t *testing.T) {
	months := AggregateDividends(monthlyRecords(t), day(t, "15-04-2024"))
	cols := PaymentColumns(months)
	// First appearance order, sorted within a month.
	want := []string{"AHOLD", "REALTY INCOME"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("columns = %v, want %v", cols, want)
		}
	}
}
