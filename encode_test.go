package degiro

import (
	"strings"
	"testing"
)

func TestEncodeStats(t *testing.T) {
	stats := &StatsSeries{rows: []StatsRow{
		{Date: day(t, "01-01-2024"), Value: 100, Deposited: 100},
		{Date: day(t, "03-01-2024"), Value: 112.456, Deposited: 100, Costs: -2, Result: 14.456, ResultPct: 14.75, DailyResult: 14.456, DailyResultPct: 15.06},
	}}

	var b strings.Builder
	if err := EncodeStats(&b, stats); err != nil {
		t.Fatalf("EncodeStats() err = %v", err)
	}

	want := "Datum;Waarde;Inleg;Kosten;Rendement;Rendement(%);Dagelijks rendement;Dagelijks rendement(%)\n" +
		"01-01-2024;100,00;100,00;0,00;0,00;0,00;0,00;0,00\n" +
		"03-01-2024;112,46;100,00;-2,00;14,46;14,75;14,46;15,06\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeStats() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeValueMatrix(t *testing.T) {
	matrix := &ValueMatrix{}
	matrix.merge(day(t, "01-01-2024"), map[string]float64{"ASML HOLDING": 80})
	matrix.merge(day(t, "03-01-2024"), map[string]float64{"ASML HOLDING": 90, "REALTY INCOME": 20})

	var b strings.Builder
	if err := EncodeValueMatrix(&b, matrix); err != nil {
		t.Fatalf("EncodeValueMatrix() err = %v", err)
	}

	want := "Datum;ASML HOLDING;REALTY INCOME\n" +
		"01-01-2024;80,00;\n" +
		"03-01-2024;90,00;20,00\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeValueMatrix() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDividends(t *testing.T) {
	records := []DividendRecord{{
		Date:      day(t, "15-03-2024"),
		Product:   "REALTY INCOME",
		AmountEUR: dec(t, "7.0125"),
		YieldPct:  dec(t, "6.375"),
		Tax:       dec(t, "1.35"),
		Exchange:  dec(t, "1"),
	}}

	var b strings.Builder
	if err := EncodeDividends(&b, records); err != nil {
		t.Fatalf("EncodeDividends() err = %v", err)
	}

	want := "Datum;Product;Dividend;Percentage;Belasting\n" +
		"15-03-2024;REALTY INCOME;7,013;6,375;1,350\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeDividends() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDividendPayments(t *testing.T) {
	months := AggregateDividends(monthlyRecords(t), day(t, "15-04-2024"))

	var b strings.Builder
	if err := EncodeDividendPayments(&b, months); err != nil {
		t.Fatalf("EncodeDividendPayments() err = %v", err)
	}

	want := "Jaar;Maand;Dividendbelasting;AHOLD;REALTY INCOME\n" +
		"2024;januari;1,200;3,000;5,000\n" +
		"2024;maart;0,750;;5,000\n" +
		"Totaal;;1,950;3,000;10,000\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeDividendPayments() =\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeTradeMonths(t *testing.T) {
	months := []TradeMonth{
		{MonthKey: MonthKey{Year: 2024, Month: "januari"}, Buy: dec(t, "1700"), Sell: dec(t, "0"), Net: dec(t, "1700")},
		{MonthKey: MonthKey{Year: 2024, Month: "februari"}},
	}

	var b strings.Builder
	if err := EncodeTradeMonths(&b, months); err != nil {
		t.Fatalf("EncodeTradeMonths() err = %v", err)
	}

	want := "Jaar;Maand;Koop;Verkoop;Netto\n" +
		"2024;januari;1700,00;0,00;1700,00\n" +
		"2024;februari;0,00;0,00;0,00\n"
	if got := b.String(); got != want {
		t.Errorf("EncodeTradeMonths() =\n%s\nwant:\n%s", got, want)
	}
}
