package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/folioval/degiro"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestRenderTradeMonths(t *testing.T) {
	months := []degiro.TradeMonth{
		{MonthKey: degiro.MonthKey{Year: 2024, Month: "januari"}, Buy: dec(t, "1700"), Sell: dec(t, "0"), Net: dec(t, "1700")},
	}
	md := RenderTradeMonths(months)

	for _, want := range []string{"| Jaar | Maand |", "| 2024 | januari |", "1,700.00"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}

func TestRenderDividends(t *testing.T) {
	records := []degiro.DividendRecord{{
		Date:      degiro.NewDate(2024, time.March, 15),
		Product:   "REALTY INCOME",
		AmountEUR: dec(t, "7.01"),
		YieldPct:  dec(t, "6.38"),
		Tax:       dec(t, "1.35"),
		Exchange:  dec(t, "1"),
	}}
	md := RenderDividends(records)

	for _, want := range []string{"15-03-2024", "REALTY INCOME", "**Totaal**"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}

func statsFixture(t *testing.T) *degiro.StatsSeries {
	t.Helper()
	cash := []degiro.CashEvent{
		{Date: degiro.NewDate(2024, time.January, 1), Description: "iDEAL storting", Amount: dec(t, "100.00")},
	}
	store := fixtureStore{
		degiro.NewDate(2024, time.January, 1): {{Product: "ASML HOLDING", Local: "EUR 100.00", ValueEUR: dec(t, "100.00")}},
		degiro.NewDate(2024, time.January, 2): {{Product: "ASML HOLDING", Local: "EUR 110.00", ValueEUR: dec(t, "110.00")}},
		degiro.NewDate(2024, time.January, 3): {{Product: "ASML HOLDING", Local: "EUR 105.00", ValueEUR: dec(t, "105.00")}},
	}
	stats, _ := degiro.Reconcile(degiro.NewLedger(cash, nil), store, degiro.DefaultConfig(),
		degiro.NewDate(2024, time.January, 1), degiro.NewDate(2024, time.January, 4))
	return stats
}

type fixtureStore map[degiro.Date][]degiro.SnapshotRow

func (s fixtureStore) Get(d degiro.Date) ([]degiro.SnapshotRow, error) {
	rows, ok := s[d]
	if !ok {
		return nil, degiro.ErrNoSnapshot
	}
	return rows, nil
}

func (s fixtureStore) Exists(d degiro.Date) bool {
	_, ok := s[d]
	return ok
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestProfitChart(t *testing.T) {
	png, err := ProfitChart(statsFixture(t))
	if err != nil {
		t.Fatalf("ProfitChart() err = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestProfitChartNeedsData(t *testing.T) {
	if _, err := ProfitChart(&degiro.StatsSeries{}); err == nil {
		t.Error("expected an error for an empty series")
	}
}

func TestChangeHistogram(t *testing.T) {
	png, err := ChangeHistogram(statsFixture(t), "Dagelijks rendement",
		func(r degiro.StatsRow) float64 { return r.DailyResult }, EuroLabel)
	if err != nil {
		t.Fatalf("ChangeHistogram() err = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}
