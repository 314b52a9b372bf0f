package renderer

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/folioval/degiro"
)

// euro renders a decimal amount as a euro display string.
func euro(v decimal.Decimal) string {
	return money.New(v.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), money.EUR).Display()
}

// RenderTradeMonths renders the monthly trade aggregates as a markdown table.
func RenderTradeMonths(months []degiro.TradeMonth) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transacties per maand\n\n")
	fmt.Fprintf(&b, "| Jaar | Maand | Koop | Verkoop | Netto |\n")
	fmt.Fprintf(&b, "|---:|:---|---:|---:|---:|\n")
	for _, m := range months {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			m.Year, m.Month, euro(m.Buy), euro(m.Sell), euro(m.Net))
	}
	return b.String()
}

// RenderDividends renders the dividend overview as a markdown table, most
// recent payment first, with a totals row.
func RenderDividends(records []degiro.DividendRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividend overzicht\n\n")
	fmt.Fprintf(&b, "| Datum | Product | Dividend | Percentage | Belasting |\n")
	fmt.Fprintf(&b, "|:---|:---|---:|---:|---:|\n")
	var total, taxTotal decimal.Decimal
	for _, r := range records {
		fmt.Fprintf(&b, "| %s | %s | %s | %s%% | %s |\n",
			r.Date, r.Product, euro(r.AmountEUR), r.YieldPct.StringFixed(2), euro(r.TaxEUR()))
		total = total.Add(r.AmountEUR)
		taxTotal = taxTotal.Add(r.TaxEUR())
	}
	fmt.Fprintf(&b, "| **Totaal** | | **%s** | | **%s** |\n", euro(total), euro(taxTotal))
	return b.String()
}

// RenderSummary renders the latest statistics row as a short markdown report.
func RenderSummary(stats *degiro.StatsSeries) string {
	last, ok := stats.Last()
	if !ok {
		return "Nog geen verwerkte dagen.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio op %s\n\n", last.Date)
	fmt.Fprintf(&b, "| | |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Waarde | %s |\n", euro(decimal.NewFromFloat(last.Value)))
	fmt.Fprintf(&b, "| Inleg | %s |\n", euro(decimal.NewFromFloat(last.Deposited)))
	fmt.Fprintf(&b, "| Kosten | %s |\n", euro(decimal.NewFromFloat(last.Costs)))
	fmt.Fprintf(&b, "| Rendement | %s (%.2f%%) |\n", euro(decimal.NewFromFloat(last.Result)), last.ResultPct)
	fmt.Fprintf(&b, "| Dagelijks rendement | %s (%.2f%%) |\n", euro(decimal.NewFromFloat(last.DailyResult)), last.DailyResultPct)
	return b.String()
}
