// Package renderer turns finished aggregates into PNG charts and terminal
// markdown. It consumes computed series only and never touches the ledgers
// or the position reports itself.
package renderer

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/folioval/degiro"
)

// palette cycles over the product series of the value chart.
var palette = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("dc2626"), // red-600
	drawing.ColorFromHex("d97706"), // amber-600
	drawing.ColorFromHex("9333ea"), // purple-600
	drawing.ColorFromHex("0891b2"), // cyan-600
	drawing.ColorFromHex("be185d"), // pink-700
	drawing.ColorFromHex("4d7c0f"), // lime-700
}

func seriesColor(i int) drawing.Color { return palette[i%len(palette)] }

// euroLabel formats a chart axis value as a euro amount.
func euroLabel(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return money.New(int64(math.Round(f*100)), money.EUR).Display()
}

func pctLabel(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f%%", f)
}

func dateLabel(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return chart.TimeFromFloat64(f).Format("Jan 06")
}

func render(graph chart.Chart) ([]byte, error) {
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func statDates(rows []degiro.StatsRow) []time.Time {
	xs := make([]time.Time, len(rows))
	for i, row := range rows {
		xs[i] = time.Date(row.Date.Year(), row.Date.Month(), row.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return xs
}

// ProfitChart draws the portfolio value, cumulative deposits and result as
// three lines over time. Returns raw PNG bytes.
func ProfitChart(stats *degiro.StatsSeries) ([]byte, error) {
	rows := stats.Rows()
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(rows))
	}

	xs := statDates(rows)
	value := make([]float64, len(rows))
	result := make([]float64, len(rows))
	deposited := make([]float64, len(rows))
	for i, row := range rows {
		value[i] = row.Value
		result[i] = row.Result
		deposited[i] = row.Deposited
	}

	graph := chart.Chart{
		Title:  "Rendement",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition:   chart.TickPositionBetweenTicks,
			ValueFormatter: dateLabel,
		},
		YAxis: chart.YAxis{ValueFormatter: euroLabel},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Waarde",
				Style:   chart.Style{StrokeColor: seriesColor(0), StrokeWidth: 2.5},
				XValues: xs,
				YValues: value,
			},
			chart.TimeSeries{
				Name:    "Rendement",
				Style:   chart.Style{StrokeColor: seriesColor(1), StrokeWidth: 2},
				XValues: xs,
				YValues: result,
			},
			chart.TimeSeries{
				Name: "Inleg",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: xs,
				YValues: deposited,
			},
		},
	}
	return render(graph)
}

// ValueChart draws the per-product valuations stacked over time: each product
// line is drawn on top of the running total of the products before it, with a
// fill down to the previous line. Absent cells count as zero.
func ValueChart(matrix *degiro.ValueMatrix) ([]byte, error) {
	dates := matrix.Dates()
	if len(dates) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(dates))
	}

	xs := make([]time.Time, len(dates))
	for i, d := range dates {
		xs[i] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}

	// Stack from the bottom up. Later series draw over earlier ones, so the
	// series list runs from the tallest stack down to the first product.
	running := make([]float64, len(dates))
	var series []chart.Series
	for i, product := range matrix.Columns() {
		ys := make([]float64, len(dates))
		for j, d := range dates {
			v, ok := matrix.Value(d, product)
			if !ok || math.IsNaN(v) {
				v = 0
			}
			running[j] += v
			ys[j] = running[j]
		}
		series = append([]chart.Series{chart.TimeSeries{
			Name: product,
			Style: chart.Style{
				StrokeColor: seriesColor(i),
				StrokeWidth: 1,
				FillColor:   seriesColor(i).WithAlpha(90),
			},
			XValues: xs,
			YValues: ys,
		}}, series...)
	}

	graph := chart.Chart{
		Title:  "Waarde",
		Width:  1100,
		Height: 500,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition:   chart.TickPositionBetweenTicks,
			ValueFormatter: dateLabel,
		},
		YAxis:  chart.YAxis{ValueFormatter: euroLabel},
		Series: series,
	}
	return render(graph)
}

// PerformanceChart draws the portfolio's compounded daily returns against the
// tracked benchmark indices, all rebased to 0% at the start of the range.
func PerformanceChart(stats *degiro.StatsSeries, benchmarks map[string][]degiro.TrackedPoint) ([]byte, error) {
	rows := stats.Rows()
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(rows))
	}

	xs := statDates(rows)
	tracked := 100.0
	portfolio := make([]float64, len(rows))
	for i, row := range rows {
		tracked *= 1 + row.DailyResultPct/100
		portfolio[i] = tracked - 100
	}

	series := []chart.Series{chart.TimeSeries{
		Name:    "Portfolio",
		Style:   chart.Style{StrokeColor: seriesColor(0), StrokeWidth: 2.5},
		XValues: xs,
		YValues: portfolio,
	}}
	i := 1
	for ticker, points := range benchmarks {
		bxs := make([]time.Time, len(points))
		bys := make([]float64, len(points))
		for j, p := range points {
			bxs[j] = time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
			bys[j] = p.Pct
		}
		series = append(series, chart.TimeSeries{
			Name:    ticker,
			Style:   chart.Style{StrokeColor: seriesColor(i), StrokeWidth: 1.5},
			XValues: bxs,
			YValues: bys,
		})
		i++
	}

	graph := chart.Chart{
		Title:  "Prestatie",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition:   chart.TickPositionBetweenTicks,
			ValueFormatter: dateLabel,
		},
		YAxis:  chart.YAxis{ValueFormatter: pctLabel},
		Series: series,
	}
	return render(graph)
}

// PurchasesChart draws the monthly net purchases of one year as bars, green
// for net buying and red for net selling.
func PurchasesChart(months []degiro.TradeMonth, year int) ([]byte, error) {
	var values []chart.Value
	for _, m := range months {
		if m.Year != year {
			continue
		}
		net := m.Net.InexactFloat64()
		color := drawing.ColorFromHex("16a34a")
		if net < 0 {
			color = drawing.ColorFromHex("dc2626")
		}
		values = append(values, chart.Value{
			Label: m.Month[:3],
			Value: net,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no trade months in %d", year)
	}

	graph := chart.BarChart{
		Title:  fmt.Sprintf("Netto aankopen %d", year),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 40,
		YAxis:    chart.YAxis{ValueFormatter: euroLabel},
		Bars:     values,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ChangeHistogram draws the distribution of a daily change metric as bars,
// losses red and gains green. The pick function selects the metric from a
// stats row, the formatter labels the value axis.
func ChangeHistogram(stats *degiro.StatsSeries, title string, pick func(degiro.StatsRow) float64, format func(interface{}) string) ([]byte, error) {
	rows := stats.Rows()
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(rows))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	samples := make([]float64, len(rows))
	for i, row := range rows {
		v := pick(row)
		samples[i] = v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}

	const bins = 21
	width := (hi - lo) / bins
	counts := make([]int, bins)
	for _, v := range samples {
		bin := int((v - lo) / width)
		if bin >= bins {
			bin = bins - 1
		}
		counts[bin]++
	}

	values := make([]chart.Value, bins)
	for i, n := range counts {
		center := lo + (float64(i)+0.5)*width
		color := drawing.ColorFromHex("16a34a")
		if center < 0 {
			color = drawing.ColorFromHex("dc2626")
		}
		values[i] = chart.Value{
			Label: format(center),
			Value: float64(n),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	graph := chart.BarChart{
		Title:  title,
		Width:  1100,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 30,
		Bars:     values,
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// PctLabel formats a histogram bucket center in percent.
func PctLabel(v interface{}) string { return pctLabel(v) }

// EuroLabel formats a histogram bucket center as a euro amount.
func EuroLabel(v interface{}) string { return euroLabel(v) }
