package degiro

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// CloseSeries holds raw daily close prices for one ticker.
type CloseSeries map[Date]float64

// TrackedPoint is one day of an indexed percentage-return series.
type TrackedPoint struct {
	Date Date
	Pct  float64 // cumulative return since the series start, in percent
}

// FetchDailyCloses retrieves a ticker's daily closes from the Yahoo chart
// API. The requested window starts ten days early so the first tracked day
// has a prior close to compare against.
func FetchDailyCloses(client *http.Client, ticker string, start, end Date) (CloseSeries, error) {
	addr := fmt.Sprintf(
		"https://query2.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&includePrePost=true&events=split",
		url.PathEscape(ticker), start.Add(-10).Unix(), end.Unix())

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch closes for %q: %w", ticker, err)
	}

	stamps, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected chart response for %q: %w", ticker, err)
	}
	closes, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected chart response for %q: %w", ticker, err)
	}
	jstamps, _ := stamps.([]any)
	jcloses, _ := closes.([]any)

	series := make(CloseSeries, len(jstamps))
	for i, jstamp := range jstamps {
		if i >= len(jcloses) {
			break
		}
		sec, ok := jstamp.(float64)
		if !ok {
			continue
		}
		price, ok := jcloses[i].(float64) // null closes on half-days decode as nil
		if !ok {
			continue
		}
		series[dateOfUnix(int64(sec))] = price
	}
	return series, nil
}

// Track converts a raw close series into an indexed percentage-return
// series, rebased to 0% at start. A day without a close (weekend, holiday)
// contributes a 0% change; a priced day compounds its change against the
// nearest earlier priced day.
func Track(series CloseSeries, start, end Date, lookback int) []TrackedPoint {
	tracked := 100.0
	var points []TrackedPoint
	for d := start; !d.After(end); d = d.Add(1) {
		var pct float64
		if price, ok := series[d]; ok {
			if prev, ok := lastClose(series, d.Add(-1), lookback); ok {
				pct = 100 * safeDiv(price-prev, prev)
			}
		}
		tracked *= 1 + pct/100
		points = append(points, TrackedPoint{Date: d, Pct: tracked - 100})
	}
	return points
}

// lastClose finds the nearest priced day at or before d, bounded the same
// way as the dividend backdating search.
func lastClose(series CloseSeries, d Date, lookback int) (float64, bool) {
	for back := 0; back <= lookback; back++ {
		if price, ok := series[d.Add(-back)]; ok {
			return price, true
		}
	}
	return 0, false
}

// TrackBenchmarks fetches and tracks every configured ticker. A failing
// fetch degrades that ticker to a flat 0% line instead of failing the whole
// pass: the benchmark overlay is decoration, not data.
func TrackBenchmarks(client *http.Client, cfg Config, start, end Date) map[string][]TrackedPoint {
	if client == nil {
		client = cachedClient()
	}
	out := make(map[string][]TrackedPoint, len(cfg.BenchmarkTickers))
	for _, ticker := range cfg.BenchmarkTickers {
		series, err := FetchDailyCloses(client, ticker, start, end)
		if err != nil {
			log.Printf("benchmark %q unavailable, tracking a flat line: %v", ticker, err)
			series = CloseSeries{}
		}
		out[ticker] = Track(series, start, end, cfg.Lookback)
	}
	return out
}
