package degiro

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

// reportHost is the broker's reporting endpoint.
const reportHost = "https://trader.degiro.nl"

// ReportSource downloads the broker's CSV reports. Authentication stays
// outside: the caller provides a live JSESSIONID and the source only spends
// it. All reports are requested in Dutch, the layout the decoders expect.
type ReportSource struct {
	SessionID string
	Client    *http.Client
}

// NewReportSource returns a source using the day-cached HTTP client.
func NewReportSource(sessionID string) *ReportSource {
	return &ReportSource{SessionID: sessionID, Client: cachedClient()}
}

// PositionReport fetches the end-of-day position report for d.
func (s *ReportSource) PositionReport(d Date) ([]byte, error) {
	addr := fmt.Sprintf("%s/reporting/secure/v3/positionReport/csv?sessionId=%s&country=NL&lang=nl&toDate=%02d/%02d/%04d",
		reportHost, s.SessionID, d.Day(), d.Month(), d.Year())
	return s.fetch(addr)
}

// TransactionReport fetches the full trade history up to today.
func (s *ReportSource) TransactionReport() ([]byte, error) {
	return s.fullReport("transactionReport")
}

// CashReport fetches the full cash account history up to today.
func (s *ReportSource) CashReport() ([]byte, error) {
	return s.fullReport("cashAccountReport")
}

func (s *ReportSource) fullReport(report string) ([]byte, error) {
	today := Today()
	addr := fmt.Sprintf("%s/reporting/secure/v3/%s/csv?sessionId=%s&country=NL&lang=nl&fromDate=01/01/2000&toDate=%02d/%02d/%04d",
		reportHost, report, s.SessionID, today.Day(), today.Month(), today.Year())
	return s.fetch(addr)
}

func (s *ReportSource) fetch(addr string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(addr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return normalizeReport(body)
}

// normalizeReport rewrites the broker's comma-delimited CSV into the
// semicolon-delimited layout every decoder and artifact in this package
// uses. Comma decimals need no quoting once the delimiter is a semicolon.
func normalizeReport(raw []byte) ([]byte, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out bytes.Buffer
	w := csv.NewWriter(&out)
	w.Comma = ';'
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed report: %w", err)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return out.Bytes(), w.Error()
}

// Sync downloads both ledgers and every missing daily position report from
// 'from' up to yesterday (exclusive of today, the broker finalizes a day
// overnight). Existing snapshot files are left alone, so a sync after a gap
// only fills the gap. Any network failure aborts the sync: a half-synced
// history is worse than a stale one.
func Sync(source *ReportSource, store *DirStore, cfg Config, from Date) error {
	transactions, err := source.TransactionReport()
	if err != nil {
		return fmt.Errorf("cannot sync the trade ledger: %w", err)
	}
	if err := os.WriteFile(cfg.TradesFile, transactions, 0o644); err != nil {
		return err
	}
	cash, err := source.CashReport()
	if err != nil {
		return fmt.Errorf("cannot sync the cash ledger: %w", err)
	}
	if err := os.WriteFile(cfg.CashFile, cash, 0o644); err != nil {
		return err
	}

	for d := from; d.Before(Today()); d = d.Add(1) {
		if store.Exists(d) {
			continue
		}
		log.Printf("fetching the position report for %s", d)
		data, err := source.PositionReport(d)
		if err != nil {
			return fmt.Errorf("cannot sync the position report for %s: %w", d, err)
		}
		if err := store.Put(d, data); err != nil {
			return err
		}
	}
	return nil
}

// SyncStart returns the first day a fresh sync should fetch: the earliest
// ledger date when the ledgers exist, otherwise the caller must choose.
func SyncStart(cfg Config) (Date, error) {
	ledger, err := LoadLedger(cfg)
	if err != nil {
		return Date{}, err
	}
	start := ledger.StartDate()
	if start.IsZero() {
		return Date{}, fmt.Errorf("empty ledgers in %q and %q", cfg.CashFile, cfg.TradesFile)
	}
	return start, nil
}
