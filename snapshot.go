package degiro

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoSnapshot reports that no position report exists for a given day.
var ErrNoSnapshot = errors.New("no position report for that day")

// SnapshotRow is one position of a daily report.
type SnapshotRow struct {
	Product  string
	Local    string          // composite local value, e.g. "USD 123.45", verbatim
	ValueEUR decimal.Decimal // always present and parseable
}

// LocalCurrency returns the currency prefix of the composite local value.
func (r SnapshotRow) LocalCurrency() string {
	parts := strings.Fields(r.Local)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// LocalValue parses the numeric tail of the composite local value.
func (r SnapshotRow) LocalValue() (decimal.Decimal, error) {
	parts := strings.Fields(r.Local)
	if len(parts) == 0 {
		return decimal.Zero, fmt.Errorf("empty local value for %q", r.Product)
	}
	return parseAmount(parts[len(parts)-1])
}

// IsZeroLocal reports whether the report carries the literal zero local
// value. Such rows are excluded from the per-product value matrix but still
// count toward the day's total.
func (r SnapshotRow) IsZeroLocal() bool {
	parts := strings.Fields(r.Local)
	if len(parts) == 0 {
		return false
	}
	tail := parts[len(parts)-1]
	return tail == "0,00" || tail == "0.00"
}

// SnapshotStore gives read access to the per-day position reports.
type SnapshotStore interface {
	// Get returns the positions recorded for d, or ErrNoSnapshot.
	Get(d Date) ([]SnapshotRow, error)
	// Exists reports whether a report was recorded for d.
	Exists(d Date) bool
}

// DirStore reads daily position reports stored as "Portfolio DD-MM-YYYY.csv"
// files in a single directory.
type DirStore struct {
	dir string
}

// NewDirStore returns a store over the given directory.
func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

func (s *DirStore) filename(d Date) string {
	return filepath.Join(s.dir, fmt.Sprintf("Portfolio %s.csv", d))
}

// Exists reports whether a report file exists for d.
func (s *DirStore) Exists(d Date) bool {
	_, err := os.Stat(s.filename(d))
	return err == nil
}

// Get decodes the position report for d.
func (s *DirStore) Get(d Date) ([]SnapshotRow, error) {
	f, err := os.Open(s.filename(d))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("position report of %s: %w", d, err)
	}
	return rows, nil
}

// Put writes a raw report under the store's naming scheme, creating the
// directory on first use. Existing reports are overwritten.
func (s *DirStore) Put(d Date, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.filename(d), data, 0o644)
}

// DecodeSnapshot decodes a semicolon-delimited position report.
//
// An unparseable EUR value makes the whole day malformed: the reconciler
// treats that day exactly like a missing one.
func DecodeSnapshot(r io.Reader) ([]SnapshotRow, error) {
	cr := newReportReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	idx := indexColumns(header)

	var rows []SnapshotRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read line %d: %w", line, err)
		}
		product := field(record, column(idx, "Product"))
		if product == "" {
			log.Printf("position report line %d has no product, dropped", line)
			continue
		}
		eur, err := parseAmount(field(record, column(idx, "Waarde in EUR")))
		if err != nil {
			return nil, fmt.Errorf("line %d: unreadable EUR value %q for %q", line, field(record, column(idx, "Waarde in EUR")), product)
		}
		rows = append(rows, SnapshotRow{
			Product:  product,
			Local:    field(record, column(idx, "Lokale waarde")),
			ValueEUR: eur,
		})
	}
	return rows, nil
}
