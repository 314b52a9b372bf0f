package degiro

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the classification rules and file layout of the broker
// reports. It is passed by value into the engines; there are no package-level
// settings.
type Config struct {
	// DepositDescriptions are the cash-ledger descriptions that count as a
	// deposit or withdrawal of own money.
	DepositDescriptions []string `toml:"deposit_descriptions"`

	// CashFundMarker identifies the cash sweep positions of a daily report by
	// substring match on the product name.
	CashFundMarker string `toml:"cash_fund_marker"`

	// SnapshotDir holds the per-day position reports.
	SnapshotDir string `toml:"snapshot_dir"`

	// CashFile and TradesFile are the cash account and transaction reports.
	CashFile   string `toml:"cash_file"`
	TradesFile string `toml:"trades_file"`

	// BenchmarkTickers are Yahoo symbols tracked next to the portfolio.
	BenchmarkTickers []string `toml:"benchmark_tickers"`

	// Lookback bounds the backdating searches, in calendar days.
	Lookback int `toml:"lookback"`
}

// DefaultConfig returns the configuration matching the broker's Dutch report
// wording and the conventional data layout.
func DefaultConfig() Config {
	return Config{
		DepositDescriptions: []string{
			"iDEAL storting",
			"Terugstorting",
			"Processed Flatex Withdrawal",
			"Reservation iDEAL / Sofort Deposit",
			"iDEAL Deposit",
			"flatex terugstorting",
		},
		CashFundMarker:   "CASH & CASH FUND & FTX CASH",
		SnapshotDir:      filepath.Join("data", "portfolio"),
		CashFile:         filepath.Join("data", "cash.csv"),
		TradesFile:       filepath.Join("data", "transactions.csv"),
		BenchmarkTickers: []string{"^GSPC", "^IXIC"},
		Lookback:         30,
	}
}

// LoadConfig reads a TOML configuration file on top of the defaults.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", filename, err)
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultConfig().Lookback
	}
	return cfg, nil
}
