// Package degiro reconstructs a continuous, calendar-indexed history of a
// DeGiro portfolio from the broker's three loosely-coupled reports: the
// per-day position reports, the cash account report, and the transaction
// report.
//
// None of those sources is a time series on its own: position reports can be
// missing for arbitrary days, product names drift in spelling, and dividend
// cash events must be matched to a position value that may not exist on the
// dividend date itself. The core of the package is the reconciliation engine
// that merges them anyway:
//   - Reconcile walks the calendar day by day and folds cash events and
//     position reports into a daily statistics series and a per-product
//     valuation matrix.
//   - ResolveDividends enriches every dividend cash event with its
//     withholding tax, an exchange rate recovered from the nearest prior
//     position report, and the yield on the paying position.
//   - AggregateTrades and AggregateDividends bucket activity into true
//     calendar months.
//   - Track converts an external close-price series into a percentage-return
//     series comparable to the portfolio's own.
//
// A single corrupt or missing daily report never aborts a run: the engines
// skip the day or fall back to an approximation, log a warning, and carry on.
//
// This package is the foundation of the `dgt` command-line tool.
package degiro
