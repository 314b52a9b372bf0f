package degiro

import "github.com/shopspring/decimal"

// TradeEvent is one row of the broker's transaction report.
type TradeEvent struct {
	Date     Date
	Product  string
	Quantity decimal.Decimal // signed; positive is a buy
	Value    decimal.Decimal // signed; aggregation uses the absolute value
}

// IsBuy reports whether the trade increases the position.
func (t TradeEvent) IsBuy() bool { return t.Quantity.IsPositive() }
