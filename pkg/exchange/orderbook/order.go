package orderbook

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// ParseSide accepts "BUY"/"SELL" in any casing.
func ParseSide(s string) (Side, bool) {
	switch strings.ToUpper(s) {
	case "BUY":
		return Buy, true
	case "SELL":
		return Sell, true
	default:
		return Buy, false
	}
}

// LimitOrder is a request to trade at Price or better. Quantity is the
// remaining unfilled amount; it is reduced during matching and stays
// positive for as long as the order rests in a book.
type LimitOrder struct {
	ID       string
	Symbol   string
	Side     Side
	Price    decimal.Decimal
	Quantity decimal.Decimal

	// level queue links, owned by the priceLevel currently holding the order
	next *LimitOrder
	prev *LimitOrder
}

func NewLimitOrder(side Side, quantity, price decimal.Decimal, symbol string) *LimitOrder {
	return &LimitOrder{
		ID:       uuid.NewString(),
		Symbol:   symbol,
		Side:     side,
		Price:    price,
		Quantity: quantity,
	}
}
