package trades

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Deeds67/orderbook/pkg/exchange/orderbook"
)

// Trade is one executed fill. It is immutable once recorded; the only way a
// trade leaves the system is eviction from the bounded history.
type Trade struct {
	ID          string
	Symbol      string
	Price       decimal.Decimal
	Quantity    decimal.Decimal
	QuoteVolume decimal.Decimal
	TakerSide   orderbook.Side
	SequenceID  int64
	TradedAt    time.Time
}
