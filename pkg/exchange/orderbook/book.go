package orderbook

import (
	"sync"

	"github.com/shopspring/decimal"
)

// TradeRecorder receives exactly one record per fill. The caller-supplied
// quote volume is advisory; implementations recompute it before storing.
type TradeRecorder interface {
	Record(price, quantity decimal.Decimal, symbol string, takerSide Side, quoteVolume decimal.Decimal) (int64, bool)
}

// PriceSummary aggregates one live price level.
type PriceSummary struct {
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	OrderCount int
}

// Summary is a read-only projection of the book, levels ordered best to
// worst on each side.
type Summary struct {
	Symbol string
	Bids   []PriceSummary
	Asks   []PriceSummary
}

// Book is the order book for a single symbol. Matching is price-time
// priority: best opposite price first, FIFO within a level. Mutations are
// serialized by the symbol's dispatcher worker; the RWMutex exists so that
// summary reads, which bypass the dispatcher queue, always observe a
// structurally consistent book.
type Book struct {
	symbol   string
	recorder TradeRecorder

	mu   sync.RWMutex
	bids *levelTree
	asks *levelTree
}

func NewBook(symbol string, recorder TradeRecorder) *Book {
	return &Book{
		symbol:   symbol,
		recorder: recorder,
		bids:     newLevelTree(func(a, b decimal.Decimal) int { return b.Cmp(a) }),
		asks:     newLevelTree(func(a, b decimal.Decimal) int { return a.Cmp(b) }),
	}
}

func (b *Book) Symbol() string { return b.symbol }

// Submit matches the order against the opposite side and rests any
// remainder. It returns false only when the order's symbol does not belong
// to this book; everything else is processed fully before returning.
func (b *Book) Submit(order *LimitOrder) bool {
	if order.Symbol != b.symbol {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var contra, own *levelTree
	if order.Side == Buy {
		contra, own = b.asks, b.bids
	} else {
		contra, own = b.bids, b.asks
	}

	b.match(order, contra)

	if order.Quantity.IsPositive() {
		own.upsert(order.Price).enqueue(order)
	}
	return true
}

// match crosses the taker against contra while the best opposite price is
// within the taker's limit. Fills execute at the resting level's price, so
// the incoming side gets any price improvement.
func (b *Book) match(taker *LimitOrder, contra *levelTree) {
	for taker.Quantity.IsPositive() {
		level := contra.first()
		if level == nil || !b.crossable(taker, level.price) {
			return
		}

		for level.head != nil && taker.Quantity.IsPositive() {
			resting := level.head
			matched := decimal.Min(resting.Quantity, taker.Quantity)

			b.recorder.Record(level.price, matched, b.symbol, taker.Side, level.price.Mul(matched))
			taker.Quantity = taker.Quantity.Sub(matched)

			if resting.Quantity.Cmp(matched) <= 0 {
				// exact equality counts as full consumption
				level.dequeueFront()
			} else {
				level.reduceFront(matched)
			}
		}

		if level.empty() {
			contra.delete(level.price)
		}
	}
}

func (b *Book) crossable(taker *LimitOrder, best decimal.Decimal) bool {
	if taker.Side == Buy {
		return best.LessThanOrEqual(taker.Price)
	}
	return best.GreaterThanOrEqual(taker.Price)
}

// Summary snapshots every live level on both sides.
func (b *Book) Summary() Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	collect := func(t *levelTree) []PriceSummary {
		out := make([]PriceSummary, 0, t.len())
		t.forEach(func(l *priceLevel) bool {
			out = append(out, PriceSummary{Price: l.price, Quantity: l.totalQty, OrderCount: l.orderCount})
			return true
		})
		return out
	}

	return Summary{Symbol: b.symbol, Bids: collect(b.bids), Asks: collect(b.asks)}
}
