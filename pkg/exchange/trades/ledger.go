package trades

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Deeds67/orderbook/pkg/exchange/orderbook"
	"github.com/Deeds67/orderbook/pkg/util"
)

// Ledger keeps the bounded recent-trade history of one symbol and assigns
// its monotonic sequence ids. Writes come from the symbol's single
// dispatcher worker; the sequence counter is atomic anyway as a guard
// against incidental multi-writer use.
type Ledger struct {
	symbol   string
	capacity int
	seq      atomic.Int64
	clock    util.Clock

	mu   sync.RWMutex
	ring []Trade // fixed-size ring; next is the write position, the oldest slot once full
	next int
	size int

	listener atomic.Pointer[func(Trade)]
}

const defaultHistoryCap = 100

func NewLedger(symbol string, firstSequence int64, capacity int) *Ledger {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	l := &Ledger{
		symbol:   symbol,
		capacity: capacity,
		clock:    util.RealClock{},
		ring:     make([]Trade, capacity),
	}
	l.seq.Store(firstSequence)
	return l
}

func (l *Ledger) Symbol() string { return l.symbol }

// OnTrade registers a callback invoked once per accepted record, after the
// trade is stored. Used to feed the live trade stream.
func (l *Ledger) OnTrade(fn func(Trade)) {
	l.listener.Store(&fn)
}

// Record stores one fill. It rejects a symbol that is not the ledger's own,
// with no side effect — a guard against cross-symbol recording errors. The
// quote volume is recomputed from price and quantity; the caller-supplied
// value is never stored.
func (l *Ledger) Record(price, quantity decimal.Decimal, symbol string, takerSide orderbook.Side, quoteVolume decimal.Decimal) (int64, bool) {
	if symbol != l.symbol {
		return 0, false
	}

	trade := Trade{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		Price:       price,
		Quantity:    quantity,
		QuoteVolume: price.Mul(quantity),
		TakerSide:   takerSide,
		SequenceID:  l.seq.Add(1),
		TradedAt:    l.clock.Now(),
	}

	l.mu.Lock()
	l.ring[l.next] = trade
	l.next = (l.next + 1) % l.capacity
	if l.size < l.capacity {
		l.size++
	}
	l.mu.Unlock()

	if fn := l.listener.Load(); fn != nil {
		(*fn)(trade)
	}
	return trade.SequenceID, true
}

// Recent returns up to limit trades, newest first.
func (l *Ledger) Recent(limit int) []Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := limit
	if n > l.size {
		n = l.size
	}
	if n <= 0 {
		return []Trade{}
	}

	out := make([]Trade, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, l.ring[(l.next-i+l.capacity)%l.capacity])
	}
	return out
}
