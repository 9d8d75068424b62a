// Package exchange dispatches limit orders onto per-symbol matching workers.
//
// Every configured symbol owns one buffered queue and one worker goroutine:
// all mutations of a symbol's book and ledger happen on that single worker,
// in arrival order, which is what enforces price-time priority without any
// locking inside the matching algorithm. Workers for different symbols run
// fully in parallel. Reads bypass the queues and observe live state.
package exchange

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Deeds67/orderbook/params"
	"github.com/Deeds67/orderbook/pkg/exchange/orderbook"
	"github.com/Deeds67/orderbook/pkg/exchange/trades"
)

type desk struct {
	book   *orderbook.Book
	ledger *trades.Ledger
	queue  chan *orderbook.LimitOrder
}

type Exchange struct {
	log   *zap.SugaredLogger
	desks map[string]*desk // built at startup, read-only afterwards

	mu     sync.RWMutex // guards closed vs. in-flight enqueues
	closed bool
	wg     sync.WaitGroup
}

func New(cfg params.Exchange, log *zap.SugaredLogger) *Exchange {
	ex := &Exchange{
		log:   log,
		desks: make(map[string]*desk, len(cfg.Symbols)),
	}
	for _, symbol := range cfg.Symbols {
		ledger := trades.NewLedger(symbol, cfg.FirstSequence, cfg.TradeHistoryCap)
		d := &desk{
			book:   orderbook.NewBook(symbol, ledger),
			ledger: ledger,
			queue:  make(chan *orderbook.LimitOrder, cfg.OrderQueueDepth),
		}
		ex.desks[symbol] = d
		ex.wg.Add(1)
		go ex.runWorker(d)
	}
	log.Infow("exchange_started", "symbols", cfg.Symbols, "queue_depth", cfg.OrderQueueDepth)
	return ex
}

// runWorker drains one symbol's queue for the life of the process. A panic
// halts processing for that symbol alone; other symbols keep matching.
func (ex *Exchange) runWorker(d *desk) {
	defer ex.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			ex.log.Errorw("matching_worker_crashed", "symbol", d.book.Symbol(), "panic", r)
		}
	}()

	for order := range d.queue {
		// The result is discarded: submission is fire-and-forget and
		// callers observe fills through the summary and trade reads.
		d.book.Submit(order)
	}
}

// SubmitLimitOrder enqueues the order on its symbol's queue and returns the
// order id immediately, regardless of eventual match outcome. Not-ok means
// the order was not accepted: unknown symbol, non-positive price or
// quantity, a full queue, or an exchange that is shutting down.
func (ex *Exchange) SubmitLimitOrder(order *orderbook.LimitOrder) (string, bool) {
	if !order.Quantity.IsPositive() || !order.Price.IsPositive() {
		return "", false
	}
	d, ok := ex.desks[order.Symbol]
	if !ok {
		return "", false
	}

	ex.mu.RLock()
	defer ex.mu.RUnlock()
	if ex.closed {
		return "", false
	}

	select {
	case d.queue <- order:
		return order.ID, true
	default:
		ex.log.Warnw("order_queue_full", "symbol", order.Symbol, "order_id", order.ID)
		return "", false
	}
}

// OrderBookSummary reads the symbol's book directly, bypassing the queue.
func (ex *Exchange) OrderBookSummary(symbol string) (orderbook.Summary, bool) {
	d, ok := ex.desks[symbol]
	if !ok {
		return orderbook.Summary{}, false
	}
	return d.book.Summary(), true
}

// RecentTrades reads the symbol's ledger directly, newest first.
func (ex *Exchange) RecentTrades(symbol string, limit int) ([]trades.Trade, bool) {
	d, ok := ex.desks[symbol]
	if !ok {
		return nil, false
	}
	return d.ledger.Recent(limit), true
}

// OnTrade registers a listener invoked once per executed fill, any symbol.
func (ex *Exchange) OnTrade(fn func(trades.Trade)) {
	for _, d := range ex.desks {
		d.ledger.OnTrade(fn)
	}
}

// Close refuses new submissions, lets every worker drain its backlog, and
// returns once all workers have exited. Queued work is never discarded.
func (ex *Exchange) Close() {
	ex.mu.Lock()
	if ex.closed {
		ex.mu.Unlock()
		return
	}
	ex.closed = true
	for _, d := range ex.desks {
		close(d.queue)
	}
	ex.mu.Unlock()

	ex.wg.Wait()
	ex.log.Infow("exchange_stopped")
}
