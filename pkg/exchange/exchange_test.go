package exchange

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Deeds67/orderbook/params"
	"github.com/Deeds67/orderbook/pkg/exchange/orderbook"
	"github.com/Deeds67/orderbook/pkg/exchange/trades"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestExchange(t *testing.T, symbols ...string) *Exchange {
	t.Helper()
	if len(symbols) == 0 {
		symbols = []string{"BTCUSD"}
	}
	ex := New(params.Exchange{
		Symbols:         symbols,
		TradeHistoryCap: 100,
		FirstSequence:   0,
		OrderQueueDepth: 1024,
	}, zap.NewNop().Sugar())
	t.Cleanup(ex.Close)
	return ex
}

func TestSubmitUnknownSymbol(t *testing.T) {
	ex := newTestExchange(t)

	_, ok := ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec("1"), dec("100"), "UNKNOWN"))
	assert.False(t, ok)

	_, ok = ex.OrderBookSummary("UNKNOWN")
	assert.False(t, ok)

	_, ok = ex.RecentTrades("UNKNOWN", 10)
	assert.False(t, ok)
}

func TestSubmitRejectsNonPositiveValues(t *testing.T) {
	ex := newTestExchange(t)

	tests := []struct {
		name     string
		quantity string
		price    string
	}{
		{"zero quantity", "0", "100"},
		{"negative quantity", "-1", "100"},
		{"zero price", "1", "0"},
		{"negative price", "1", "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec(tt.quantity), dec(tt.price), "BTCUSD"))
			assert.False(t, ok)
		})
	}
}

func TestSubmitReturnsIDAndRestsEventually(t *testing.T) {
	ex := newTestExchange(t)

	order := orderbook.NewLimitOrder(orderbook.Buy, dec("1.5"), dec("50000"), "BTCUSD")
	id, ok := ex.SubmitLimitOrder(order)
	require.True(t, ok)
	assert.Equal(t, order.ID, id)

	require.Eventually(t, func() bool {
		summary, ok := ex.OrderBookSummary("BTCUSD")
		return ok && len(summary.Bids) == 1
	}, time.Second, time.Millisecond)

	summary, _ := ex.OrderBookSummary("BTCUSD")
	assert.Equal(t, "50000", summary.Bids[0].Price.String())
	assert.Equal(t, "1.5", summary.Bids[0].Quantity.String())
}

func TestOrdersApplyInArrivalOrder(t *testing.T) {
	ex := newTestExchange(t)

	_, ok := ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Sell, dec("3"), dec("100"), "BTCUSD"))
	require.True(t, ok)
	_, ok = ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Sell, dec("2"), dec("100"), "BTCUSD"))
	require.True(t, ok)
	_, ok = ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec("5"), dec("100"), "BTCUSD"))
	require.True(t, ok)

	require.Eventually(t, func() bool {
		recent, ok := ex.RecentTrades("BTCUSD", 10)
		return ok && len(recent) == 2
	}, time.Second, time.Millisecond)

	recent, _ := ex.RecentTrades("BTCUSD", 10)
	// newest first: the 3-lot resting order was hit before the 2-lot one
	assert.Equal(t, "2", recent[0].Quantity.String())
	assert.Equal(t, int64(2), recent[0].SequenceID)
	assert.Equal(t, "3", recent[1].Quantity.String())
	assert.Equal(t, int64(1), recent[1].SequenceID)
}

func TestCrossSymbolSubmissionsRunIndependently(t *testing.T) {
	const perSymbol = 50
	ex := newTestExchange(t, "BTCUSD", "ETHUSD")

	var wg sync.WaitGroup
	for _, symbol := range []string{"BTCUSD", "ETHUSD"} {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			for i := 0; i < perSymbol; i++ {
				price := dec(fmt.Sprintf("%d", 100+i))
				_, ok := ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec("1"), price, symbol))
				assert.True(t, ok)
			}
		}(symbol)
	}
	wg.Wait()

	for _, symbol := range []string{"BTCUSD", "ETHUSD"} {
		require.Eventually(t, func() bool {
			summary, ok := ex.OrderBookSummary(symbol)
			return ok && len(summary.Bids) == perSymbol
		}, time.Second, time.Millisecond, "symbol %s", symbol)
	}
}

func TestCloseDrainsBacklogThenRejects(t *testing.T) {
	const backlog = 200
	ex := New(params.Exchange{
		Symbols:         []string{"BTCUSD"},
		TradeHistoryCap: 100,
		FirstSequence:   0,
		OrderQueueDepth: backlog,
	}, zap.NewNop().Sugar())

	for i := 0; i < backlog; i++ {
		price := dec(fmt.Sprintf("%d", 1+i))
		_, ok := ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec("1"), price, "BTCUSD"))
		require.True(t, ok)
	}

	ex.Close()

	// Close returns only after the worker drained everything it had queued.
	summary, ok := ex.OrderBookSummary("BTCUSD")
	require.True(t, ok)
	assert.Len(t, summary.Bids, backlog)

	_, ok = ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec("1"), dec("100"), "BTCUSD"))
	assert.False(t, ok)
}

func TestOnTradeListenerReceivesFills(t *testing.T) {
	ex := newTestExchange(t)

	var mu sync.Mutex
	var seen []string
	ex.OnTrade(func(tr trades.Trade) {
		mu.Lock()
		seen = append(seen, tr.Quantity.String())
		mu.Unlock()
	})

	_, ok := ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Buy, dec("1"), dec("100"), "BTCUSD"))
	require.True(t, ok)
	_, ok = ex.SubmitLimitOrder(orderbook.NewLimitOrder(orderbook.Sell, dec("1"), dec("100"), "BTCUSD"))
	require.True(t, ok)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"1"}, seen)
}
