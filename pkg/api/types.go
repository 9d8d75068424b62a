package api

// JSON types for the REST endpoints and WebSocket messages. All decimal
// fields are exact decimal strings, never floats.

// SubmitOrderRequest is the payload for POST /v1/orders/limit.
type SubmitOrderRequest struct {
	Side     string `json:"side"`     // case-insensitive BUY|SELL
	Quantity string `json:"quantity"` // exact decimal string
	Price    string `json:"price"`    // exact decimal string
	Pair     string `json:"pair"`
}

// SubmitOrderResponse carries the generated order id on acceptance.
type SubmitOrderResponse struct {
	ID string `json:"id"`
}

// PriceSummaryEntry is one aggregated price level.
type PriceSummaryEntry struct {
	Price      string `json:"price"`
	Quantity   string `json:"quantity"`
	OrderCount int    `json:"orderCount"`
}

// OrderBookResponse is the response for GET /{currencyPair}/orderbook.
type OrderBookResponse struct {
	CurrencyPair string              `json:"currencyPair"`
	Asks         []PriceSummaryEntry `json:"Asks"`
	Bids         []PriceSummaryEntry `json:"Bids"`
}

// TradeInfo is one executed trade in GET /{currencyPair}/tradehistory.
type TradeInfo struct {
	Price        string `json:"price"`
	Quantity     string `json:"quantity"`
	CurrencyPair string `json:"currencyPair"`
	TradedAt     string `json:"tradedAt"`
	TakerSide    string `json:"takerSide"`
	SequenceID   int64  `json:"sequenceId"`
	ID           string `json:"id"`
	QuoteVolume  string `json:"quoteVolume"`
}

// ErrorResponse is returned for every rejection and not-found result.
type ErrorResponse struct {
	Message string `json:"message"`
}

// WSSubscribeRequest is sent by a client to manage channel subscriptions,
// e.g. {"op":"subscribe","channels":["trades:BTCUSD"]}.
type WSSubscribeRequest struct {
	Op       string   `json:"op"` // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"`
}

// TradeUpdate is broadcast on channel "trades:<symbol>" for every fill.
type TradeUpdate struct {
	Type  string    `json:"type"` // always "trade"
	Trade TradeInfo `json:"data"`
}
