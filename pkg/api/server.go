package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Deeds67/orderbook/pkg/exchange"
	"github.com/Deeds67/orderbook/pkg/exchange/orderbook"
	"github.com/Deeds67/orderbook/pkg/exchange/trades"
)

const defaultTradeLimit = 100

// Server exposes the exchange over REST and streams executed trades over
// WebSocket.
type Server struct {
	ex     *exchange.Exchange
	router *mux.Router
	hub    *Hub
	log    *zap.SugaredLogger
}

func NewServer(ex *exchange.Exchange, log *zap.SugaredLogger) *Server {
	s := &Server{
		ex:     ex,
		router: mux.NewRouter(),
		hub:    NewHub(log),
		log:    log,
	}
	s.setupRoutes()
	ex.OnTrade(s.broadcastTrade)
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/v1/orders/limit", s.handleSubmitLimitOrder).Methods("POST")
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/{currencyPair}/orderbook", s.handleOrderBookSummary).Methods("GET")
	s.router.HandleFunc("/{currencyPair}/tradehistory", s.handleRecentTrades).Methods("GET")
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	go s.hub.Run()

	c := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.log.Infow("http_server_starting", "addr", addr)
	return http.ListenAndServe(addr, c.Handler(s.router))
}

// Handler returns the HTTP handler, used by tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleSubmitLimitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	side, ok := orderbook.ParseSide(req.Side)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid side")
		return
	}
	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid quantity")
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid price")
		return
	}

	order := orderbook.NewLimitOrder(side, quantity, price, req.Pair)
	id, accepted := s.ex.SubmitLimitOrder(order)
	if !accepted {
		respondError(w, http.StatusNotFound, "Order rejected")
		return
	}

	respondJSON(w, SubmitOrderResponse{ID: id})
}

func (s *Server) handleOrderBookSummary(w http.ResponseWriter, r *http.Request) {
	pair := mux.Vars(r)["currencyPair"]

	summary, ok := s.ex.OrderBookSummary(pair)
	if !ok {
		respondError(w, http.StatusNotFound, "Order book not found")
		return
	}

	respondJSON(w, OrderBookResponse{
		CurrencyPair: pair,
		Asks:         toPriceSummaryEntries(summary.Asks),
		Bids:         toPriceSummaryEntries(summary.Bids),
	})
}

func (s *Server) handleRecentTrades(w http.ResponseWriter, r *http.Request) {
	pair := mux.Vars(r)["currencyPair"]

	limit := defaultTradeLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	recent, ok := s.ex.RecentTrades(pair, limit)
	if !ok {
		respondError(w, http.StatusNotFound, "Trade history not found")
		return
	}

	out := make([]TradeInfo, len(recent))
	for i, t := range recent {
		out[i] = toTradeInfo(t)
	}
	respondJSON(w, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) broadcastTrade(t trades.Trade) {
	s.hub.BroadcastToChannel("trades:"+t.Symbol, TradeUpdate{Type: "trade", Trade: toTradeInfo(t)})
}

func toPriceSummaryEntries(levels []orderbook.PriceSummary) []PriceSummaryEntry {
	out := make([]PriceSummaryEntry, len(levels))
	for i, l := range levels {
		out[i] = PriceSummaryEntry{
			Price:      l.Price.String(),
			Quantity:   l.Quantity.String(),
			OrderCount: l.OrderCount,
		}
	}
	return out
}

func toTradeInfo(t trades.Trade) TradeInfo {
	return TradeInfo{
		Price:        t.Price.String(),
		Quantity:     t.Quantity.String(),
		CurrencyPair: t.Symbol,
		TradedAt:     t.TradedAt.UTC().Format(time.RFC3339Nano),
		TakerSide:    t.TakerSide.String(),
		SequenceID:   t.SequenceID,
		ID:           t.ID,
		QuoteVolume:  t.QuoteVolume.String(),
	}
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}
