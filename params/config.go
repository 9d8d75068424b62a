package params

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type HTTP struct {
	Addr string
}

type Exchange struct {
	// Symbols is the set of currency pairs served by this process.
	// The symbol universe is fixed at startup; there is no runtime add/remove.
	Symbols []string

	// TradeHistoryCap bounds the per-symbol recent-trade history.
	TradeHistoryCap int

	// FirstSequence is the value the per-symbol trade sequence starts from;
	// the first recorded trade gets FirstSequence + 1.
	FirstSequence int64

	// OrderQueueDepth is the buffer size of each symbol's submission queue.
	// A full queue rejects the order rather than blocking the caller.
	OrderQueueDepth int
}

type Config struct {
	HTTP     HTTP
	Exchange Exchange
}

func Default() Config {
	return Config{
		HTTP: HTTP{
			Addr: ":8080",
		},
		Exchange: Exchange{
			Symbols:         []string{"BTCUSD"},
			TradeHistoryCap: 100,
			FirstSequence:   0,
			OrderQueueDepth: 1024,
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	// Comma-separated, e.g. "BTCUSD,ETHUSD"
	if symbols := os.Getenv("EXCHANGE_SYMBOLS"); symbols != "" {
		var pairs []string
		for _, s := range strings.Split(symbols, ",") {
			if s = strings.TrimSpace(s); s != "" {
				pairs = append(pairs, s)
			}
		}
		if len(pairs) > 0 {
			cfg.Exchange.Symbols = pairs
		}
	}

	if histCap := os.Getenv("TRADE_HISTORY_CAP"); histCap != "" {
		if n, err := strconv.Atoi(histCap); err == nil && n > 0 {
			cfg.Exchange.TradeHistoryCap = n
		}
	}

	if seq := os.Getenv("FIRST_SEQUENCE"); seq != "" {
		if n, err := strconv.ParseInt(seq, 10, 64); err == nil {
			cfg.Exchange.FirstSequence = n
		}
	}

	if depth := os.Getenv("ORDER_QUEUE_DEPTH"); depth != "" {
		if n, err := strconv.Atoi(depth); err == nil && n > 0 {
			cfg.Exchange.OrderQueueDepth = n
		}
	}

	return cfg
}
