package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Deeds67/orderbook/params"
	"github.com/Deeds67/orderbook/pkg/api"
	"github.com/Deeds67/orderbook/pkg/exchange"
	"github.com/Deeds67/orderbook/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	logger, err := util.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ex := exchange.New(cfg.Exchange, sugar)
	server := api.NewServer(ex, sugar)

	go func() {
		if err := server.Start(cfg.HTTP.Addr); err != nil {
			sugar.Fatalw("http_server_failed", "err", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	sugar.Infow("shutdown_signal_received")
	ex.Close()
}
