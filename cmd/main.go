// Command polypaper runs a paper-trading session against a prediction-market
// feed. It maintains live market snapshots from the websocket stream and
// applies simulated trades to a virtual ledger, exposing both over a small
// status HTTP API.
//
// Usage:
//
//	polypaper --config config.yaml
//	polypaper --ws-url wss://feed.example.com/ws (uses CLI arguments)
//
// Endpoint URLs may also come from the POLYMARKET_API_URL and
// POLYMARKET_WS_URL environment variables.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"polypaper/config"
	"polypaper/internal/engine"
	"polypaper/internal/infra"
	"polypaper/internal/web"
)

func main() {
	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger := infra.NewLogger(conf.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.NewFromConfig(conf, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(ctx)
	})
	if conf.WebAddr != "" {
		server := web.NewServer(conf.WebAddr, eng, logger.Named("web"))
		g.Go(func() error {
			return server.Start(ctx)
		})
	}

	logger.Info("paper-trading session started",
		zap.String("ws_url", conf.WSURL),
		zap.String("balance", conf.InitialBalance.String()))

	if err := g.Wait(); err != nil {
		logger.Error("session ended with error", zap.Error(err))
		return
	}
	logger.Info("session ended")
}
