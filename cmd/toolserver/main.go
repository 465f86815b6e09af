package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"katalog-backend/internal/catalog"
	"katalog-backend/internal/config"
	"katalog-backend/internal/database"
	"katalog-backend/internal/logger"
	"katalog-backend/internal/toolstream"

	"go.uber.org/zap"
)

// Komut akışı varyantı: aynı motor, stdin/stdout üzerinden JSON-RPC.
func main() {
	cfg := config.Load()
	database.Init(cfg)

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalln(err)
	}
	defer zlog.Sync()

	loader := catalog.NewGormRecordLoader(database.DB, zlog)
	engine := catalog.NewEngine(loader, zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		zlog.Info("Sinyal alındı, kapatılıyor", zap.String("signal", sig.String()))
		cancel()
	}()

	srv := toolstream.NewServer(engine, zlog, os.Stdin, os.Stdout)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("Araç akışı durdu", zap.Error(err))
	}
}
