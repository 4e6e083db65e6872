package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"storysync/internal/client/config"
	"storysync/internal/client/gateway"
	"storysync/internal/client/services"
	"storysync/internal/client/session"
	"storysync/internal/client/store"
	"storysync/internal/client/syncd"
	"storysync/internal/logging"

	_ "modernc.org/sqlite"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewDefault()

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer db.Close()

	gw := gateway.NewHTTPClient(cfg.APIBaseURL, nil)
	st := store.New(db, gw, logger)

	sess, err := session.Load(cfg.SessionPath)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	syncService := services.NewSyncService(gw, st, sess, nil, logger)
	worker := syncd.NewWorker(gw, syncService, logger, cfg.SyncInterval)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
}
