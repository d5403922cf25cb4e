package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/guileen/sqlitefdw/catalog"
	"github.com/guileen/sqlitefdw/engine/sqlite"
	"github.com/guileen/sqlitefdw/logger"
	"github.com/guileen/sqlitefdw/protocol/api"
	"github.com/guileen/sqlitefdw/storage"
)

func main() {
	var (
		addr    = flag.String("addr", ":8080", "HTTP address to listen on")
		dataDir = flag.String("data-dir", "./data", "Catalog data directory path")
	)

	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	catalogPath := filepath.Join(*dataDir, "catalog")
	config := storage.DefaultPebbleConfig(catalogPath)
	kvStore, err := storage.NewPebbleKV(config)
	if err != nil {
		log.Fatalf("Failed to create pebble kv: %v", err)
	}
	defer kvStore.Close()

	mgr := catalog.NewManagerWithKV(kvStore)
	if err := mgr.Load(context.Background()); err != nil {
		logger.Warn("failed to load catalog definitions", "error", err)
	}

	handler := api.NewRESTHandler(mgr, sqlite.Open)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	handler.RegisterRoutes(r)

	server := &http.Server{
		Addr:    *addr,
		Handler: r,
	}

	go func() {
		logger.Info("sqlitefdw listening", "addr", *addr, "data_dir", *dataDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
