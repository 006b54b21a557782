package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/ballpark/internal/admin"
	"github.com/playmatatu/ballpark/internal/api"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/database"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/migrations"
	"github.com/playmatatu/ballpark/internal/redis"
	"github.com/playmatatu/ballpark/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		log.Println("[MIGRATE] Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Runtime overrides from the admin table win over the environment
	if err := admin.ApplyRuntimeConfigToConfig(ctx, db, cfg); err != nil {
		log.Printf("[CONFIG] Runtime config not applied: %v", err)
	}

	store := game.NewSQLStore(db, rdb, cfg.SnapshotTTL())
	gm := game.NewManager(ctx, game.TuningFromConfig(cfg), cfg.TickInterval(), cfg.MatchIdle(), store)
	defer gm.Shutdown()

	hub := ws.NewHub()
	go hub.Run(ctx)
	gm.SetPublisher(hub)

	ws.StartEventSubscriber(ctx, rdb, hub)
	game.StartIdleWorker(ctx, gm, rdb, cfg.IdlePollInterval(), cfg.MatchIdle())

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api.SetupRoutes(router, api.Deps{
		DB:      db,
		Config:  cfg,
		Manager: gm,
		Store:   store,
		Hub:     hub,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Starting Ballpark server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
