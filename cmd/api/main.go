package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/flexfour/internal/analytics"
	"github.com/iamasit07/flexfour/internal/config"
	"github.com/iamasit07/flexfour/internal/repository/postgres"
	"github.com/iamasit07/flexfour/internal/repository/redis"
	"github.com/iamasit07/flexfour/internal/service/bot"
	"github.com/iamasit07/flexfour/internal/service/cleanup"
	"github.com/iamasit07/flexfour/internal/service/game"
	transportHttp "github.com/iamasit07/flexfour/internal/transport/http"
	"github.com/iamasit07/flexfour/internal/transport/websocket"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()

	// 1. Result storage (optional)
	var recorder game.ResultRecorder
	var stats transportHttp.StatsSource
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

		resultRepo := postgres.NewResultRepo(db)
		recorder = resultRepo
		stats = resultRepo
	} else {
		log.Println("DATABASE_URL not set, game results will not be stored")
	}

	// 2. Bot move cache (optional)
	var cache bot.MoveCache
	if cfg.RedisURL != "" {
		if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
			log.Printf("Failed to initialize Redis: %v", err)
		}
		defer redis.CloseRedis()
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			cache = redis.NewRedisCache(redis.RedisClient)
		}
	}

	// 3. Analytics (optional, nil-safe)
	events := analytics.NewAnalytics(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer events.Close()

	strategies := func(name string) bot.Strategy {
		if name == "" {
			name = cfg.BotStrategy
		}
		strategy := bot.NewStrategy(name, cfg.ParallelSearch, time.Now().UnixNano())
		if cache != nil {
			strategy = bot.WithCache(strategy, cache, cfg.MoveCacheTTL)
		}
		return strategy
	}

	// 4. Services
	sessionManager := game.NewSessionManager(strategies, recorder, events)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	cleanup.NewWorker(sessionManager, cfg.SessionIdleTimeout).Start(ctx)

	// 5. Transport
	gameHandler := transportHttp.NewGameHandler(sessionManager, strategies, stats)
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), sessionManager)
	router := transportHttp.NewRouter(gameHandler, wsHandler.HandleWebSocket)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (default strategy %s)", cfg.Port, cfg.BotStrategy)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
