package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/war-simulator/internal/auth"
	"github.com/freeeve/war-simulator/internal/config"
	"github.com/freeeve/war-simulator/internal/handler"
	"github.com/freeeve/war-simulator/internal/logger"
	"github.com/freeeve/war-simulator/internal/middleware"
	"github.com/freeeve/war-simulator/internal/repository"
	"github.com/freeeve/war-simulator/internal/repository/postgres"
	redisrepo "github.com/freeeve/war-simulator/internal/repository/redis"
	"github.com/freeeve/war-simulator/internal/service"
	"github.com/freeeve/war-simulator/pkg/combat"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Config load failed")
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Dev: cfg.Dev})
	log.Info().Str("sessionStore", cfg.SessionStore).Str("port", cfg.Port).Msg("Config loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer db.Close()

	// Session store
	var sessions repository.SessionStore = service.NewMemorySessionStore()
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer redisClient.Close()
		sessions = redisClient
	}

	// Repos
	userRepo := postgres.NewUserRepo(db)
	armyRepo := postgres.NewArmyRepo(db)

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	battleSvc := service.NewBattleService(armyRepo, sessions, wsHub)
	if cfg.BattleSeed != 0 {
		battleSvc.SetCoin(combat.NewRandomCoin(cfg.BattleSeed))
	}

	// Handlers
	battleHandler := handler.NewBattleHandler(battleSvc)
	userHandler := handler.NewUserHandler(userRepo)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Public
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("war-simulator"))
	})

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("GET /battle/session", battleHandler.CurrentSession)
	api.HandleFunc("GET /battle/{enemyId}", battleHandler.StartBattle)
	api.HandleFunc("GET /battle/{enemyId}/airBattle", battleHandler.AirBattle)
	api.HandleFunc("GET /battle/{enemyId}/surfaceBattle", battleHandler.SurfaceBattle)
	api.HandleFunc("GET /users/me", userHandler.GetMe)
	api.HandleFunc("GET /users/{id}", userHandler.GetUser)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.Recover, middleware.CORS("*"), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
