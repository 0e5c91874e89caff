package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/humzahanif/Advanced-Translation-Agent/internal/config"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/db"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/handler"
	transport "github.com/humzahanif/Advanced-Translation-Agent/internal/http"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/logger"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/repository"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/service/ai"
	"github.com/humzahanif/Advanced-Translation-Agent/internal/snowflake"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(1); err != nil {
		log.Fatalf("init snowflake: %v", err)
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer dbConn.Close()

	if err := os.MkdirAll(cfg.AudioDir, 0o755); err != nil {
		log.Fatalf("create audio dir: %v", err)
	}

	translationRepo := repository.NewTranslationRepository(dbConn)
	artifactRepo := repository.NewArtifactRepository(dbConn)
	settingsRepo := repository.NewSettingsRepository(dbConn)

	rateLimiter := ai.NewRateLimiter(loadRateLimit(settingsRepo))

	authService := service.NewAuthService(settingsRepo)
	settingsService := service.NewSettingsService(settingsRepo, rateLimiter)
	translationService := service.NewTranslationService(translationRepo, settingsRepo, rateLimiter)
	historyService := service.NewHistoryService(translationRepo, artifactRepo)
	speechService := service.NewSpeechService(translationRepo, artifactRepo, settingsRepo, cfg.AudioDir)

	authHandler := handler.NewAuthHandler(authService)
	translateHandler := handler.NewTranslateHandler(translationService, speechService)
	speechHandler := handler.NewSpeechHandler(speechService)
	historyHandler := handler.NewHistoryHandler(historyService, speechService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	router := transport.NewRouter(
		authService,
		authHandler,
		translateHandler,
		speechHandler,
		historyHandler,
		settingsHandler,
		cfg.StaticDir,
	)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down", "module", "main", "action", "shutdown", "resource", "server", "result", "ok")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	logger.Info("server starting", "module", "main", "action", "start", "resource", "server", "result", "ok", "addr", cfg.Addr, "app", config.AppName, "version", config.AppVersion)

	if err := router.Start(cfg.Addr); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

// loadRateLimit reads the configured QPS limit, falling back to the default.
func loadRateLimit(repo repository.SettingsRepository) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	setting, err := repo.Get(ctx, service.KeyAIRateLimit)
	if err != nil || setting == nil || setting.Value == "" {
		return ai.DefaultRateLimit
	}
	qps, err := strconv.Atoi(setting.Value)
	if err != nil || qps <= 0 {
		return ai.DefaultRateLimit
	}
	return qps
}
