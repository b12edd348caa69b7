package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nextlogicai/nextlogic-be/internal/ai"
	"github.com/nextlogicai/nextlogic-be/internal/api"
	"github.com/nextlogicai/nextlogic-be/internal/auth"
	"github.com/nextlogicai/nextlogic-be/internal/config"
	"github.com/nextlogicai/nextlogic-be/internal/ledger"
	"github.com/nextlogicai/nextlogic-be/internal/logger"
	"github.com/nextlogicai/nextlogic-be/internal/models"
	"github.com/nextlogicai/nextlogic-be/internal/monitoring"
	"github.com/nextlogicai/nextlogic-be/internal/services"
	"github.com/nextlogicai/nextlogic-be/internal/store"
	"github.com/nextlogicai/nextlogic-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	auth.Init(cfg.JWTSecret)

	// Select the user store. The default is in-memory; accounts are lost on
	// restart by design. Setting DATABASE_PATH swaps in SQLite.
	var users store.UserStore
	if cfg.DatabasePath != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer sqliteStore.Close()
		users = sqliteStore
		log.Info().Str("path", cfg.DatabasePath).Msg("Using SQLite user store")
	} else {
		users = store.NewMemoryStore()
		log.Info().Msg("Using in-memory user store")
	}

	usageLog := ledger.New(ledger.DefaultCapacity)

	// Set up services
	userService := services.NewUserService(users)
	assignmentService := services.NewAssignmentService()
	monitorService := services.NewMonitorService(users, usageLog)

	seedDefaultAdmin(users, userService, cfg)

	// A missing AI credential degrades the remix endpoint instead of
	// crashing the process.
	var generator services.ContentGenerator
	if cfg.GeminiAPIKey != "" {
		generator = ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Warn().Msg("GEMINI_API_KEY is not set; AI remix is unavailable")
	}

	// Set up WebSocket hub for the live teacher feed
	hub := websocket.NewHub()
	go hub.Run()

	remixService := services.NewRemixService(users, usageLog, assignmentService, generator, hub)

	// Set up and run the background activity digest
	digest := monitoring.NewDigest(monitorService, cfg.DigestSchedule)
	go digest.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Users:          userService,
		Remix:          remixService,
		Monitor:        monitorService,
		Assignments:    assignmentService,
		UsageLog:       usageLog,
		Hub:            hub,
		UserLookup:     userService,
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.AppEnv == "production",
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	digest.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// seedDefaultAdmin creates a fallback teacher account when none exists so a
// fresh deployment is reachable. The credentials come from configuration and
// must be changed in production.
func seedDefaultAdmin(users store.UserStore, userService *services.UserService, cfg *config.Config) {
	hasAdmin, err := users.HasRole(models.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check for existing admin")
		return
	}
	if hasAdmin {
		return
	}

	if _, err := userService.Register("Admin", cfg.AdminEmail, cfg.AdminPassword, "TEACHER-DEFAULT"); err != nil {
		log.Error().Err(err).Msg("Failed to seed default admin")
		return
	}
	log.Info().Str("email", cfg.AdminEmail).Msg("Default admin created")
}
