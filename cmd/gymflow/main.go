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

	"github.com/MatheusRocha-X/GymFlow-sub000/internal/api"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/config"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/database"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/engine"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/motivation"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/notify"
	"github.com/MatheusRocha-X/GymFlow-sub000/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Repositories
	exerciseRepo := repository.NewExerciseRepository(db)
	routineRepo := repository.NewRoutineRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	hydrationRepo := repository.NewHydrationRepository(db)
	telegramRepo := repository.NewTelegramSettingsRepository(db)
	userSettingsRepo := repository.NewUserSettingsRepository(db)

	// Daily motivational message source (AI generation is optional)
	motivator := motivation.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
	if cfg.AIAPIKey != "" {
		log.Printf("AI motivation enabled (model: %s)", cfg.AIModel)
	}

	newSender := func(token string) (engine.Sender, error) {
		return notify.New(token)
	}

	// Reminder engine. Start is a no-op until telegram is configured;
	// the settings handler arms it once setup completes.
	eng := engine.New(reminderRepo, telegramRepo, newSender, motivator, cfg.TelegramToken)
	if err := eng.Start(ctx); err != nil {
		log.Printf("Failed to start reminder engine: %v", err)
	}

	server := api.NewServer(api.Deps{
		Exercises:        exerciseRepo,
		Routines:         routineRepo,
		Sessions:         sessionRepo,
		Reminders:        reminderRepo,
		Hydration:        hydrationRepo,
		TelegramSettings: telegramRepo,
		UserSettings:     userSettingsRepo,
		Engine:           eng,
		NewSender:        newSender,
		FallbackToken:    cfg.TelegramToken,
		CronSecret:       cfg.CronSecret,
	})

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}
		eng.Stop()
		cancel()
	}()

	log.Printf("GymFlow API listening on %s", cfg.ListenAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
}
