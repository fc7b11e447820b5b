package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/adelr/rolodex-be/internal/ai"
	"github.com/adelr/rolodex-be/internal/api"
	"github.com/adelr/rolodex-be/internal/auth"
	"github.com/adelr/rolodex-be/internal/cache"
	"github.com/adelr/rolodex-be/internal/config"
	"github.com/adelr/rolodex-be/internal/logger"
	"github.com/adelr/rolodex-be/internal/models"
	"github.com/adelr/rolodex-be/internal/monitoring"
	"github.com/adelr/rolodex-be/internal/services"
	"github.com/adelr/rolodex-be/internal/storage"
	"github.com/adelr/rolodex-be/internal/websocket"
)

// repositories bundles the per-collection stores for one backend choice.
type repositories struct {
	people storage.Repository[*models.Person]
	users  storage.Repository[*models.User]
	events storage.Repository[*models.Event]
	close  func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.AppEnv)

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to initialize storage")
	}
	defer repos.close()
	log.Info().Str("backend", cfg.StorageBackend).Msg("Storage initialized")

	// Optional Redis cache for generated blueprints; continue without it.
	var blueprintCache cache.Cache
	if cfg.RedisURL != "" {
		blueprintCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without blueprint cache")
			blueprintCache = nil
		} else {
			log.Info().Msg("Connected to Redis cache")
		}
	}

	// The text generator is only wired when a credential was configured.
	var generator ai.TextGenerator
	if cfg.AIEnabled() {
		generator = ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Info().Str("model", cfg.GeminiModel).Msg("AI features enabled")
	} else {
		log.Warn().Msg("AI features disabled: GEMINI_API_KEY not set")
	}

	// Set up WebSocket hub for the live activity feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(repos.events, hub)
	personService := services.NewPersonService(repos.people, eventService)
	authService := services.NewAuthService(repos.users, eventService)
	aiService := services.NewAIService(generator, blueprintCache)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	// Scheduled data snapshots only make sense for the file backend.
	var snapshots *monitoring.SnapshotScheduler
	if cfg.StorageBackend == config.BackendFile {
		snapshots, err = monitoring.NewSnapshotScheduler(cfg.SnapshotCron, cfg.DataDir, cfg.SnapshotDir, cfg.SnapshotKeep)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize snapshot scheduler")
		}
		go snapshots.Run()
	}

	router := api.NewRouter(cfg, jwtManager, hub, personService, authService, aiService, eventService)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if snapshots != nil {
		snapshots.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// buildRepositories constructs the Person/User/Event stores for the
// configured backend. The choice is made once here; nothing downstream
// branches on it again.
func buildRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.StorageBackend {
	case config.BackendMongo:
		client, err := storage.ConnectMongo(context.Background(), cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		return &repositories{
			people: storage.NewMongoRepository(db.Collection("people"), models.PersonFromDocument),
			users:  storage.NewMongoRepository(db.Collection("users"), models.UserFromDocument),
			events: storage.NewMongoRepository(db.Collection("events"), models.EventFromDocument),
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			},
		}, nil

	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		people, err := storage.NewSQLiteRepository(db, "people", models.PersonFromDocument)
		if err != nil {
			return nil, err
		}
		users, err := storage.NewSQLiteRepository(db, "users", models.UserFromDocument)
		if err != nil {
			return nil, err
		}
		events, err := storage.NewSQLiteRepository(db, "events", models.EventFromDocument)
		if err != nil {
			return nil, err
		}
		return &repositories{
			people: people,
			users:  users,
			events: events,
			close:  func() { _ = db.Close() },
		}, nil

	default: // config.BackendFile
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		people, err := storage.NewFileRepository(cfg.DataDir+"/people.json", models.PersonFromDocument)
		if err != nil {
			return nil, err
		}
		users, err := storage.NewFileRepository(cfg.DataDir+"/users.json", models.UserFromDocument)
		if err != nil {
			return nil, err
		}
		events, err := storage.NewFileRepository(cfg.DataDir+"/events.json", models.EventFromDocument)
		if err != nil {
			return nil, err
		}
		return &repositories{
			people: people,
			users:  users,
			events: events,
			close:  func() {},
		}, nil
	}
}
