// Package app wires configuration, storage, Redis and the services together
// for the server and the admin CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshRaj112/jurnal-backend/internal/ai"
	"github.com/AnshRaj112/jurnal-backend/internal/config"
	"github.com/AnshRaj112/jurnal-backend/internal/database"
	"github.com/AnshRaj112/jurnal-backend/internal/handlers"
	"github.com/AnshRaj112/jurnal-backend/internal/services"
	"github.com/AnshRaj112/jurnal-backend/internal/store"
)

// App holds the open connections and the services built on them.
type App struct {
	Config *config.Config
	Store  store.Store
	AI     *ai.Client

	Sessions services.SessionStore
	Cache    services.RecapCache

	Auth      *services.AuthService
	Journals  *services.JournalService
	Summaries *services.SummaryService
	Weekly    *services.WeeklyService
	Insights  *services.InsightService
	Accounts  *services.AccountService

	postgres *sql.DB
	mongo    *mongo.Client
	redis    *redis.Client
}

// Open connects the configured backends. Redis is optional: without REDIS_URI
// sessions live in process memory and weekly recaps are not cached.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a := &App{Config: cfg}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis at %s", database.MaskURI(cfg.RedisURI))
		client, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redis = client
		a.Sessions = services.NewRedisSessions(client)
		a.Cache = services.NewRedisRecapCache(client, services.DefaultCacheTTL)
	} else {
		log.Println("⚠️  REDIS_URI not set: using in-memory sessions, weekly recap cache disabled")
		a.Sessions = services.NewMemorySessions()
	}

	a.AI = ai.NewClient(cfg.AI())
	if a.AI.Configured() {
		log.Printf("✅ AI summaries enabled (model %s)", a.AI.Model())
	} else {
		log.Println("⚠️  OPENAI_API_KEY not set: summaries will report a configuration error")
	}

	loc := cfg.Location()
	a.Auth = services.NewAuthService(a.Store, a.Sessions)
	a.Journals = services.NewJournalService(a.Store)
	a.Summaries = services.NewSummaryService(a.Store, a.AI, a.AI.Timeout())
	a.Weekly = services.NewWeeklyService(a.Store, a.AI, a.Cache, a.AI.Timeout(), loc)
	a.Insights = services.NewInsightService(a.Store, loc)
	a.Accounts = services.NewAccountService(a.Store, a.Sessions, a.Cache)
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.StorageBackend {
	case config.BackendPostgres:
		log.Printf("Connecting to PostgreSQL at %s", database.MaskURI(a.Config.PostgresURI))
		db, err := database.ConnectPostgres(a.Config.PostgresURI)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		a.postgres = db
		a.Store = store.NewPostgres(db)
	case config.BackendMongo:
		client, db, err := database.ConnectMongo(a.Config.MongoURI)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		a.mongo = client
		a.Store = store.NewMongo(db)
	case config.BackendMemory:
		log.Println("⚠️  STORAGE_BACKEND=memory: data is lost on restart")
		a.Store = store.NewMemory()
	}
	return nil
}

// Migrate creates tables (PostgreSQL) or indexes (MongoDB). A no-op for memory.
func (a *App) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	switch s := a.Store.(type) {
	case *store.Postgres:
		return database.InitPostgresTables(ctx, a.postgres)
	case *store.Mongo:
		return s.EnsureIndexes(ctx)
	}
	return nil
}

// Handler returns the HTTP handlers bound to the services.
func (a *App) Handler() *handlers.Handler {
	return &handlers.Handler{
		Auth:      a.Auth,
		Journals:  a.Journals,
		Summaries: a.Summaries,
		Weekly:    a.Weekly,
		Insights:  a.Insights,
		Accounts:  a.Accounts,
		Store:     a.Store,
	}
}

// Close releases every open connection.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
	if a.mongo != nil {
		if err := database.DisconnectMongo(a.mongo); err != nil {
			log.Printf("Error disconnecting MongoDB: %v", err)
		}
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			log.Printf("Error closing PostgreSQL: %v", err)
		}
	}
}
