package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/llm"
	"career-backend/internal/llm/cohere"
	"career-backend/internal/llm/gemini"
	"career-backend/internal/llm/openai"
	"career-backend/internal/recommend"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	localstore "career-backend/internal/shared/storage/object/local"
	s3store "career-backend/internal/shared/storage/object/s3"
	"career-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.Store
	UsersService     *users.Service
	Chain            *recommend.Chain
	RecommendService *recommend.Service
	UsersHandler     *users.Handler
	RecommendHandler *recommend.Handler

	closers []io.Closer
}

// Build prepares dependencies and the router. DB options come from DB_* env vars.
func Build(cfg config.Config) (*App, error) {
	return BuildWithOptions(cfg, db.OptionsFromEnv(db.DefaultServerOptions()))
}

// BuildWithOptions is Build with explicit database pool options.
func BuildWithOptions(cfg config.Config, dbOpts db.Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.DataStore) == "" {
		cfg.DataStore = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg, dbOpts)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB)
	}

	providers, closers := buildProviders(ctx, cfg)
	app.closers = append(app.closers, closers...)

	var primary users.Repo
	if app.DB != nil {
		primary = &users.PGRepo{DB: app.DB}
	}
	fallback := users.NewFileRepo(app.Store, cfg.DataFile)

	app.UsersService = users.NewService(primary, fallback)
	app.Chain = recommend.NewChain(cfg.ProviderTimeout, providers...)
	app.RecommendService = recommend.NewService(app.UsersService, app.Chain)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.RecommendHandler = recommend.NewHandler(app.RecommendService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		UserHandler:      app.UsersHandler,
		RecommendHandler: app.RecommendHandler,
		RateLimiter:      middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool and provider clients.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func buildDB(ctx context.Context, cfg config.Config, opts db.Options) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; users are stored in the flat file only")
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using flat file only: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		closeDB(sqlDB)
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using flat file only: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.DataStore {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("DATA_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.DataDir), nil
	}
}

// buildProviders returns the chain in priority order. Providers without a
// usable key are kept with a nil client so the chain records them as skipped.
func buildProviders(ctx context.Context, cfg config.Config) ([]recommend.Provider, []io.Closer) {
	var closers []io.Closer
	providers := []recommend.Provider{{Name: "cohere"}, {Name: "openai"}, {Name: "gemini"}}

	if c, err := cohere.NewClient(cfg.CohereAPIKey, cfg.CohereModel); err == nil {
		providers[0].Client = c
	} else {
		logProviderSkipped("cohere", err)
	}

	if c, err := openai.NewPromptClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, openai.WithTimeout(cfg.OpenAITimeout)); err == nil {
		providers[1].Client = c
	} else {
		logProviderSkipped("openai", err)
	}

	if c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err == nil {
		providers[2].Client = c
		closers = append(closers, c)
	} else {
		logProviderSkipped("gemini", err)
	}

	return providers, closers
}

func logProviderSkipped(name string, err error) {
	if errors.Is(err, llm.ErrNotConfigured) {
		log.Printf("bootstrap: %s provider not configured", name)
		return
	}
	log.Printf("bootstrap: %s provider unavailable: %v", name, err)
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
