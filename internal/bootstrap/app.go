package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"docqa-backend/internal/answers"
	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
	"docqa-backend/internal/llm/extractive"
	"docqa-backend/internal/llm/gemini"
	"docqa-backend/internal/llm/ollama"
	"docqa-backend/internal/llm/openai"
	"docqa-backend/internal/render"
	"docqa-backend/internal/services/health"
	"docqa-backend/internal/shared/config"
	"docqa-backend/internal/shared/server"
	"docqa-backend/internal/shared/server/middleware"
	"docqa-backend/internal/shared/storage/db"
	mongostore "docqa-backend/internal/shared/storage/mongo"
	"docqa-backend/internal/shared/storage/object"
	localstore "docqa-backend/internal/shared/storage/object/local"
	s3store "docqa-backend/internal/shared/storage/object/s3"
	"docqa-backend/internal/summaries"
)

// App holds shared dependencies built once per process.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Mongo            *mongo.Client
	Store            object.ObjectStore
	DocumentsRepo    documents.Repo
	Capability       llm.Capability
	Renderer         *render.Renderer
	DocumentsService *documents.Service
	AnswersService   *answers.Service
	SummariesService *summaries.Service
	DocumentsHandler *documents.Handler
	AnswersHandler   *answers.Handler
	SummariesHandler *summaries.Handler
	Health           *health.Service

	closers []func(context.Context) error
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.DocumentStore) == "" {
		cfg.DocumentStore = "memory"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.LLMProvider) == "" {
		cfg.LLMProvider = "extractive"
	}
	ctx := context.Background()

	app := &App{Config: cfg}
	checks := map[string]health.Check{}

	repo, err := app.buildDocumentStore(ctx, checks)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.DocumentsRepo = repo

	capability, err := app.buildCapability(ctx)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.Capability = capability

	renderer, err := render.NewRenderer(render.Options{FontPath: app.Config.PDFFontPath})
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.Renderer = renderer

	app.DocumentsService = &documents.Service{Repo: repo}
	app.AnswersService = &answers.Service{Docs: app.DocumentsService, Capability: capability}
	app.SummariesService = &summaries.Service{Docs: app.DocumentsService, Capability: capability, Renderer: renderer}
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, app.Config.MaxUploadBytes)
	app.AnswersHandler = answers.NewHandler(app.AnswersService)
	app.SummariesHandler = summaries.NewHandler(app.SummariesService)
	app.Health = health.NewService(checks)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		AnswerHandler:   app.AnswersHandler,
		SummaryHandler:  app.SummariesHandler,
		Health:          app.Health,
		Limiter:         middleware.NewRateLimiter(nil),
	})

	log.Printf("bootstrap: document_store=%s llm_provider=%s", app.Config.DocumentStore, app.Config.LLMProvider)
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) buildDocumentStore(ctx context.Context, checks map[string]health.Check) (documents.Repo, error) {
	cfg := a.Config
	switch cfg.DocumentStore {
	case "mongo":
		client, err := mongostore.Connect(ctx, mongostore.Settings{
			URI:      cfg.MongoURI,
			User:     cfg.MongoUser,
			Password: cfg.MongoPassword,
			Host:     cfg.MongoHost,
		})
		if err != nil {
			return a.devFallback("mongo connect", err)
		}
		a.Mongo = client
		a.closers = append(a.closers, client.Disconnect)
		checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
		return documents.NewMongoRepo(client, cfg.MongoDatabase, cfg.MongoCollection), nil

	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return a.devFallback("database connect", err)
		}
		if cfg.RunMigrations {
			if err := db.RunMigrations(ctx, sqlDB); err != nil {
				sqlDB.Close()
				return a.devFallback("database migrations", err)
			}
		}
		a.DB = sqlDB
		if !db.IsLambdaRuntime() {
			a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		}
		checks["postgres"] = sqlDB.PingContext
		return &documents.PGRepo{DB: sqlDB}, nil

	case "object":
		store, err := buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.Store = store
		return &documents.ObjectRepo{Store: store}, nil

	case "memory":
		return documents.NewMemoryRepo(), nil

	default:
		return a.devFallback("document store", fmt.Errorf("unknown DOCUMENT_STORE %q", cfg.DocumentStore))
	}
}

func (a *App) devFallback(step string, err error) (documents.Repo, error) {
	if isDevLike(a.Config.Env) {
		log.Printf("bootstrap: %s failed; using in-memory document store: %v", step, err)
		a.Config.DocumentStore = "memory"
		return documents.NewMemoryRepo(), nil
	}
	return nil, fmt.Errorf("%s: %w", step, err)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for DOCUMENT_STORE=postgres")
	}
	if db.IsLambdaRuntime() {
		return db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	}
	return db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, fmt.Errorf("unknown OBJECT_STORE %q", cfg.ObjectStoreType)
	}
}

func (a *App) buildCapability(ctx context.Context) (llm.Capability, error) {
	capability, err := a.newCapability(ctx)
	if err != nil {
		if !isDevLike(a.Config.Env) {
			return nil, err
		}
		log.Printf("bootstrap: %s capability unavailable; using extractive: %v", a.Config.LLMProvider, err)
		a.Config.LLMProvider = "extractive"
		capability = extractive.New(a.Config.SummaryMaxSentences)
	}

	serialize := a.Config.LLMSerialize || !llm.IsConcurrencySafe(capability)
	capability = llm.Instrument(capability, a.Config.LLMProvider)
	if serialize {
		capability = llm.Serialize(capability)
	}
	log.Printf("bootstrap: capability=%s serialized=%t", a.Config.LLMProvider, serialize)
	return capability, nil
}

func (a *App) newCapability(ctx context.Context) (llm.Capability, error) {
	capability, closer, err := NewCapability(ctx, a.Config)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	return capability, nil
}

// NewCapability constructs the configured provider without instrumentation.
// The returned closer is nil when the provider holds no connection.
func NewCapability(ctx context.Context, cfg config.Config) (llm.Capability, func(context.Context) error, error) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMMaxInputChars)
		if err != nil {
			return nil, nil, err
		}
		return client, func(context.Context) error { return client.Close() }, nil
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel, cfg.LLMMaxInputChars)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case "ollama":
		client, err := ollama.NewClient(cfg.OllamaURL, cfg.LLMModel, cfg.LLMMaxInputChars)
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	case "extractive":
		return extractive.New(cfg.SummaryMaxSentences), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
