package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wellbeing-backend/internal/audit"
	"wellbeing-backend/internal/llm"
	"wellbeing-backend/internal/llm/chat"
	"wellbeing-backend/internal/services/health"
	"wellbeing-backend/internal/shared/config"
	"wellbeing-backend/internal/shared/server"
	"wellbeing-backend/internal/shared/server/middleware"
	"wellbeing-backend/internal/shared/storage/db"
	"wellbeing-backend/internal/shared/telemetry"
	"wellbeing-backend/internal/wellbeing"
)

const auditMemoryCapacity = 500

var (
	connectDB     = db.Connect
	runMigrations = db.RunMigrations
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Audit           audit.Store
	Service         *wellbeing.Service
	AnalysisHandler *wellbeing.Handler
	AuditHandler    *audit.Handler
	Health          *health.Service
}

// Build prepares dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := BuildService(cfg, buildAudit(sqlDB))
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Audit:           svc.Audit,
		Service:         svc,
		AnalysisHandler: wellbeing.NewHandler(svc),
		AuditHandler:    audit.NewHandler(svc.Audit),
	}
	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Health = health.NewService(func() string { return string(svc.Strategy()) }, pinger)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		AuditHandler:    app.AuditHandler,
		Health:          app.Health,
		Limiter:         middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{"strategy": string(svc.Strategy()), "env": cfg.Env, "audit": auditKind(sqlDB)})
	return app, nil
}

// Close releases resources owned by the app.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// BuildService assembles the analysis service with a client per configured provider.
// A nil store disables the provider call log.
func BuildService(cfg config.Config, store audit.Store) (*wellbeing.Service, error) {
	clients, err := buildClients(cfg)
	if err != nil {
		return nil, err
	}
	return &wellbeing.Service{
		Clients:       clients,
		Config:        cfg.ProviderConfig(),
		PromptVersion: cfg.PromptVersion,
		Audit:         store,
	}, nil
}

func buildClients(cfg config.Config) (map[wellbeing.Strategy]llm.Client, error) {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	providers := []struct {
		strategy wellbeing.Strategy
		key      string
		baseURL  string
		model    string
	}{
		{wellbeing.StrategyOpenAI, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel},
		{wellbeing.StrategyGroq, cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel},
	}

	clients := make(map[wellbeing.Strategy]llm.Client, len(providers))
	for _, p := range providers {
		if p.key == "" {
			continue
		}
		client, err := chat.NewClient(chat.Options{
			Name:        string(p.strategy),
			APIKey:      p.key,
			BaseURL:     p.baseURL,
			Model:       p.model,
			Temperature: cfg.LLMTemperature,
			MaxTokens:   cfg.LLMMaxTokens,
			Timeout:     timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build %s client: %w", p.strategy, err)
		}
		clients[p.strategy] = client
	}
	return clients, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.audit_memory", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	singleton := db.IsLambdaRuntime()
	if singleton {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = connectDB(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.audit_memory", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if err := runMigrations(ctx, sqlDB, db.ResolveURL(cfg.DatabaseURL).Dialect); err != nil {
		// The Lambda singleton outlives this build; only a pool opened here is closed.
		if !singleton {
			_ = sqlDB.Close()
		}
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.audit_memory", map[string]any{"reason": "migrations failed", "error": err})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildAudit(sqlDB *sql.DB) audit.Store {
	if sqlDB != nil {
		return audit.NewSQLStore(sqlDB)
	}
	return audit.NewMemoryStore(auditMemoryCapacity)
}

func auditKind(sqlDB *sql.DB) string {
	if sqlDB != nil {
		return "sql"
	}
	return "memory"
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
