package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/skedhub/sked-engine/pkg/config"
	"github.com/skedhub/sked-engine/pkg/handlers"
	"github.com/skedhub/sked-engine/pkg/llm"
	"github.com/skedhub/sked-engine/pkg/middleware"
	"github.com/skedhub/sked-engine/pkg/services"
	"github.com/skedhub/sked-engine/pkg/store"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
		zap.String("store_table", cfg.Store.Table))

	completionClient, err := llm.NewCompletionClient(&llm.Config{
		Provider:  cfg.LLM.Provider,
		Endpoint:  cfg.LLM.Endpoint,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		MaxTokens: cfg.LLM.MaxTokens,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	translator := services.NewTranslationService(completionClient, cfg.LLM.Timeout(), logger)

	gateway := store.NewClient(&store.Config{
		BaseURL:  cfg.Store.BaseURL,
		APIToken: cfg.Store.APIToken,
		Table:    cfg.Store.Table,
		Timeout:  cfg.Store.Timeout(),
	}, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewQueryHandler(gateway, logger, nil).RegisterRoutes(mux)
	handlers.NewAskHandler(translator, gateway, logger, nil).RegisterRoutes(mux)

	handler := middleware.RequestID(middleware.RequestLogger(logger)(mux))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting sked-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
