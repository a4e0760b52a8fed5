package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cardcompass/backend/config"
	httpDelivery "github.com/cardcompass/backend/internal/delivery/http"
	"github.com/cardcompass/backend/internal/domain"
	"github.com/cardcompass/backend/internal/infrastructure/catalog"
	"github.com/cardcompass/backend/internal/infrastructure/llm"
	"github.com/cardcompass/backend/internal/infrastructure/store"
	"github.com/cardcompass/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := buildLogger(cfg.Server.Environment)
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	sugar.Infow("starting CardCompass backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port)

	// Session store: ping the durable backend once at startup, fall back
	// to memory when it is not reachable. Runtime failures degrade the same
	// way via the failover wrapper.
	sessions := buildSessionStore(cfg, sugar)

	// Card catalog
	cards := catalog.NewMemoryCatalog()
	cards.Load(catalog.SeedCards())
	sugar.Infow("catalog loaded", "cards", cards.Size())

	// Dialogue service: a missing API key is a valid configuration; the
	// rule-based fallback then answers every turn.
	var dialogueClient domain.DialogueClient
	if cfg.LLM.APIKey != "" {
		dialogueClient = llm.NewClient(
			cfg.LLM.APIKey,
			cfg.LLM.BaseURL,
			cfg.LLM.Model,
			cfg.LLM.Timeout,
			cfg.RateLimit.LLM,
			sugar,
		)
		sugar.Infow("dialogue service configured", "base_url", cfg.LLM.BaseURL, "model", cfg.LLM.Model)
	} else {
		sugar.Warn("no LLM API key configured, using rule-based dialogue only")
	}
	dialogue := usecase.NewDialogueService(dialogueClient, cfg.LLM.Timeout, sugar)

	// Usecase layer
	scoring := usecase.NewScoringService()
	conversations := usecase.NewConversationService(sessions, cards, dialogue, scoring, sugar)
	comparisons := usecase.NewComparisonService(cards)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(conversations, comparisons, cards)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	sugar.Infow("server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		sugar.Fatalw("server failed", "error", err)
	}
}

// buildLogger picks the zap preset for the environment.
func buildLogger(environment string) *zap.Logger {
	if environment == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to build logger: %v", err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return logger
}

// buildSessionStore selects the persistence backend once at process start.
func buildSessionStore(cfg *config.Config, sugar *zap.SugaredLogger) domain.SessionStore {
	memory := store.NewMemoryStore()

	if cfg.Store.Type != "redis" {
		sugar.Info("using in-memory session store")
		return memory
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	durable, err := store.NewRedisStore(pingCtx, cfg.Store.RedisURL, cfg.Store.SessionTTL)
	if err != nil {
		sugar.Warnw("redis not reachable, falling back to in-memory session store", "error", err)
		return memory
	}

	sugar.Infow("using redis session store", "session_ttl", cfg.Store.SessionTTL)
	return store.NewFailoverStore(durable, memory, sugar)
}
