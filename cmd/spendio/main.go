package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendio/internal/api"
	"spendio/internal/api/handlers"
	"spendio/internal/repository"
	"spendio/internal/service"
	"spendio/pkg/auth"
	"spendio/pkg/config"
	"spendio/pkg/logger"
	"spendio/pkg/postgres"

	"go.uber.org/zap"
)

// @title Spendio API
// @version 1.0
// @description Personal finance tracking: expenses, categories, budgets, savings goals and analytics.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const revocationPurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.IsDevelopment()); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Spendio", zap.String("env", cfg.App.Env), zap.String("version", cfg.App.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(&cfg.Database, appLogger); err != nil {
			appLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	secret := cfg.JWT.SecretKey
	if secret == "" {
		// Only reachable in development; config.Validate rejects it elsewhere.
		if secret, err = auth.RandomSecret(); err != nil {
			appLogger.Fatal("Failed to generate signing key", zap.Error(err))
		}
		appLogger.Warn("JWT_SECRET_KEY is not set, using an ephemeral key; tokens will not survive a restart")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost, cfg.Auth.HashConcurrency)

	var revoked service.RevocationStore
	if cfg.JWT.RevocationEnabled {
		tokenRepo := repository.NewTokenRepository(db, appLogger)
		revoked = tokenRepo
		go purgeRevokedTokens(ctx, tokenRepo, appLogger)
	}

	// Services
	authService := service.NewAuthService(userRepo, revoked, jwtManager, hasher, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	categoryService := service.NewCategoryService(categoryRepo, cfg.Category.AllowDefaultNameCollision, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, categoryRepo, appLogger)
	goalService := service.NewGoalService(goalRepo, appLogger)
	analyticsService := service.NewAnalyticsService(expenseRepo, categoryRepo, budgetRepo, goalRepo, appLogger)

	if _, err := categoryService.SeedDefaults(ctx); err != nil {
		appLogger.Fatal("Failed to seed default categories", zap.Error(err))
	}

	app := api.SetupRouter(api.RouterConfig{
		AllowOrigins:  cfg.Server.AllowOrigins,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		AuthRateLimit: cfg.Auth.RateLimitPerMinute,
	}, api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Expense:   handlers.NewExpenseHandler(expenseService, appLogger),
		Category:  handlers.NewCategoryHandler(categoryService, appLogger),
		Budget:    handlers.NewBudgetHandler(budgetService, appLogger),
		Goal:      handlers.NewGoalHandler(goalService, appLogger),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, appLogger),
		Health:    handlers.NewHealthHandler(db, cfg.App.Version, appLogger),
	}, authService, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

func purgeRevokedTokens(ctx context.Context, repo *repository.TokenRepository, logger *zap.Logger) {
	ticker := time.NewTicker(revocationPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.PurgeExpired(ctx, now.UTC())
			if err != nil {
				logger.Error("Failed to purge revoked tokens", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Purged expired revoked tokens", zap.Int64("count", n))
			}
		}
	}
}
