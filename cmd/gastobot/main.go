package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gastobot/internal/api"
	"gastobot/internal/api/handlers"
	"gastobot/internal/bot"
	"gastobot/internal/command"
	"gastobot/internal/expense"
	"gastobot/internal/recognize"
	"gastobot/internal/repository"
	"gastobot/internal/sheets"
	"gastobot/internal/telegram"
	"gastobot/pkg/auth"
	"gastobot/pkg/config"
	"gastobot/pkg/logger"
	"gastobot/pkg/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting gastobot")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	if err := expenseRepo.EnsureSchema(ctx); err != nil {
		appLogger.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	// The spreadsheet mirror is optional: deployments without credentials
	// just skip the advisory write.
	var mirror expense.Mirror
	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsJSON != "" {
		sheetMirror, err := sheets.NewMirror(ctx, &cfg.Sheets, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize spreadsheet mirror", zap.Error(err))
		}
		mirror = sheetMirror
	} else {
		appLogger.Warn("Spreadsheet mirror not configured, expenses will not be mirrored")
	}

	expenseService := expense.NewService(expenseRepo, mirror, appLogger)
	router := command.NewRouter(expenseRepo, expenseService, time.Now, appLogger)

	recognizer := recognize.NewClient(&cfg.OCR, appLogger)
	telegramClient := telegram.NewClient(&cfg.Telegram, appLogger)

	botHandler := bot.NewHandler(router, recognizer, telegramClient, expenseService, time.Now, appLogger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	webhookHandler := handlers.NewWebhookHandler(botHandler, telegramClient, cfg.Telegram.WebhookSecret, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseRepo, appLogger)
	authHandler := handlers.NewAuthHandler(jwtManager, &cfg.Auth, appLogger)

	app := api.SetupRouter(&cfg.Server, webhookHandler, expenseHandler, authHandler, jwtManager, appLogger)

	if cfg.Telegram.WebhookURL != "" {
		if err := telegramClient.SetWebhook(ctx, cfg.Telegram.WebhookURL+"/webhook", cfg.Telegram.WebhookSecret); err != nil {
			appLogger.Fatal("Failed to register webhook", zap.Error(err))
		}
	}

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
