package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"gastobot/internal/api/handlers"
	"gastobot/pkg/auth"
	"gastobot/pkg/config"
	"gastobot/pkg/middleware"
)

func SetupRouter(
	cfg *config.ServerConfig,
	webhookHandler *handlers.WebhookHandler,
	expenseHandler *handlers.ExpenseHandler,
	authHandler *handlers.AuthHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Telegram delivers updates here; authenticated by the webhook secret
	// header, not by JWT.
	app.Post("/webhook", webhookHandler.HandleUpdate)

	app.Post("/auth/token", authHandler.IssueToken)

	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	expenses := protected.Group("/expenses")
	expenses.Get("", expenseHandler.ListExpenses)
	expenses.Get("/summary", expenseHandler.GetSummary)

	return app
}
