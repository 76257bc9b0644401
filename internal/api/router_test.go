package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastobot/internal/api/handlers"
	"gastobot/internal/bot"
	"gastobot/internal/command"
	"gastobot/internal/expense"
	"gastobot/internal/models"
	"gastobot/pkg/auth"
	"gastobot/pkg/config"
)

type stubStore struct{}

func (stubStore) Insert(_ context.Context, _ *models.ExpenseRecord) error { return nil }

func (stubStore) Query(_ context.Context, _ models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	return nil, nil
}

type stubRecognizer struct{}

func (stubRecognizer) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	return "", nil
}

type stubDownloader struct{}

func (stubDownloader) DownloadFile(_ context.Context, _ string) ([]byte, error) { return nil, nil }

type stubSender struct{}

func (stubSender) SendMessage(_ context.Context, _ int64, _ string) error { return nil }

func newTestApp(t *testing.T, serverCfg *config.ServerConfig) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	svc := expense.NewService(stubStore{}, nil, logger)
	router := command.NewRouter(stubStore{}, svc, time.Now, logger)
	botHandler := bot.NewHandler(router, stubRecognizer{}, stubDownloader{}, svc, time.Now, logger)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	webhookHandler := handlers.NewWebhookHandler(botHandler, stubSender{}, "", logger)
	expenseHandler := handlers.NewExpenseHandler(stubStore{}, logger)
	authHandler := handlers.NewAuthHandler(jwtManager, &config.AuthConfig{}, logger)

	return SetupRouter(serverCfg, webhookHandler, expenseHandler, authHandler, jwtManager, logger)
}

func TestSetupRouter_AppliesServerTimeouts(t *testing.T) {
	app := newTestApp(t, &config.ServerConfig{
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
	})

	assert.Equal(t, 15*time.Second, app.Config().ReadTimeout)
	assert.Equal(t, 20*time.Second, app.Config().WriteTimeout)
}

func TestSetupRouter_Routes(t *testing.T) {
	app := newTestApp(t, &config.ServerConfig{})

	t.Run("healthz is open", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("reporting api requires a token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/expenses?chat_id=10", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
