package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastobot/internal/bot"
	"gastobot/internal/command"
	"gastobot/internal/expense"
	"gastobot/internal/models"
)

type recordingSender struct {
	chatID int64
	text   string
	calls  int
}

func (s *recordingSender) SendMessage(_ context.Context, chatID int64, text string) error {
	s.chatID = chatID
	s.text = text
	s.calls++
	return nil
}

type stubStore struct {
	records []models.ExpenseRecord
}

func (s *stubStore) Insert(_ context.Context, rec *models.ExpenseRecord) error {
	s.records = append(s.records, *rec)
	return nil
}

func (s *stubStore) Query(_ context.Context, _ models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	return s.records, nil
}

type stubRecognizer struct{}

func (stubRecognizer) Recognize(_ context.Context, _ []byte, _ string) (string, error) {
	return "", nil
}

type stubDownloader struct{}

func (stubDownloader) DownloadFile(_ context.Context, _ string) ([]byte, error) {
	return nil, nil
}

func newTestApp(t *testing.T, secret string) (*fiber.App, *recordingSender, *stubStore) {
	t.Helper()
	logger := zap.NewNop()
	store := &stubStore{}
	svc := expense.NewService(store, nil, logger)
	router := command.NewRouter(store, svc, time.Now, logger)
	handler := bot.NewHandler(router, stubRecognizer{}, stubDownloader{}, svc, time.Now, logger)

	sender := &recordingSender{}
	webhook := NewWebhookHandler(handler, sender, secret, logger)

	app := fiber.New()
	app.Post("/webhook", webhook.HandleUpdate)
	return app, sender, store
}

func TestHandleUpdate_CommandMessage(t *testing.T) {
	app, sender, store := newTestApp(t, "")

	body := `{"update_id":1,"message":{"message_id":5,"chat":{"id":1234},"text":"gastei 50 mercado"}}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, int64(1234), sender.chatID)
	assert.Contains(t, sender.text, "Gasto salvo")
	assert.Len(t, store.records, 1)
}

func TestHandleUpdate_SecretMismatch(t *testing.T) {
	app, sender, _ := newTestApp(t, "hook-secret")

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Telegram-Bot-Api-Secret-Token", "wrong")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, sender.calls)
}

func TestHandleUpdate_NonMessageUpdate(t *testing.T) {
	app, sender, _ := newTestApp(t, "")

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"update_id":2}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, sender.calls)
}

func TestHandleUpdate_MalformedBodyStillAccepted(t *testing.T) {
	app, sender, _ := newTestApp(t, "")

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, sender.calls)
}
