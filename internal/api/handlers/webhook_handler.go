package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gastobot/internal/bot"
	"gastobot/internal/telegram"
)

type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// WebhookHandler receives Telegram updates. It always answers 200: delivery
// retries are Telegram's job and every accepted message is answered in-chat,
// not over the webhook response.
type WebhookHandler struct {
	handler *bot.Handler
	sender  Sender
	secret  string
	logger  *zap.Logger
}

func NewWebhookHandler(handler *bot.Handler, sender Sender, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		handler: handler,
		sender:  sender,
		secret:  secret,
		logger:  logger,
	}
}

func (h *WebhookHandler) HandleUpdate(c *fiber.Ctx) error {
	if h.secret != "" && c.Get("X-Telegram-Bot-Api-Secret-Token") != h.secret {
		h.logger.Warn("Webhook secret mismatch")
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var update telegram.Update
	if err := json.Unmarshal(c.Body(), &update); err != nil {
		h.logger.Warn("Malformed webhook payload", zap.Error(err))
		return c.SendStatus(fiber.StatusOK)
	}

	if update.Message == nil {
		return c.SendStatus(fiber.StatusOK)
	}

	ctx := c.Context()
	reply := h.handler.HandleMessage(ctx, update.Message)

	if err := h.sender.SendMessage(ctx, update.Message.Chat.ID, reply); err != nil {
		h.logger.Error("Failed to send reply",
			zap.Int64("chat_id", update.Message.Chat.ID),
			zap.Error(err),
		)
	}

	return c.SendStatus(fiber.StatusOK)
}
