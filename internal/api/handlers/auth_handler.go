package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gastobot/internal/dto"
	"gastobot/pkg/auth"
	"gastobot/pkg/config"
)

type AuthHandler struct {
	jwtManager *auth.JWTManager
	cfg        *config.AuthConfig
	logger     *zap.Logger
}

func NewAuthHandler(jwtManager *auth.JWTManager, cfg *config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		cfg:        cfg,
		logger:     logger,
	}
}

// IssueToken exchanges the admin password for a bearer token guarding the
// reporting API.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if h.cfg.PasswordHash == "" || !auth.CheckPassword(h.cfg.PasswordHash, req.Password) {
		h.logger.Warn("Rejected token request")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := h.jwtManager.GenerateToken("admin")
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwtManager.GetTokenDuration().Seconds()),
	})
}
