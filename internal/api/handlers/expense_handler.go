package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"gastobot/internal/dto"
	"gastobot/internal/expense"
	"gastobot/internal/models"
)

// ExpenseHandler serves the read-only reporting API over stored records.
type ExpenseHandler struct {
	store  expense.Store
	logger *zap.Logger
}

func NewExpenseHandler(store expense.Store, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		store:  store,
		logger: logger,
	}
}

func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records, err := h.store.Query(c.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to query expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to query expenses",
		})
	}

	responses := make([]dto.ExpenseResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toExpenseResponse(rec))
	}

	return c.JSON(responses)
}

func (h *ExpenseHandler) GetSummary(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records, err := h.store.Query(c.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to query expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to query expenses",
		})
	}

	totals := expense.SumByCategory(records)
	categories := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, total := range totals {
		categories = append(categories, dto.CategoryTotalResponse{
			Category: string(total.Category),
			Total:    total.Total.StringFixed(2),
		})
	}

	return c.JSON(dto.SummaryResponse{
		Month:      filter.Month,
		Year:       filter.Year,
		Total:      expense.Sum(records).StringFixed(2),
		Categories: categories,
	})
}

func filterFromQuery(c *fiber.Ctx) (models.ExpenseFilter, error) {
	chatID, err := strconv.ParseInt(c.Query("chat_id"), 10, 64)
	if err != nil {
		return models.ExpenseFilter{}, fiber.NewError(fiber.StatusBadRequest, "chat_id is required")
	}

	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())

	return models.ExpenseFilter{
		ChatID:   chatID,
		Month:    month,
		Year:     year,
		Category: models.Category(c.Query("category")),
	}, nil
}

func toExpenseResponse(rec models.ExpenseRecord) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          rec.ID.String(),
		ChatID:      rec.ChatID,
		Amount:      rec.Amount.StringFixed(2),
		Description: rec.Description,
		Category:    string(rec.Category),
		Date:        rec.Date.Format("2006-01-02"),
		Month:       rec.Month,
		Year:        rec.Year,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
}
