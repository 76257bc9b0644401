package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"gastobot/internal/models"
	"gastobot/pkg/config"
)

// Mirror appends stored expenses to a Google Sheet. It is advisory only:
// callers never roll back the authoritative store write when an append fails.
type Mirror struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
	logger        *zap.Logger
}

func NewMirror(ctx context.Context, cfg *config.SheetsConfig, logger *zap.Logger) (*Mirror, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Mirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// Append writes one [date, amount, description, month, year, category] row.
func (m *Mirror) Append(ctx context.Context, rec *models.ExpenseRecord) error {
	row := []interface{}{
		rec.Date.Format("2006-01-02"),
		rec.Amount.InexactFloat64(),
		rec.Description,
		rec.Month,
		rec.Year,
		string(rec.Category),
	}

	_, err := m.service.Spreadsheets.Values.
		Append(m.spreadsheetID, m.writeRange, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to spreadsheet: %w", err)
	}

	m.logger.Info("Expense mirrored to spreadsheet",
		zap.String("id", rec.ID.String()),
		zap.String("range", m.writeRange),
	)

	return nil
}
