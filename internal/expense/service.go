package expense

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gastobot/internal/models"
)

type Store interface {
	Insert(ctx context.Context, rec *models.ExpenseRecord) error
	Query(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error)
}

type Mirror interface {
	Append(ctx context.Context, rec *models.ExpenseRecord) error
}

// Service persists assembled records. The store write is authoritative; the
// spreadsheet mirror is advisory and appended afterwards with no rollback.
type Service struct {
	store  Store
	mirror Mirror
	logger *zap.Logger
}

func NewService(store Store, mirror Mirror, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		mirror: mirror,
		logger: logger,
	}
}

// Log writes the record to the store and then to the mirror. A mirror failure
// after a successful store write returns ErrMirrorWrite with the record still
// recorded; callers surface that partial success to the user.
func (s *Service) Log(ctx context.Context, rec *models.ExpenseRecord) error {
	if err := s.store.Insert(ctx, rec); err != nil {
		s.logger.Error("Failed to insert expense",
			zap.String("id", rec.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	s.logger.Info("Expense recorded",
		zap.String("id", rec.ID.String()),
		zap.String("amount", rec.Amount.String()),
		zap.String("category", string(rec.Category)),
	)

	if s.mirror == nil {
		return nil
	}

	if err := s.mirror.Append(ctx, rec); err != nil {
		s.logger.Warn("Failed to mirror expense to spreadsheet",
			zap.String("id", rec.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrMirrorWrite, err)
	}

	return nil
}
