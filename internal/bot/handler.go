package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gastobot/internal/command"
	"gastobot/internal/expense"
	"gastobot/internal/extract"
	"gastobot/internal/models"
	"gastobot/internal/recognize"
	"gastobot/internal/telegram"
)

const (
	replyUnreadable   = "❌ Não consegui ler o recibo."
	replyNoAmount     = "❌ Não consegui identificar o valor."
	replyStoreFailed  = "❌ Erro ao salvar o gasto. Tente novamente."
	replyMirrorFailed = "⚠️ Gasto salvo, mas não consegui atualizar a planilha."
	replyGeneric      = "❌ Algo deu errado. Tente novamente."
)

type FileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

type Recorder interface {
	Log(ctx context.Context, rec *models.ExpenseRecord) error
}

// Handler is the message-handling boundary: every incoming message produces
// exactly one reply, and every internal failure is converted to a friendly
// message here instead of leaking to the transport.
type Handler struct {
	router     *command.Router
	recognizer recognize.Recognizer
	files      FileDownloader
	recorder   Recorder
	now        func() time.Time
	logger     *zap.Logger
}

func NewHandler(
	router *command.Router,
	recognizer recognize.Recognizer,
	files FileDownloader,
	recorder Recorder,
	now func() time.Time,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		router:     router,
		recognizer: recognizer,
		files:      files,
		recorder:   recorder,
		now:        now,
		logger:     logger,
	}
}

// HandleMessage processes one chat message and returns the reply text.
func (h *Handler) HandleMessage(ctx context.Context, msg *telegram.Message) string {
	if photo := msg.LargestPhoto(); photo != nil {
		return h.handleReceipt(ctx, msg.Chat.ID, photo)
	}
	return h.handleText(ctx, msg.Chat.ID, msg.Text)
}

func (h *Handler) handleText(ctx context.Context, chatID int64, text string) string {
	reply, err := h.router.Dispatch(ctx, chatID, text)
	if err != nil {
		return h.replyForError(err)
	}
	return reply
}

func (h *Handler) handleReceipt(ctx context.Context, chatID int64, photo *telegram.PhotoSize) string {
	data, err := h.files.DownloadFile(ctx, photo.FileID)
	if err != nil {
		h.logger.Error("Failed to download receipt photo",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return replyUnreadable
	}

	text, err := h.recognizer.Recognize(ctx, data, "image/jpeg")
	if err != nil {
		if !errors.Is(err, recognize.ErrExtractionFailed) {
			h.logger.Error("Recognition service failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
		return replyUnreadable
	}

	lines := extract.NormalizeLines(text)
	if len(lines) == 0 {
		return replyUnreadable
	}

	amount, err := extract.ExtractAmount(text)
	if err != nil {
		return replyNoAmount
	}

	now := h.now()
	date := extract.ExtractDate(text, now)
	merchant := extract.ExtractMerchant(lines)

	rec, err := expense.Assemble(chatID, amount, merchant, date, now)
	if err != nil {
		return replyNoAmount
	}

	if err := h.recorder.Log(ctx, rec); err != nil {
		return h.replyForError(err)
	}

	return fmt.Sprintf("✅ Gasto salvo: %s — R$ %s (%s)",
		rec.Description, command.FormatAmount(rec.Amount), rec.Category)
}

func (h *Handler) replyForError(err error) string {
	switch {
	case errors.Is(err, expense.ErrMirrorWrite):
		return replyMirrorFailed
	case errors.Is(err, expense.ErrStoreWrite):
		return replyStoreFailed
	case errors.Is(err, expense.ErrInvalidAmount):
		return replyNoAmount
	default:
		h.logger.Error("Unhandled failure while processing message", zap.Error(err))
		return replyGeneric
	}
}
