package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gastobot/internal/expense"
	"gastobot/internal/models"
)

const usageGastei = "Use: gastei <valor> <descrição>"

const helpText = `Comandos disponíveis:
gastei <valor> <descrição> — registra um gasto
/total — total do mês atual
/total <mês> <ano> — total do mês informado
/mes <mês> <ano> — total do mês informado
/listar — gastos do mês atual
/categorias — totais por categoria no mês atual
/cat <categoria> [<mês> <ano>] — total de uma categoria
/ajuda — esta mensagem

Envie uma foto do recibo para registrar o gasto automaticamente.`

const usageHint = "Não entendi. Envie /ajuda para ver os comandos."

type Store interface {
	Query(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error)
}

type Recorder interface {
	Log(ctx context.Context, rec *models.ExpenseRecord) error
}

type handlerFunc func(ctx context.Context, chatID int64, args []string) (string, error)

type route struct {
	name   string
	handle handlerFunc
}

// Router interprets one typed command at a time. Commands are self-contained;
// no conversation state is kept between messages. Routes are an ordered
// dispatch table keyed by the first token.
type Router struct {
	store    Store
	recorder Recorder
	now      func() time.Time
	logger   *zap.Logger
	routes   []route
}

func NewRouter(store Store, recorder Recorder, now func() time.Time, logger *zap.Logger) *Router {
	r := &Router{
		store:    store,
		recorder: recorder,
		now:      now,
		logger:   logger,
	}
	r.routes = []route{
		{"gastei", r.handleManualEntry},
		{"/total", r.handleTotal},
		{"/mes", r.handleMonthTotal},
		{"/listar", r.handleList},
		{"/categorias", r.handleCategories},
		{"/cat", r.handleCategoryTotal},
		{"/ajuda", r.handleHelp},
		{"ajuda", r.handleHelp},
	}
	return r
}

// Dispatch resolves one command into a reply. Unrecognized input gets a usage
// hint, never an error; errors surface only from collaborator failures.
func (r *Router) Dispatch(ctx context.Context, chatID int64, text string) (string, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return usageHint, nil
	}

	key := strings.ToLower(tokens[0])
	for _, route := range r.routes {
		if route.name == key {
			return route.handle(ctx, chatID, tokens[1:])
		}
	}

	r.logger.Debug("Unrecognized command", zap.String("command", key))
	return usageHint, nil
}

func (r *Router) handleManualEntry(ctx context.Context, chatID int64, args []string) (string, error) {
	if len(args) < 2 {
		return usageGastei, nil
	}

	amount, err := decimal.NewFromString(strings.Replace(args[0], ",", ".", 1))
	if err != nil {
		return usageGastei, nil
	}

	description := strings.Join(args[1:], " ")
	now := r.now()

	rec, err := expense.Assemble(chatID, amount, description, now.Format("2006-01-02"), now)
	if err != nil {
		return usageGastei, nil
	}

	if err := r.recorder.Log(ctx, rec); err != nil {
		return "", err
	}

	return fmt.Sprintf("✅ Gasto salvo: %s — R$ %s (%s)",
		rec.Description, FormatAmount(rec.Amount), rec.Category), nil
}

func (r *Router) handleTotal(ctx context.Context, chatID int64, args []string) (string, error) {
	month, year, ok := r.resolvePeriod(args)
	if !ok {
		return "Use: /total ou /total <mês> <ano>", nil
	}
	return r.totalReply(ctx, chatID, month, year)
}

func (r *Router) handleMonthTotal(ctx context.Context, chatID int64, args []string) (string, error) {
	if len(args) != 2 {
		return "Use: /mes <mês> <ano>", nil
	}
	month, year, ok := parsePeriod(args[0], args[1])
	if !ok {
		return "Use: /mes <mês> <ano>", nil
	}
	return r.totalReply(ctx, chatID, month, year)
}

func (r *Router) totalReply(ctx context.Context, chatID int64, month, year int) (string, error) {
	records, err := r.store.Query(ctx, models.ExpenseFilter{ChatID: chatID, Month: month, Year: year})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total de %02d/%d: R$ %s", month, year, FormatAmount(expense.Sum(records))), nil
}

func (r *Router) handleList(ctx context.Context, chatID int64, _ []string) (string, error) {
	now := r.now()
	month, year := int(now.Month()), now.Year()

	records, err := r.store.Query(ctx, models.ExpenseFilter{ChatID: chatID, Month: month, Year: year})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("Nenhum gasto registrado em %02d/%d.", month, year), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Gastos de %02d/%d:\n", month, year)
	for _, rec := range records {
		fmt.Fprintf(&b, "%s — %s: R$ %s\n", rec.Date.Format("02/01"), rec.Description, FormatAmount(rec.Amount))
	}
	fmt.Fprintf(&b, "Total: R$ %s", FormatAmount(expense.Sum(records)))
	return b.String(), nil
}

func (r *Router) handleCategories(ctx context.Context, chatID int64, _ []string) (string, error) {
	now := r.now()
	month, year := int(now.Month()), now.Year()

	records, err := r.store.Query(ctx, models.ExpenseFilter{ChatID: chatID, Month: month, Year: year})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("Nenhum gasto registrado em %02d/%d.", month, year), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Gastos por categoria em %02d/%d:\n", month, year)
	for _, total := range expense.SumByCategory(records) {
		fmt.Fprintf(&b, "%s: R$ %s\n", total.Category, FormatAmount(total.Total))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (r *Router) handleCategoryTotal(ctx context.Context, chatID int64, args []string) (string, error) {
	if len(args) != 1 && len(args) != 3 {
		return "Use: /cat <categoria> [<mês> <ano>]", nil
	}

	category := args[0]
	month, year, ok := r.resolvePeriod(args[1:])
	if !ok {
		return "Use: /cat <categoria> [<mês> <ano>]", nil
	}

	records, err := r.store.Query(ctx, models.ExpenseFilter{
		ChatID:   chatID,
		Month:    month,
		Year:     year,
		Category: models.Category(category),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Total %s em %02d/%d: R$ %s",
		category, month, year, FormatAmount(expense.Sum(records))), nil
}

func (r *Router) handleHelp(_ context.Context, _ int64, _ []string) (string, error) {
	return helpText, nil
}

// resolvePeriod reads an optional "<month> <year>" pair, defaulting to the
// current period when absent.
func (r *Router) resolvePeriod(args []string) (month, year int, ok bool) {
	switch len(args) {
	case 0:
		now := r.now()
		return int(now.Month()), now.Year(), true
	case 2:
		return parsePeriod(args[0], args[1])
	default:
		return 0, 0, false
	}
}

func parsePeriod(monthArg, yearArg string) (month, year int, ok bool) {
	month, err := strconv.Atoi(monthArg)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(yearArg)
	if err != nil || year < 1 {
		return 0, 0, false
	}
	return month, year, true
}

// FormatAmount renders a decimal in Brazilian display form (comma separator).
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
