package categorize

import (
	"strings"

	"gastobot/internal/models"
)

// keywordGroup ties one category to the substrings that select it. Groups are
// evaluated in order and the first match wins, so more specific spending
// classes must come before broader ones.
type keywordGroup struct {
	category models.Category
	keywords []string
}

var groups = []keywordGroup{
	{models.CategoryFood, []string{
		"restaurante", "lanchonete", "burger", "pizza", "pizzaria",
		"padaria", "cafe", "café", "churrascaria", "sushi", "ifood",
		"hamburg", "pastel", "sorvete",
	}},
	{models.CategorySupermarket, []string{
		"mercado", "supermercado", "atacad", "carrefour", "assai",
		"hortifruti", "emporio", "empório",
	}},
	{models.CategoryTransport, []string{
		"posto", "combustivel", "combustível", "gasolina", "etanol",
		"uber", "99app", "shell", "ipiranga", "petrobras", "estacionamento",
	}},
	{models.CategoryHealth, []string{
		"farmacia", "farmácia", "drogaria", "drogasil", "clinica",
		"clínica", "hospital", "laboratorio", "laboratório",
	}},
	{models.CategoryShopping, []string{
		"shopping", "loja", "magazine", "americanas", "amazon",
		"renner", "riachuelo", "livraria",
	}},
}

// Categorize maps a free-text merchant description to a category by keyword
// containment on the lower-cased input. Descriptions matching no group fall
// through to Other.
func Categorize(description string) models.Category {
	lower := strings.ToLower(description)
	for _, group := range groups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.category
			}
		}
	}
	return models.CategoryOther
}
