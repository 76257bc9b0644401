package dto

type ExpenseResponse struct {
	ID          string `json:"id"`
	ChatID      int64  `json:"chat_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	CreatedAt   string `json:"created_at"`
}

type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type SummaryResponse struct {
	Month      int                     `json:"month"`
	Year       int                     `json:"year"`
	Total      string                  `json:"total"`
	Categories []CategoryTotalResponse `json:"categories"`
}
