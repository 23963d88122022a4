package models

import "github.com/google/uuid"

// CardView is the API representation of a card. The number is always masked.
type CardView struct {
	ID      uuid.UUID  `json:"id"`
	Number  string     `json:"number"`
	Date    string     `json:"date"`
	Status  CardStatus `json:"status"`
	Balance int64      `json:"balance"`
	Owner   string     `json:"owner"`
}

// NewCardView builds the view of card given its decrypted number.
func NewCardView(card Card, plainNumber string) CardView {
	return CardView{
		ID:      card.ID,
		Number:  MaskCardNumber(plainNumber),
		Date:    FormatValidity(card.ValidityPeriod),
		Status:  card.Status,
		Balance: card.Balance,
		Owner:   card.OwnerLogin,
	}
}

// Project returns a map that holds only the requested fields of v, keyed by
// their JSON names. Unknown field names are ignored. With no fields the
// whole view is returned.
func (v CardView) Project(fields []string) map[string]any {
	all := map[string]any{
		"id":      v.ID,
		"number":  v.Number,
		"date":    v.Date,
		"status":  v.Status,
		"balance": v.Balance,
		"owner":   v.Owner,
	}
	if len(fields) == 0 {
		return all
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if val, ok := all[f]; ok {
			out[f] = val
		}
	}
	return out
}

// BalanceView is the response body of balance queries.
type BalanceView struct {
	Balance int64 `json:"balance"`
}
