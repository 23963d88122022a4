package models

import "github.com/google/uuid"

// AuthRequest is the body of sign up and sign in requests.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AdminRequest is the body of a request for the ADMIN role.
type AdminRequest struct {
	Secret string `json:"secret"`
}

// CardCreateRequest is the body of an administrator's card issue request.
// A nil MonthsQuantityUntilExpires selects the configured default.
type CardCreateRequest struct {
	OwnerID                    uuid.UUID `json:"ownerId"`
	MonthsQuantityUntilExpires *int      `json:"monthsQuantityUntilExpires,omitempty"`
}

// CardUpdateStatusRequest is used both by administrators to set a status
// and by owners to request one. IsRequested is meaningful only for the former.
type CardUpdateStatusRequest struct {
	Status      CardStatus `json:"status"`
	IsRequested bool       `json:"isRequested"`
}

// CardBalanceRequest changes the balance of a single card.
type CardBalanceRequest struct {
	Action BalanceAction `json:"action"`
	Amount int64         `json:"amount"`
}

// CardTransferRequest moves money between two cards of the caller.
type CardTransferRequest struct {
	From   uuid.UUID `json:"from"`
	To     uuid.UUID `json:"to"`
	Amount int64     `json:"amount"`
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
