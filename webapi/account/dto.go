package account

// CreateAccountRequest is the payload for opening an account.
type CreateAccountRequest struct {
	UserID  string  `json:"user_id" validate:"required,uuid4"`
	Balance float64 `json:"balance"`
}

// UpdateAccountRequest is the payload for the administrative balance
// override.
type UpdateAccountRequest struct {
	Balance *float64 `json:"balance" validate:"required"`
}

// MovementRequest is the payload for deposits and withdrawals.
type MovementRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
}
