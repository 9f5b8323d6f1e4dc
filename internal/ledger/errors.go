package ledger

import "errors"

var (
	// Account errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")

	// Transfer errors
	ErrSameAccount = errors.New("cannot transfer to same account")
)

// reasonFor maps sentinel errors to low-cardinality metric labels.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ErrSameAccount):
		return "same_account"
	default:
		return "other"
	}
}
