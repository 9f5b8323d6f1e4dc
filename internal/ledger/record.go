package ledger

import (
	"fmt"
	"time"
)

// RecordKind tags the operation that produced a transaction record.
type RecordKind string

const (
	RecordOpening          RecordKind = "OPENING"
	RecordDeposit          RecordKind = "DEPOSIT"
	RecordWithdrawal       RecordKind = "WITHDRAWAL"
	RecordInterest         RecordKind = "INTEREST"
	RecordCharge           RecordKind = "CHARGE"
	RecordTransferSent     RecordKind = "TRANSFER_SENT"
	RecordTransferReceived RecordKind = "TRANSFER_RECEIVED"
)

// Record is a single immutable entry in an account's transaction history.
// Amount is signed: positive for credits, negative for debits. Balance is
// the account balance immediately after the record's operation was applied.
type Record struct {
	CreatedAt   time.Time
	ID          string
	Kind        RecordKind
	Description string
	Amount      float64
	Balance     float64
}

func (r Record) String() string {
	sign := ""
	if r.Amount >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("[%s] %s: %s%.2f | Balance: %.2f",
		r.CreatedAt.Format("02/01/2006 15:04:05"), r.Kind, sign, r.Amount, r.Balance)
}
