package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/iho/minibank/internal/infrastructure/metrics"
)

// AccountKind distinguishes the two account categories.
type AccountKind string

const (
	KindCurrent AccountKind = "CURRENT"
	KindSavings AccountKind = "SAVINGS"
)

// Account holds a balance and its append-only transaction history.
// A single mutex guards both, so every balance change and its matching
// record are visible to readers as one unit.
type Account struct {
	mu      sync.Mutex
	id      int64
	owner   string
	kind    AccountKind
	balance float64
	history []Record
	ids     IDGenerator
	met     *metrics.Metrics
}

// ID returns the ledger-assigned account identifier.
func (a *Account) ID() int64 { return a.id }

// Owner returns the account holder's name.
func (a *Account) Owner() string { return a.owner }

// Kind returns the account category.
func (a *Account) Kind() AccountKind { return a.kind }

// Balance returns the current balance.
func (a *Account) Balance() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History returns a copy of the transaction history in append order.
// Mutating the returned slice does not affect the account.
func (a *Account) History() []Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Record, len(a.history))
	copy(out, a.history)
	return out
}

// Deposit adds amount to the balance and records a DEPOSIT entry.
func (a *Account) Deposit(amount float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.credit(amount); err != nil {
		a.met.OperationError("deposit", reasonFor(err))
		return err
	}
	a.addRecord(RecordDeposit, amount, "deposit")
	a.met.Operation("deposit")
	return nil
}

// Withdraw subtracts amount from the balance and records a WITHDRAWAL entry.
func (a *Account) Withdraw(amount float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.debit(amount); err != nil {
		a.met.OperationError("withdraw", reasonFor(err))
		return err
	}
	a.addRecord(RecordWithdrawal, -amount, "withdrawal")
	a.met.Operation("withdraw")
	return nil
}

// ApplyInterest credits balance*rate/100 and records an INTEREST entry.
// Category eligibility is the caller's concern, not the account's.
func (a *Account) ApplyInterest(rate float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if rate <= 0 {
		err := fmt.Errorf("%w: interest rate must be greater than zero", ErrInvalidAmount)
		a.met.OperationError("interest", reasonFor(err))
		return err
	}
	interest := a.balance * rate / 100
	a.balance += interest
	a.addRecord(RecordInterest, interest, fmt.Sprintf("interest applied at %.2f%%", rate))
	a.met.Operation("interest")
	return nil
}

// ApplyCharge debits charge and records a CHARGE entry.
func (a *Account) ApplyCharge(charge float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.debit(charge); err != nil {
		a.met.OperationError("charge", reasonFor(err))
		return err
	}
	a.addRecord(RecordCharge, -charge, "monthly charge applied")
	a.met.Operation("charge")
	return nil
}

func (a *Account) String() string {
	return fmt.Sprintf("ID:%d - %s (%s) - Balance: %.2f", a.id, a.owner, a.kind, a.Balance())
}

// credit adds amount to the balance without recording. Callers must hold mu.
func (a *Account) credit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.balance += amount
	return nil
}

// debit subtracts amount from the balance without recording. Callers must hold mu.
func (a *Account) debit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > a.balance {
		return ErrInsufficientFunds
	}
	a.balance -= amount
	return nil
}

// addRecord appends a history entry at the current balance. Callers must hold mu.
func (a *Account) addRecord(kind RecordKind, amount float64, desc string) {
	a.history = append(a.history, Record{
		ID:          a.ids.Generate(),
		Kind:        kind,
		Amount:      amount,
		Balance:     a.balance,
		CreatedAt:   time.Now().UTC(),
		Description: desc,
	})
}

// transferParty hooks for the transfer protocol.
func (a *Account) accountID() int64 { return a.id }
func (a *Account) lock()            { a.mu.Lock() }
func (a *Account) unlock()          { a.mu.Unlock() }
