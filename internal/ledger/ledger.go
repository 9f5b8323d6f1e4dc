package ledger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/minibank/internal/infrastructure/metrics"
)

// Ledger is the in-memory registry owning all accounts. Account identifiers
// are assigned from a counter guarded by the same lock as the registry map
// and are never reused.
type Ledger struct {
	mu       sync.Mutex
	accounts map[int64]*Account
	order    []int64
	nextID   int64
	ids      IDGenerator
	log      zerolog.Logger
	met      *metrics.Metrics
}

// New creates an empty ledger. A nil idGen falls back to ULIDs and a nil
// met to a private registry, so both are optional in tests.
func New(idGen IDGenerator, log zerolog.Logger, met *metrics.Metrics) *Ledger {
	if idGen == nil {
		idGen = NewULIDGenerator()
	}
	if met == nil {
		met = metrics.New(prometheus.NewRegistry())
	}
	return &Ledger{
		accounts: make(map[int64]*Account),
		ids:      idGen,
		log:      log,
		met:      met,
	}
}

// CreateAccount allocates the next identifier, stores a new account and
// records its OPENING entry. A negative initial balance is clamped to zero.
// Creation never fails.
func (l *Ledger) CreateAccount(owner string, kind AccountKind, initial float64) *Account {
	if initial < 0 {
		initial = 0
	}

	l.mu.Lock()
	l.nextID++
	a := &Account{
		id:      l.nextID,
		owner:   owner,
		kind:    kind,
		balance: initial,
		ids:     l.ids,
		met:     l.met,
	}
	a.addRecord(RecordOpening, initial, "account opened")
	l.accounts[a.id] = a
	l.order = append(l.order, a.id)
	l.mu.Unlock()

	l.met.AccountsCreated.Inc()
	l.log.Info().
		Int64("account_id", a.id).
		Str("owner", owner).
		Str("kind", string(kind)).
		Float64("balance", initial).
		Msg("account created")
	return a
}

// Account returns the account with the given id. Absence is a normal
// outcome, not an error.
func (l *Ledger) Account(id int64) (*Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	return a, ok
}

// Accounts returns all accounts in creation order.
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Account, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.accounts[id])
	}
	return out
}

// History returns the account's transaction history, or an empty slice if
// the id is unknown.
func (l *Ledger) History(id int64) []Record {
	a, ok := l.Account(id)
	if !ok {
		return nil
	}
	return a.History()
}

// BatchFailure reports one account the batch apply could not process.
type BatchFailure struct {
	AccountID int64
	Err       error
}

// BatchResult summarizes a batch interest/charge pass.
type BatchResult struct {
	Applied  int
	Failures []BatchFailure
}

// ApplyInterestAndCharges applies interest at savingsRate to every SAVINGS
// account and currentCharge to every CURRENT account. Per-account failures
// are collected and do not stop the batch.
func (l *Ledger) ApplyInterestAndCharges(savingsRate, currentCharge float64) BatchResult {
	var res BatchResult
	for _, a := range l.Accounts() {
		var err error
		if a.Kind() == KindSavings {
			err = a.ApplyInterest(savingsRate)
		} else {
			err = a.ApplyCharge(currentCharge)
		}
		if err != nil {
			res.Failures = append(res.Failures, BatchFailure{AccountID: a.ID(), Err: err})
			l.met.BatchFailures.Inc()
			l.log.Warn().
				Int64("account_id", a.ID()).
				Err(err).
				Msg("batch apply skipped account")
			continue
		}
		res.Applied++
	}
	l.log.Info().
		Int("applied", res.Applied).
		Int("failed", len(res.Failures)).
		Float64("savings_rate", savingsRate).
		Float64("current_charge", currentCharge).
		Msg("interest and charges applied")
	return res
}
