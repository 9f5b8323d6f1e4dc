package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// rejectingParty stands in for an account whose credit step always fails,
// so the compensation path of the protocol can be exercised.
type rejectingParty struct {
	id        int64
	creditErr error
	debitErr  error
	records   []Record
}

func (p *rejectingParty) accountID() int64            { return p.id }
func (p *rejectingParty) lock()                       {}
func (p *rejectingParty) unlock()                     {}
func (p *rejectingParty) credit(amount float64) error { return p.creditErr }
func (p *rejectingParty) debit(amount float64) error  { return p.debitErr }
func (p *rejectingParty) addRecord(kind RecordKind, amount float64, desc string) {
	p.records = append(p.records, Record{Kind: kind, Amount: amount, Description: desc})
}

func TestLedger_TransferSuccess(t *testing.T) {
	l := newTestLedger()
	from := l.CreateAccount("alice", KindCurrent, 500)
	to := l.CreateAccount("bob", KindSavings, 100)

	err := l.Transfer(from.ID(), to.ID(), 200)
	require.NoError(t, err)

	require.Equal(t, 300.0, from.Balance())
	require.Equal(t, 300.0, to.Balance())

	fromHistory := from.History()
	toHistory := to.History()
	require.Len(t, fromHistory, 2, "source gains exactly one record")
	require.Len(t, toHistory, 2, "destination gains exactly one record")

	sent := fromHistory[1]
	require.Equal(t, RecordTransferSent, sent.Kind)
	require.Equal(t, -200.0, sent.Amount)
	require.Equal(t, 300.0, sent.Balance)
	require.Contains(t, sent.Description, "account 2")

	received := toHistory[1]
	require.Equal(t, RecordTransferReceived, received.Kind)
	require.Equal(t, 200.0, received.Amount)
	require.Equal(t, 300.0, received.Balance)
	require.Contains(t, received.Description, "account 1")
}

func TestLedger_TransferValidation(t *testing.T) {
	l := newTestLedger()
	from := l.CreateAccount("alice", KindCurrent, 500)
	to := l.CreateAccount("bob", KindCurrent, 100)

	tests := []struct {
		name      string
		fromID    int64
		toID      int64
		amount    float64
		expectErr error
	}{
		{
			name:      "zero amount",
			fromID:    from.ID(),
			toID:      to.ID(),
			amount:    0,
			expectErr: ErrInvalidAmount,
		},
		{
			name:      "negative amount",
			fromID:    from.ID(),
			toID:      to.ID(),
			amount:    -5,
			expectErr: ErrInvalidAmount,
		},
		{
			name:      "same account",
			fromID:    from.ID(),
			toID:      from.ID(),
			amount:    50,
			expectErr: ErrSameAccount,
		},
		{
			name:      "unknown source",
			fromID:    99,
			toID:      to.ID(),
			amount:    50,
			expectErr: ErrAccountNotFound,
		},
		{
			name:      "unknown destination",
			fromID:    from.ID(),
			toID:      99,
			amount:    50,
			expectErr: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Transfer(tt.fromID, tt.toID, tt.amount)
			require.ErrorIs(t, err, tt.expectErr)

			require.Equal(t, 500.0, from.Balance(), "no state change on rejected transfer")
			require.Equal(t, 100.0, to.Balance(), "no state change on rejected transfer")
			require.Len(t, from.History(), 1)
			require.Len(t, to.History(), 1)
		})
	}
}

func TestLedger_TransferInsufficientFunds(t *testing.T) {
	l := newTestLedger()
	from := l.CreateAccount("alice", KindCurrent, 100)
	to := l.CreateAccount("bob", KindCurrent, 100)

	err := l.Transfer(from.ID(), to.ID(), 150)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	require.Equal(t, 100.0, from.Balance())
	require.Equal(t, 100.0, to.Balance())
	require.Len(t, from.History(), 1)
	require.Len(t, to.History(), 1)
}

func TestLedger_TransferCompensatesFailedCredit(t *testing.T) {
	l := newTestLedger()
	from := l.CreateAccount("alice", KindCurrent, 500)

	creditErr := errors.New("destination rejected credit")
	dest := &rejectingParty{id: 99, creditErr: creditErr}

	err := l.transferBetween(from, dest, 200)
	require.ErrorIs(t, err, creditErr, "the destination's failure is surfaced")

	require.Equal(t, 500.0, from.Balance(), "source compensated back to pre-transfer balance")
	require.Len(t, from.History(), 1, "compensated transfer leaves no records")
	require.Empty(t, dest.records)
}

func TestLedger_TransferCompensationFailureEscalates(t *testing.T) {
	l := newTestLedger()

	creditErr := errors.New("destination rejected credit")
	compErr := errors.New("source rejected compensating credit")
	src := &rejectingParty{id: 1, creditErr: compErr}
	dest := &rejectingParty{id: 2, creditErr: creditErr}

	err := l.transferBetween(src, dest, 200)
	require.Error(t, err)
	require.ErrorIs(t, err, creditErr, "original credit failure retained")
	require.ErrorIs(t, err, compErr, "compensation failure retained")
}

func TestLedger_ConcurrentOpposingTransfers(t *testing.T) {
	l := newTestLedger()
	a := l.CreateAccount("alice", KindCurrent, 1000)
	b := l.CreateAccount("bob", KindCurrent, 1000)

	const transfersPerDirection = 100

	var wg sync.WaitGroup
	wg.Add(2 * transfersPerDirection)
	for i := 0; i < transfersPerDirection; i++ {
		go func() {
			defer wg.Done()
			if err := l.Transfer(a.ID(), b.ID(), 1); err != nil {
				t.Errorf("a->b transfer failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := l.Transfer(b.ID(), a.ID(), 1); err != nil {
				t.Errorf("b->a transfer failed: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 2000.0, a.Balance()+b.Balance(), "money is conserved")

	// opening plus one sent and one received record per transfer pair
	require.Len(t, a.History(), 1+2*transfersPerDirection)
	require.Len(t, b.History(), 1+2*transfersPerDirection)
}
