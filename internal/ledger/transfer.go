package ledger

import (
	"errors"
	"fmt"
)

// transferParty is the slice of account behavior the transfer protocol
// needs. Account implements it; tests substitute a party whose credit step
// fails to exercise the compensation path.
type transferParty interface {
	accountID() int64
	lock()
	unlock()
	credit(amount float64) error
	debit(amount float64) error
	addRecord(kind RecordKind, amount float64, desc string)
}

// Transfer moves amount from one account to another. On success each
// account gains exactly one history record (TRANSFER_SENT on the source,
// TRANSFER_RECEIVED on the destination). A failed destination credit is
// compensated by crediting the amount back to the source.
func (l *Ledger) Transfer(fromID, toID int64, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: transfer amount must be greater than zero", ErrInvalidAmount)
	}
	if fromID == toID {
		return ErrSameAccount
	}
	from, ok := l.Account(fromID)
	if !ok {
		return fmt.Errorf("%w: source account %d", ErrAccountNotFound, fromID)
	}
	to, ok := l.Account(toID)
	if !ok {
		return fmt.Errorf("%w: destination account %d", ErrAccountNotFound, toID)
	}

	if err := l.transferBetween(from, to, amount); err != nil {
		return err
	}

	l.met.TransfersCreated.Inc()
	l.met.TransferAmount.Observe(amount)
	l.log.Debug().
		Int64("from", fromID).
		Int64("to", toID).
		Float64("amount", amount).
		Msg("transfer completed")
	return nil
}

func (l *Ledger) transferBetween(from, to transferParty, amount float64) error {
	// Lock both parties in ascending id order so overlapping transfers
	// cannot deadlock, and hold the locks for the whole protocol.
	first, second := from, to
	if second.accountID() < first.accountID() {
		first, second = second, first
	}
	first.lock()
	defer first.unlock()
	second.lock()
	defer second.unlock()

	if err := from.debit(amount); err != nil {
		return err
	}

	if err := to.credit(amount); err != nil {
		if cerr := from.credit(amount); cerr != nil {
			l.met.TransferErrors.WithLabelValues("compensation_failed").Inc()
			l.log.Error().
				Int64("from", from.accountID()).
				Int64("to", to.accountID()).
				Float64("amount", amount).
				AnErr("deposit_error", err).
				AnErr("compensation_error", cerr).
				Msg("transfer compensation failed: source debited with no matching credit")
			return fmt.Errorf("transfer compensation failed for account %d: %w",
				from.accountID(), errors.Join(err, cerr))
		}
		l.met.TransfersCompensated.Inc()
		l.log.Warn().
			Int64("from", from.accountID()).
			Int64("to", to.accountID()).
			Float64("amount", amount).
			Err(err).
			Msg("transfer compensated after destination credit failed")
		return err
	}

	from.addRecord(RecordTransferSent, -amount, fmt.Sprintf("transfer to account %d", to.accountID()))
	to.addRecord(RecordTransferReceived, amount, fmt.Sprintf("transfer from account %d", from.accountID()))
	return nil
}
