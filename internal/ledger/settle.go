package ledger

import (
	"time"

	"fjacquet/debtsolver/internal/logging"
	"fjacquet/debtsolver/internal/models"
	"fjacquet/debtsolver/internal/solvererror"

	"github.com/shopspring/decimal"
)

// SettleAll settles the ledger searching zero-sum groups of every size that
// can occur, i.e. up to one less than the number of parties with a balance.
func (l *Ledger) SettleAll() ([]models.Transaction, error) {
	return l.Settle(l.openParties() - 1)
}

// Settle returns payments that bring every balance to zero and applies them
// to the ledger.
//
// Groups of 2..maxGroupSize parties whose balances sum to zero are settled
// first, smallest groups first, each with at most size-1 payments. Whatever
// remains is matched greedily, debtor by debtor. This is a heuristic: the
// search cost grows combinatorially with maxGroupSize and the result is not
// guaranteed to be the global minimum.
//
// An unbalanced ledger is rejected with *solvererror.UnbalancedLedgerError
// and left untouched. Settle panics if balances remain after matching, which
// cannot happen for a ledger that passed the initial check.
func (l *Ledger) Settle(maxGroupSize int) ([]models.Transaction, error) {
	if sum := l.Sum(); !sum.IsZero() {
		l.logger.Error("Refusing to settle unbalanced ledger", logging.F(logging.FieldAmount, sum.String()))
		return nil, &solvererror.UnbalancedLedgerError{Sum: sum.String()}
	}

	start := time.Now()
	work := l.snapshot()
	var payments []models.Transaction

	tried := 0
	exhausted := false
	for size := 2; size <= maxGroupSize && !exhausted; size++ {
		open := work.open()
		if len(open) < size {
			break
		}
		members := make([]models.PartyID, size)
		forEachCombination(len(open), size, func(idx []int) bool {
			if l.maxCombinations > 0 && tried >= l.maxCombinations {
				exhausted = true
				return false
			}
			tried++
			for i, j := range idx {
				members[i] = open[j]
			}
			if !work.isZeroSumGroup(members) {
				return true
			}
			debtors, creditors := work.split(members)
			group := work.clear(debtors, creditors)
			l.logger.Debug("Settled zero-sum group",
				logging.F(logging.FieldGroupSize, size),
				logging.F(logging.FieldParties, partyNames(members)),
				logging.F(logging.FieldPayments, len(group)))
			payments = append(payments, group...)
			return true
		})
	}
	if exhausted {
		l.logger.Warn("Combination budget exhausted, matching remaining balances greedily",
			logging.F(logging.FieldCombination, tried))
	}

	debtors, creditors := work.split(work.open())
	payments = append(payments, work.clear(debtors, creditors)...)

	work.mustBeSettled()
	l.commit(work)

	l.logger.Info("Ledger settled",
		logging.F(logging.FieldParties, len(work.parties)),
		logging.F(logging.FieldPayments, len(payments)),
		logging.F(logging.FieldGroupSize, maxGroupSize),
		logging.F(logging.FieldCombination, tried),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return payments, nil
}

// openParties counts parties with a non-zero balance.
func (l *Ledger) openParties() int {
	n := 0
	for _, party := range l.order {
		if !l.balances[party].IsZero() {
			n++
		}
	}
	return n
}

// workingSet is the copy of the open balances that Settle mutates. The
// ledger itself is only touched once settlement has succeeded.
type workingSet struct {
	currency models.Currency
	parties  []models.PartyID
	balances map[models.PartyID]decimal.Decimal
}

func (l *Ledger) snapshot() *workingSet {
	work := &workingSet{
		currency: l.currency,
		balances: make(map[models.PartyID]decimal.Decimal),
	}
	for _, party := range l.order {
		if balance := l.balances[party]; !balance.IsZero() {
			work.parties = append(work.parties, party)
			work.balances[party] = balance
		}
	}
	return work
}

func (l *Ledger) commit(work *workingSet) {
	for _, party := range work.parties {
		l.balances[party] = work.balances[party]
	}
}

// open returns the parties that still have a balance, in ledger order.
func (w *workingSet) open() []models.PartyID {
	open := make([]models.PartyID, 0, len(w.parties))
	for _, party := range w.parties {
		if !w.balances[party].IsZero() {
			open = append(open, party)
		}
	}
	return open
}

// mustBeSettled panics with *solvererror.UnbalancedLedgerError naming the
// first party whose balance is not zero.
func (w *workingSet) mustBeSettled() {
	for _, party := range w.parties {
		if balance := w.balances[party]; !balance.IsZero() {
			panic(&solvererror.UnbalancedLedgerError{
				Sum:   models.NewMoney(balance, w.currency).String(),
				Party: string(party),
			})
		}
	}
}

// isZeroSumGroup reports whether every member still has a balance and the
// balances cancel out.
func (w *workingSet) isZeroSumGroup(members []models.PartyID) bool {
	total := decimal.Zero
	for _, party := range members {
		balance := w.balances[party]
		if balance.IsZero() {
			return false
		}
		total = total.Add(balance)
	}
	return total.IsZero()
}

func (w *workingSet) split(parties []models.PartyID) (debtors, creditors []models.PartyID) {
	for _, party := range parties {
		balance := w.balances[party]
		switch {
		case balance.IsNegative():
			debtors = append(debtors, party)
		case balance.IsPositive():
			creditors = append(creditors, party)
		}
	}
	return debtors, creditors
}

// clear pays creditors from debtors in order. Each payment fully clears the
// debtor or the creditor, so at most len(debtors)+len(creditors)-1 payments
// are made.
func (w *workingSet) clear(debtors, creditors []models.PartyID) []models.Transaction {
	var payments []models.Transaction
	for _, debtor := range debtors {
		for _, creditor := range creditors {
			debt := w.balances[debtor]
			if !debt.IsNegative() {
				break
			}
			credit := w.balances[creditor]
			if !credit.IsPositive() {
				continue
			}
			amount := decimal.Min(debt.Neg(), credit)
			w.balances[debtor] = debt.Add(amount)
			w.balances[creditor] = credit.Sub(amount)
			payments = append(payments, models.Transaction{
				Debtor:   debtor,
				Creditor: creditor,
				Amount:   models.NewMoney(amount, w.currency),
			})
		}
	}
	return payments
}

func partyNames(parties []models.PartyID) []string {
	names := make([]string, len(parties))
	for i, p := range parties {
		names[i] = string(p)
	}
	return names
}
