package calculator

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/tripsplit/internal/money"
)

// Transaction is a single transfer: From pays To the given Amount.
type Transaction struct {
	From   Participant // Person who owes
	To     Participant // Person who is owed
	Amount money.Amount
}

// Plan is the full settlement for a snapshot.
type Plan struct {
	Balances     []Balance
	Transactions []Transaction
}

// position is a working copy of one side of a balance.
// remaining is always a magnitude, even for debtors.
type position struct {
	participant Participant
	remaining   money.Amount
}

// SimplifyDebts turns balances into transfers using greedy matching:
// the largest debtor pays the largest creditor until one of them is
// settled, then the cursor moves on. The caller's slice is never modified.
//
// The result has at most creditors+debtors-1 transfers and is fully
// determined by the input order (ties keep their original order).
func SimplifyDebts(balances []Balance) []Transaction {
	var creditors, debtors []position
	for _, b := range balances {
		switch {
		case b.Net > money.Epsilon:
			creditors = append(creditors, position{participant: b.Participant, remaining: b.Net})
		case b.Net < -money.Epsilon:
			debtors = append(debtors, position{participant: b.Participant, remaining: -b.Net})
		}
	}

	byRemainingDesc := func(a, b position) int {
		return cmp.Compare(b.remaining, a.remaining)
	}
	slices.SortStableFunc(creditors, byRemainingDesc)
	slices.SortStableFunc(debtors, byRemainingDesc)

	var transactions []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := min(debtor.remaining, creditor.remaining)
		if amount > money.Epsilon {
			transactions = append(transactions, Transaction{
				From:   debtor.participant,
				To:     creditor.participant,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= money.Epsilon {
			i++
		}
		if creditor.remaining <= money.Epsilon {
			j++
		}
	}

	residual := leftover(debtors[i:]) + leftover(creditors[j:])
	if residual > Tolerance(len(balances)) {
		slog.Warn("Unsettled residual after simplifying debts",
			"residual", residual.String(),
			"debtors_left", len(debtors)-i,
			"creditors_left", len(creditors)-j,
		)
	}

	return transactions
}

func leftover(positions []position) money.Amount {
	var sum money.Amount
	for _, p := range positions {
		sum += p.remaining
	}
	return sum
}

// Settle runs ComputeBalances followed by SimplifyDebts.
func Settle(participants []Participant, expenses []Expense) (Plan, error) {
	balances, err := ComputeBalances(participants, expenses)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Balances:     balances,
		Transactions: SimplifyDebts(balances),
	}, nil
}

// CheckSettlement applies transactions to balances and verifies that every
// participant ends within Tolerance of zero. It also rejects negligible
// amounts (at or below one minor unit), self-payments and transfers involving unknown participants.
func CheckSettlement(balances []Balance, transactions []Transaction) error {
	outstanding := make(map[string]money.Amount, len(balances))
	for _, b := range balances {
		outstanding[b.Participant.ID] = b.Net
	}

	for _, tx := range transactions {
		if tx.Amount <= money.Epsilon {
			return fmt.Errorf("%w: negligible transfer %s from %s to %s",
				ErrRoundingInconsistency, tx.Amount, tx.From.ID, tx.To.ID)
		}
		if tx.From.ID == tx.To.ID {
			return fmt.Errorf("%w: self-payment by %s", ErrRoundingInconsistency, tx.From.ID)
		}
		if _, ok := outstanding[tx.From.ID]; !ok {
			return fmt.Errorf("%w: unknown payer %s", ErrRoundingInconsistency, tx.From.ID)
		}
		if _, ok := outstanding[tx.To.ID]; !ok {
			return fmt.Errorf("%w: unknown payee %s", ErrRoundingInconsistency, tx.To.ID)
		}
		// Paying reduces the debtor's debt and the creditor's credit.
		outstanding[tx.From.ID] += tx.Amount
		outstanding[tx.To.ID] -= tx.Amount
	}

	tol := Tolerance(len(balances))
	for _, b := range balances {
		if rest := outstanding[b.Participant.ID]; rest.Abs() > tol {
			return fmt.Errorf("%w: %s left with %s", ErrRoundingInconsistency, b.Participant.ID, rest)
		}
	}
	return nil
}
