// Package calculator computes trip balances and the set of transfers that
// settles them. Everything here is a pure function over a snapshot of
// participants and expenses.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/money"
)

var (
	// ErrInvalidInput is returned when the snapshot cannot be settled:
	// no participants, a bad amount, or a payer outside the trip.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRoundingInconsistency means a non-negligible amount was left
	// unsettled after simplification. It points at a calculator bug, not
	// at user input.
	ErrRoundingInconsistency = errors.New("rounding inconsistency")
)

// Participant is a trip member as seen by the calculator.
type Participant struct {
	ID   string
	Name string
	// PaymentAddress is passed through untouched (e.g. a UPI VPA).
	PaymentAddress string
}

// Expense is a single "who paid how much" record.
type Expense struct {
	ID      string
	Title   string
	Amount  float64 // major units, two decimal places
	PayerID string
	// CreatedAt is only used for display ordering.
	CreatedAt int64
}

// Balance is one participant's position after all expenses.
type Balance struct {
	Participant Participant
	Paid        money.Amount // Total paid across all expenses
	Share       money.Amount // Equal share of the trip total, rounded for display
	Net         money.Amount // Positive = owed money, negative = owes money
}

// ComputeBalances reduces expenses into one Balance per participant, in the
// order participants were given.
//
// Algorithm:
//   - total = sum of all expense amounts
//   - share = total / len(participants), kept exact
//   - net(p) = round2(paid(p) - share), half away from zero
//
// Participants must be unique by ID. Every expense payer must be one of
// them. Nothing is computed unless the whole snapshot validates.
func ComputeBalances(participants []Participant, expenses []Expense) ([]Balance, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: must have at least one participant", ErrInvalidInput)
	}

	paid := make(map[string]money.Amount, len(participants))
	for _, p := range participants {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: participant %q has no id", ErrInvalidInput, p.Name)
		}
		if _, dup := paid[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate participant %s", ErrInvalidInput, p.ID)
		}
		paid[p.ID] = 0
	}

	var total money.Amount
	for _, e := range expenses {
		amount, err := money.FromFloat(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: expense %s: %v", ErrInvalidInput, e.ID, err)
		}
		if _, ok := paid[e.PayerID]; !ok {
			return nil, fmt.Errorf("%w: expense %s paid by unknown participant %q", ErrInvalidInput, e.ID, e.PayerID)
		}
		// paid(p) never exceeds total, so checking total covers both sums.
		if total, err = money.Add(total, amount); err != nil {
			return nil, fmt.Errorf("%w: expense %s: %v", ErrInvalidInput, e.ID, err)
		}
		paid[e.PayerID] += amount
	}

	share := total.Decimal().Div(decimal.NewFromInt(int64(len(participants))))

	balances := make([]Balance, len(participants))
	for i, p := range participants {
		balances[i] = Balance{
			Participant: p,
			Paid:        paid[p.ID],
			Share:       money.FromDecimal(share),
			Net:         money.FromDecimal(paid[p.ID].Decimal().Sub(share)),
		}
	}

	return balances, nil
}

// Tolerance is the largest residual that per-participant rounding can
// leave behind across n balances: half a minor unit each, never less than
// one minor unit.
func Tolerance(n int) money.Amount {
	tol := money.Amount((n + 1) / 2)
	if tol < money.Epsilon {
		return money.Epsilon
	}
	return tol
}
