package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/money"
)

type edge struct {
	from, to string
	amount   money.Amount
}

func edges(txs []Transaction) []edge {
	out := make([]edge, len(txs))
	for i, tx := range txs {
		out[i] = edge{from: tx.From.ID, to: tx.To.ID, amount: tx.Amount}
	}
	return out
}

func balancesOf(nets map[string]money.Amount, order ...string) []Balance {
	out := make([]Balance, len(order))
	for i, id := range order {
		out[i] = Balance{Participant: Participant{ID: id, Name: id}, Net: nets[id]}
	}
	return out
}

func TestSettle_Scenarios(t *testing.T) {
	tests := []struct {
		name         string
		participants []Participant
		expenses     []Expense
		want         []edge
		wantTotal    money.Amount
	}{
		{
			name:         "A paid 100 for two",
			participants: people("A", "B"),
			expenses:     []Expense{paidBy("A", 100)},
			want:         []edge{{"B", "A", 5000}},
		},
		{
			name:         "A paid 90 for three",
			participants: people("A", "B", "C"),
			expenses:     []Expense{paidBy("A", 90)},
			want:         []edge{{"B", "A", 3000}, {"C", "A", 3000}},
		},
		{
			name:         "A 60 B 30 C 30",
			participants: people("A", "B", "C"),
			expenses:     []Expense{paidBy("A", 60), paidBy("B", 30), paidBy("C", 30)},
			want:         []edge{{"B", "A", 1000}, {"C", "A", 1000}},
			wantTotal:    2000,
		},
		{
			name:         "equal payers",
			participants: people("A", "B"),
			expenses:     []Expense{paidBy("A", 50), paidBy("B", 50)},
		},
		{
			name:         "single participant",
			participants: people("A"),
			expenses:     []Expense{paidBy("A", 500)},
		},
		{
			name:         "no expenses",
			participants: people("A", "B", "C"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Settle(tt.participants, tt.expenses)
			require.NoError(t, err)

			if len(tt.want) == 0 {
				assert.Empty(t, plan.Transactions)
			} else {
				assert.Equal(t, tt.want, edges(plan.Transactions))
			}
			if tt.wantTotal != 0 {
				var total money.Amount
				for _, tx := range plan.Transactions {
					total += tx.Amount
				}
				assert.Equal(t, tt.wantTotal, total)
			}
			require.NoError(t, CheckSettlement(plan.Balances, plan.Transactions))
		})
	}
}

func TestSettle_InvalidInput(t *testing.T) {
	_, err := Settle(nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Settle(people("A"), []Expense{paidBy("ghost", 1)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSimplifyDebts_LargestFirst(t *testing.T) {
	balances := balancesOf(map[string]money.Amount{
		"A": -1000,
		"B": 4000,
		"C": -3000,
		"D": 1000,
		"E": -1000,
	}, "A", "B", "C", "D", "E")

	got := edges(SimplifyDebts(balances))

	// Debtors C(30), A(10), E(10); creditors B(40), D(10).
	want := []edge{
		{"C", "B", 3000},
		{"A", "B", 1000},
		{"E", "D", 1000},
	}
	assert.Equal(t, want, got)
}

func TestSimplifyDebts_StableTieBreak(t *testing.T) {
	balances := balancesOf(map[string]money.Amount{
		"X": 3000,
		"P": -1000,
		"Q": -1000,
		"R": -1000,
	}, "R", "X", "P", "Q")

	got := edges(SimplifyDebts(balances))
	want := []edge{
		{"R", "X", 1000},
		{"P", "X", 1000},
		{"Q", "X", 1000},
	}
	assert.Equal(t, want, got)
}

func TestSimplifyDebts_DoesNotMutateInput(t *testing.T) {
	balances := balancesOf(map[string]money.Amount{"A": 5000, "B": -2500, "C": -2500}, "A", "B", "C")
	snapshot := make([]Balance, len(balances))
	copy(snapshot, balances)

	SimplifyDebts(balances)

	assert.Equal(t, snapshot, balances)
}

func TestSimplifyDebts_IgnoresNegligibleBalances(t *testing.T) {
	balances := balancesOf(map[string]money.Amount{"A": 1, "B": -1, "C": 0}, "A", "B", "C")
	assert.Empty(t, SimplifyDebts(balances))
}

func TestSimplifyDebts_Deterministic(t *testing.T) {
	participants := people("A", "B", "C", "D", "E", "F")
	expenses := []Expense{
		paidBy("A", 120.50),
		paidBy("B", 33.10),
		paidBy("D", 78.00),
		paidBy("A", 9.99),
		paidBy("F", 250),
	}

	first, err := Settle(participants, expenses)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Settle(participants, expenses)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSimplifyDebts_RoundingResidualIsNotATransfer(t *testing.T) {
	// Six people, A paid 100: share 16.666..., balances sum to -0.02.
	plan, err := Settle(people("A", "B", "C", "D", "E", "F"), []Expense{paidBy("A", 100)})
	require.NoError(t, err)

	require.Len(t, plan.Transactions, 5)
	var total money.Amount
	for _, tx := range plan.Transactions {
		assert.Equal(t, "A", tx.To.ID)
		total += tx.Amount
	}
	assert.Equal(t, money.Amount(8333), total)
	require.NoError(t, CheckSettlement(plan.Balances, plan.Transactions))
}

func TestSimplifyDebts_Properties(t *testing.T) {
	amounts := []float64{12.34, 99.99, 0.5, 1000, 45.67, 3.33, 250.01, 17, 8.88}
	for n := 2; n <= 12; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('A' + i))
		}
		var expenses []Expense
		for i, a := range amounts {
			// Skew payers so the trip has a mix of creditors and debtors.
			expenses = append(expenses, paidBy(ids[(i*7)%n], a))
		}

		plan, err := Settle(people(ids...), expenses)
		require.NoError(t, err)

		creditors, debtors := 0, 0
		for _, b := range plan.Balances {
			switch {
			case b.Net > money.Epsilon:
				creditors++
			case b.Net < -money.Epsilon:
				debtors++
			}
		}

		for _, tx := range plan.Transactions {
			assert.Greater(t, tx.Amount, money.Amount(0))
			assert.NotEqual(t, tx.From.ID, tx.To.ID)
		}
		if creditors+debtors > 0 {
			assert.LessOrEqual(t, len(plan.Transactions), creditors+debtors-1, "n=%d", n)
		}
		assert.NoError(t, CheckSettlement(plan.Balances, plan.Transactions), "n=%d", n)
	}
}

func TestSimplifyDebts_SingleCreditorBound(t *testing.T) {
	for n := 2; n <= 10; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('A' + i))
		}
		plan, err := Settle(people(ids...), []Expense{paidBy("A", 1234.56)})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(plan.Transactions), n-1)

		// And the mirror image: everyone but one person paid.
		var expenses []Expense
		for _, id := range ids[1:] {
			expenses = append(expenses, paidBy(id, 100))
		}
		plan, err = Settle(people(ids...), expenses)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(plan.Transactions), n-1)
	}
}

func TestCheckSettlement(t *testing.T) {
	balances := balancesOf(map[string]money.Amount{"A": 5000, "B": -5000}, "A", "B")
	a, b := balances[0].Participant, balances[1].Participant

	tests := []struct {
		name    string
		txs     []Transaction
		wantErr bool
	}{
		{name: "settled", txs: []Transaction{{From: b, To: a, Amount: 5000}}},
		{name: "short by one unit", txs: []Transaction{{From: b, To: a, Amount: 4999}}},
		{name: "short by a lot", txs: []Transaction{{From: b, To: a, Amount: 4000}}, wantErr: true},
		{name: "nothing paid", wantErr: true},
		{name: "self payment", txs: []Transaction{{From: a, To: a, Amount: 5000}}, wantErr: true},
		{name: "zero amount", txs: []Transaction{{From: b, To: a, Amount: 5000}, {From: b, To: a, Amount: 0}}, wantErr: true},
		{name: "unknown payee", txs: []Transaction{{From: b, To: Participant{ID: "Z"}, Amount: 5000}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSettlement(balances, tt.txs)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrRoundingInconsistency)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCheckSettlement_OneUnitTransferIsNegligible(t *testing.T) {
	balances := balancesOf(map[string]money.Amount{"A": 5000, "B": -5000}, "A", "B")
	a, b := balances[0].Participant, balances[1].Participant

	err := CheckSettlement(balances, []Transaction{
		{From: b, To: a, Amount: 4999},
		{From: b, To: a, Amount: money.Epsilon},
	})
	require.ErrorIs(t, err, ErrRoundingInconsistency)
	assert.Contains(t, err.Error(), "negligible transfer 0.01")
}

func TestSimplifyDebts_UnbalancedInputLeavesResidual(t *testing.T) {
	// Balances that do not sum to zero must not produce a phantom transfer.
	balances := balancesOf(map[string]money.Amount{"A": 5000, "B": -3000}, "A", "B")

	txs := SimplifyDebts(balances)

	assert.Equal(t, []edge{{"B", "A", 3000}}, edges(txs))
	require.ErrorIs(t, CheckSettlement(balances, txs), ErrRoundingInconsistency)
}
