package models

import "github.com/mmynk/tripsplit/internal/money"

// Expense is a payment one member made on behalf of the whole trip.
// Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Title is a short description (e.g., "Hotel", "Fuel").
	Title string

	// Amount is what the payer spent.
	Amount money.Amount

	// PayerID is the member who paid.
	PayerID string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	// Only used for display ordering.
	CreatedAt int64
}
