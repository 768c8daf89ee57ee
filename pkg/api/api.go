// Package api defines the wire messages of tripsplit.v1.TripService.
// Messages are plain structs encoded as JSON; amounts are major currency
// units with two decimal places.
package api

// Member is a trip participant.
type Member struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PaymentAddress string `json:"paymentAddress,omitempty"`
	JoinedAt       int64  `json:"joinedAt,omitempty"`
}

// Trip is a named group of members.
type Trip struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []*Member `json:"members,omitempty"`
	CreatedAt int64     `json:"createdAt"`
}

// Expense is a payment made by one member for the trip.
type Expense struct {
	ID        string  `json:"id"`
	TripID    string  `json:"tripId,omitempty"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	PayerID   string  `json:"payerId"`
	CreatedAt int64   `json:"createdAt,omitempty"`
}

// Balance is a member's position: positive net means they are owed money.
type Balance struct {
	MemberID   string  `json:"memberId"`
	MemberName string  `json:"memberName"`
	Paid       float64 `json:"paid"`
	Share      float64 `json:"share"`
	Net        float64 `json:"net"`
}

// Transfer is one payment in a settlement plan.
type Transfer struct {
	FromID   string  `json:"fromId"`
	FromName string  `json:"fromName"`
	ToID     string  `json:"toId"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
	// PayLink is a upi://pay deep link, empty when the payee has no address.
	PayLink string `json:"payLink,omitempty"`
}

// NewMember is a member to be added to a trip.
type NewMember struct {
	Name           string `json:"name"`
	PaymentAddress string `json:"paymentAddress,omitempty"`
}

type CreateTripRequest struct {
	Name    string       `json:"name"`
	Members []*NewMember `json:"members"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type AddMemberRequest struct {
	TripID         string `json:"tripId"`
	Name           string `json:"name"`
	PaymentAddress string `json:"paymentAddress,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type AddExpenseRequest struct {
	TripID  string  `json:"tripId"`
	Title   string  `json:"title"`
	Amount  float64 `json:"amount"`
	PayerID string  `json:"payerId"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	TripID string `json:"tripId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
	Total    float64    `json:"total"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type GetSettlementRequest struct {
	TripID string `json:"tripId"`
}

type GetSettlementResponse struct {
	Balances  []*Balance  `json:"balances"`
	Transfers []*Transfer `json:"transfers"`
	Total     float64     `json:"total"`
}

// ComputeSettlementRequest settles an ad-hoc snapshot without touching storage.
type ComputeSettlementRequest struct {
	Participants []*Member  `json:"participants"`
	Expenses     []*Expense `json:"expenses"`
	Currency     string     `json:"currency,omitempty"`
}

type ComputeSettlementResponse struct {
	Balances  []*Balance  `json:"balances"`
	Transfers []*Transfer `json:"transfers"`
	Total     float64     `json:"total"`
}
