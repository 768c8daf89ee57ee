package models

// Trip is a group of members who share expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Goa 2026").
	Name string

	// Members is the list of trip participants, in the order they joined.
	Members []Member

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Member is a participant of a trip.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// TripID is the trip this member belongs to.
	TripID string

	// Name is the display name of the member.
	Name string

	// PaymentAddress is where the member receives money, e.g. a UPI VPA
	// such as "alice@okbank". Optional and never interpreted by the calculator.
	PaymentAddress string

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64
}
