// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is returned when a trip, member or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip together with its initial members.
	// trip.ID, trip.CreatedAt and member IDs are populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip and its members, in join order.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips without their members, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// AddMember adds a member to an existing trip.
	AddMember(ctx context.Context, member *models.Member) error

	// CreateExpense persists a new expense.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByTrip returns a trip's expenses, newest first.
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
