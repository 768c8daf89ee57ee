package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// AddMember appends a member to an existing trip.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(m.id) FROM trips t LEFT JOIN members m ON m.trip_id = t.id
		 WHERE t.id = ? GROUP BY t.id`,
		member.TripID,
	).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("trip %s: %w", member.TripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}

	if err := insertMember(ctx, tx, member, position); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertMember(ctx context.Context, db execer, member *models.Member, position int) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	var address any
	if member.PaymentAddress != "" {
		address = member.PaymentAddress
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO members (id, trip_id, name, payment_address, joined_at, position)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID, member.TripID, member.Name, address, member.JoinedAt, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, tripID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, name, payment_address, joined_at
		 FROM members WHERE trip_id = ? ORDER BY position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var member models.Member
		var address sql.NullString
		if err := rows.Scan(&member.ID, &member.TripID, &member.Name, &address, &member.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if address.Valid {
			member.PaymentAddress = address.String
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
