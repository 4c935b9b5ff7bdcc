package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/moyeo-app/moyeo/pkg/db"
)

// GetVoters retrieves all voters for an appointment
func (d *DB) GetVoters(ctx context.Context, appointmentID string) ([]db.Voter, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, appointment_id, name, created_at, updated_at
		FROM voter
		WHERE appointment_id = $1
		ORDER BY created_at
	`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	var voters []db.Voter
	for rows.Next() {
		var v db.Voter
		if err := rows.Scan(&v.ID, &v.AppointmentID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}

	return voters, nil
}

// FindVoterByName retrieves one voter by exact name match
func (d *DB) FindVoterByName(ctx context.Context, appointmentID, name string) (*db.Voter, error) {
	var v db.Voter
	err := d.pool.QueryRow(ctx, `
		SELECT id, appointment_id, name, created_at, updated_at
		FROM voter
		WHERE appointment_id = $1 AND name = $2
	`, appointmentID, name).Scan(&v.ID, &v.AppointmentID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", db.ErrVoterNotFound, name)
		}
		return nil, fmt.Errorf("failed to query voter: %w", err)
	}
	return &v, nil
}

// InsertVoter inserts a new voter record
func (d *DB) InsertVoter(ctx context.Context, voter *db.Voter) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO voter (id, appointment_id, name)
		VALUES ($1, $2, $3)
	`, voter.ID, voter.AppointmentID, voter.Name)
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}
