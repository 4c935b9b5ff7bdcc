package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// GetAppointment retrieves one appointment by ID
func (d *DB) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, title, method, required_participants, weekly_meetings, start_date, end_date, status
		FROM appointment
		WHERE id = $1
	`, id)

	appointment, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", db.ErrAppointmentNotFound, id)
		}
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}
	return appointment, nil
}

// InsertAppointment inserts a new appointment record
func (d *DB) InsertAppointment(ctx context.Context, appointment *model.Appointment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO appointment (id, title, method, required_participants, weekly_meetings, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, appointment.ID, appointment.Title, string(appointment.Method), appointment.RequiredParticipants,
		appointment.WeeklyMeetings, nullableDate(appointment.StartDate), nullableDate(appointment.EndDate),
		string(appointment.Status))
	if err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

// ListAppointments retrieves all appointment records
func (d *DB) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, title, method, required_participants, weekly_meetings, start_date, end_date, status
		FROM appointment
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, nil
}

// SetAppointmentStatus updates the status of an appointment
func (d *DB) SetAppointmentStatus(ctx context.Context, id string, status model.Status) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE appointment SET status = $2 WHERE id = $1
	`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to set appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", db.ErrAppointmentNotFound, id)
	}
	return nil
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var a model.Appointment
	var method, status string
	var startDate, endDate *time.Time
	if err := row.Scan(&a.ID, &a.Title, &method, &a.RequiredParticipants, &a.WeeklyMeetings,
		&startDate, &endDate, &status); err != nil {
		return nil, err
	}
	a.Method = model.Method(method)
	a.Status = model.Status(status)
	if startDate != nil {
		a.StartDate = startDate.Format("2006-01-02")
	}
	if endDate != nil {
		a.EndDate = endDate.Format("2006-01-02")
	}
	return &a, nil
}

// nullableDate maps an empty date string to NULL for insertion.
func nullableDate(date string) *string {
	if date == "" {
		return nil
	}
	return &date
}
