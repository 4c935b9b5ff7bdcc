package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// GetDateVotes retrieves all date votes for an appointment, denormalized
// with the voter display name
func (d *DB) GetDateVotes(ctx context.Context, appointmentID string) ([]model.DateVote, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT v.name, dv.vote_date
		FROM date_vote dv
		JOIN voter v ON v.id = dv.voter_id
		WHERE dv.appointment_id = $1
		ORDER BY dv.id
	`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query date votes: %w", err)
	}
	defer rows.Close()

	var votes []model.DateVote
	for rows.Next() {
		var vote model.DateVote
		var date time.Time
		if err := rows.Scan(&vote.VoterName, &date); err != nil {
			return nil, fmt.Errorf("failed to scan date vote: %w", err)
		}
		vote.Date = date.Format("2006-01-02")
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating date votes: %w", err)
	}

	return votes, nil
}

// GetTimeVotes retrieves all time votes for an appointment, denormalized
// with the voter display name
func (d *DB) GetTimeVotes(ctx context.Context, appointmentID string) ([]model.TimeVote, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT v.name, tv.vote_date, tv.vote_time
		FROM time_vote tv
		JOIN voter v ON v.id = tv.voter_id
		WHERE tv.appointment_id = $1
		ORDER BY tv.id
	`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time votes: %w", err)
	}
	defer rows.Close()

	var votes []model.TimeVote
	for rows.Next() {
		var vote model.TimeVote
		var date time.Time
		if err := rows.Scan(&vote.VoterName, &date, &vote.Time); err != nil {
			return nil, fmt.Errorf("failed to scan time vote: %w", err)
		}
		vote.Date = date.Format("2006-01-02")
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time votes: %w", err)
	}

	return votes, nil
}

// GetWeekdayVotes retrieves all weekday votes for an appointment,
// denormalized with the voter display name
func (d *DB) GetWeekdayVotes(ctx context.Context, appointmentID string) ([]model.WeekdayVote, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT v.name, wv.weekday
		FROM weekday_vote wv
		JOIN voter v ON v.id = wv.voter_id
		WHERE wv.appointment_id = $1
		ORDER BY wv.id
	`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekday votes: %w", err)
	}
	defer rows.Close()

	var votes []model.WeekdayVote
	for rows.Next() {
		var vote model.WeekdayVote
		if err := rows.Scan(&vote.VoterName, &vote.Weekday); err != nil {
			return nil, fmt.Errorf("failed to scan weekday vote: %w", err)
		}
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekday votes: %w", err)
	}

	return votes, nil
}

// ReplaceVotes deletes every prior vote row for the voter and inserts the
// new selection inside one transaction. A concurrent re-vote by the same
// voter serializes on the row deletes; partial overwrites cannot happen.
func (d *DB) ReplaceVotes(ctx context.Context, appointmentID, voterID string, votes db.VoteSet) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// All three kinds are cleared regardless of method, so a stale row of
	// a different shape can never survive a re-vote.
	for _, table := range []string{"date_vote", "time_vote", "weekday_vote"} {
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE appointment_id = $1 AND voter_id = $2`, table),
			appointmentID, voterID); err != nil {
			return fmt.Errorf("failed to delete prior %s rows: %w", table, err)
		}
	}

	for _, date := range votes.Dates {
		if _, err := tx.Exec(ctx, `
			INSERT INTO date_vote (appointment_id, voter_id, vote_date)
			VALUES ($1, $2, $3)
		`, appointmentID, voterID, date); err != nil {
			return fmt.Errorf("failed to insert date vote: %w", err)
		}
	}

	for _, slot := range votes.Slots {
		if _, err := tx.Exec(ctx, `
			INSERT INTO time_vote (appointment_id, voter_id, vote_date, vote_time)
			VALUES ($1, $2, $3, $4)
		`, appointmentID, voterID, slot.Date, slot.Time); err != nil {
			return fmt.Errorf("failed to insert time vote: %w", err)
		}
	}

	for _, weekday := range votes.Weekdays {
		if _, err := tx.Exec(ctx, `
			INSERT INTO weekday_vote (appointment_id, voter_id, weekday)
			VALUES ($1, $2, $3)
		`, appointmentID, voterID, weekday); err != nil {
			return fmt.Errorf("failed to insert weekday vote: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE voter SET updated_at = NOW() WHERE id = $1
	`, voterID); err != nil {
		return fmt.Errorf("failed to bump voter timestamp: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vote replacement: %w", err)
	}
	return nil
}
