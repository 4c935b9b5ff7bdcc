package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/completion"
	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// CompletionStore defines the database operations needed to evaluate poll completion
type CompletionStore interface {
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	GetVoters(ctx context.Context, appointmentID string) ([]db.Voter, error)
	GetDateVotes(ctx context.Context, appointmentID string) ([]model.DateVote, error)
	SetAppointmentStatus(ctx context.Context, id string, status model.Status) error
}

// EvaluateCompletion re-runs the completion predicate for an appointment and,
// on a fresh transition to complete, marks the appointment completed.
//
// The status write is best effort: its failure is logged and swallowed so a
// voter's own submission never fails on it. Data-access failures while
// gathering the predicate's inputs are real errors and do propagate; the
// evaluator never guesses "not complete" on a failed fetch.
func EvaluateCompletion(ctx context.Context, database CompletionStore, logger *zap.Logger, appointmentID string) (*model.CompletionResult, error) {
	appointment, err := database.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}

	voters, err := database.GetVoters(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch voters: %w", err)
	}

	// Only the minimum-required predicate reads date votes.
	var dateVotes []model.DateVote
	if appointment.Method == model.MethodMinimumRequired {
		dateVotes, err = database.GetDateVotes(ctx, appointmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch date votes: %w", err)
		}
	}

	result, err := completion.Evaluate(appointment.Method, appointment.RequiredParticipants, len(voters), dateVotes)
	if err != nil {
		return nil, err
	}

	logger.Debug("Completion evaluated",
		zap.String("appointment_id", appointmentID),
		zap.String("method", string(appointment.Method)),
		zap.Int("total_voters", len(voters)),
		zap.Bool("is_complete", result.IsComplete))

	// Idempotent transition: only active polls move to completed, and a
	// completed poll is never reverted.
	if result.IsComplete && appointment.Status == model.StatusActive {
		if err := database.SetAppointmentStatus(ctx, appointmentID, model.StatusCompleted); err != nil {
			logger.Warn("Failed to mark appointment completed",
				zap.String("appointment_id", appointmentID),
				zap.Error(err))
		} else {
			logger.Info("Appointment completed",
				zap.String("appointment_id", appointmentID),
				zap.String("reason", result.Reason))
		}
	}

	return &result, nil
}
