package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/completion"
	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// VoteSubmissionStore defines the database operations needed to submit a vote
type VoteSubmissionStore interface {
	CompletionStore
	FindVoterByName(ctx context.Context, appointmentID, name string) (*db.Voter, error)
	InsertVoter(ctx context.Context, voter *db.Voter) error
	ReplaceVotes(ctx context.Context, appointmentID, voterID string, votes db.VoteSet) error
}

// SubmitVoteParams carries one voter's full selection for one appointment.
type SubmitVoteParams struct {
	AppointmentID string
	VoterName     string
	Votes         db.VoteSet
}

// SubmitVoteResult reports what happened to the submission. Completion is
// nil when the post-submission evaluation failed; that failure never fails
// the submission itself.
type SubmitVoteResult struct {
	Voter      *db.Voter
	NewVoter   bool
	Completion *model.CompletionResult
}

// SubmitVote records a voter's availability selection, replacing any prior
// selection under the same name, then re-evaluates poll completion.
//
// A completed poll rejects first-time voters for every method except
// minimum-required; an existing voter re-voting is always an edit and is
// always allowed.
func SubmitVote(ctx context.Context, database VoteSubmissionStore, logger *zap.Logger, params SubmitVoteParams) (*SubmitVoteResult, error) {
	name := strings.TrimSpace(params.VoterName)
	if name == "" {
		return nil, fmt.Errorf("voter name must not be empty")
	}

	appointment, err := database.GetAppointment(ctx, params.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}

	if err := validateVotes(appointment.Method, params.Votes); err != nil {
		return nil, err
	}

	// Resolve the voter: exact name match after trim, else new.
	voter, err := database.FindVoterByName(ctx, params.AppointmentID, name)
	newVoter := false
	if err != nil {
		if !errors.Is(err, db.ErrVoterNotFound) {
			return nil, fmt.Errorf("failed to resolve voter: %w", err)
		}
		newVoter = true
	}

	logger.Debug("Vote submission",
		zap.String("appointment_id", params.AppointmentID),
		zap.String("voter", name),
		zap.Bool("new_voter", newVoter))

	if newVoter && appointment.Status == model.StatusCompleted && completion.GatesNewVoters(appointment.Method) {
		return nil, fmt.Errorf("%w: %s", ErrPollClosed, appointment.ID)
	}

	if newVoter {
		voter = &db.Voter{
			ID:            uuid.New().String(),
			AppointmentID: params.AppointmentID,
			Name:          name,
		}
		if err := database.InsertVoter(ctx, voter); err != nil {
			return nil, fmt.Errorf("failed to insert voter: %w", err)
		}
	}

	// Replace-not-append: every prior row of every kind goes before the
	// new selection lands, inside one transaction.
	if err := database.ReplaceVotes(ctx, params.AppointmentID, voter.ID, params.Votes); err != nil {
		return nil, fmt.Errorf("failed to replace votes: %w", err)
	}

	logger.Info("Vote recorded",
		zap.String("appointment_id", params.AppointmentID),
		zap.String("voter", name),
		zap.Bool("new_voter", newVoter))

	// Completion re-evaluation rides along with the submission but never
	// fails it.
	result := &SubmitVoteResult{Voter: voter, NewVoter: newVoter}
	completionResult, err := EvaluateCompletion(ctx, database, logger, params.AppointmentID)
	if err != nil {
		logger.Warn("Completion evaluation failed after vote submission",
			zap.String("appointment_id", params.AppointmentID),
			zap.Error(err))
		return result, nil
	}
	result.Completion = completionResult

	return result, nil
}

// validateVotes checks the selection shape against the appointment's method.
func validateVotes(method model.Method, votes db.VoteSet) error {
	switch method {
	case model.MethodAllAvailable, model.MethodMaxAvailable, model.MethodMinimumRequired:
		if len(votes.Dates) == 0 {
			return fmt.Errorf("method %s requires at least one date selection", method)
		}
		if len(votes.Slots) > 0 || len(votes.Weekdays) > 0 {
			return fmt.Errorf("method %s accepts only date selections", method)
		}
	case model.MethodTimeScheduling:
		if len(votes.Slots) == 0 {
			return fmt.Errorf("method %s requires at least one time slot selection", method)
		}
		if len(votes.Dates) > 0 || len(votes.Weekdays) > 0 {
			return fmt.Errorf("method %s accepts only time slot selections", method)
		}
		for _, slot := range votes.Slots {
			if _, err := model.ParseTimeLabel(slot.Time); err != nil {
				return fmt.Errorf("invalid time slot selection: %w", err)
			}
		}
	case model.MethodRecurring:
		if len(votes.Weekdays) == 0 {
			return fmt.Errorf("method %s requires at least one weekday selection", method)
		}
		if len(votes.Dates) > 0 || len(votes.Slots) > 0 {
			return fmt.Errorf("method %s accepts only weekday selections", method)
		}
		for _, weekday := range votes.Weekdays {
			if weekday < 0 || weekday > 6 {
				return fmt.Errorf("invalid weekday selection %d", weekday)
			}
		}
	default:
		return fmt.Errorf("%w: %q", completion.ErrUnsupportedMethod, method)
	}
	return nil
}
