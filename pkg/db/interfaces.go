package db

import (
	"context"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

// AppointmentStore defines the appointment database operations.
type AppointmentStore interface {
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	InsertAppointment(ctx context.Context, appointment *model.Appointment) error
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	SetAppointmentStatus(ctx context.Context, id string, status model.Status) error
}

// VoterStore defines the voter database operations.
type VoterStore interface {
	GetVoters(ctx context.Context, appointmentID string) ([]Voter, error)
	FindVoterByName(ctx context.Context, appointmentID, name string) (*Voter, error)
	InsertVoter(ctx context.Context, voter *Voter) error
}

// VoteStore defines the vote-row database operations. Reads return
// denormalized rows carrying the voter display name, which is all the
// aggregation engine needs.
type VoteStore interface {
	GetDateVotes(ctx context.Context, appointmentID string) ([]model.DateVote, error)
	GetTimeVotes(ctx context.Context, appointmentID string) ([]model.TimeVote, error)
	GetWeekdayVotes(ctx context.Context, appointmentID string) ([]model.WeekdayVote, error)

	// ReplaceVotes deletes every prior vote row of every kind for the
	// voter and inserts the new selection, all inside one transaction.
	// It also bumps the voter's updated timestamp.
	ReplaceVotes(ctx context.Context, appointmentID, voterID string, votes VoteSet) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	AppointmentStore
	VoterStore
	VoteStore
}
