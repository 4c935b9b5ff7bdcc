package services

import (
	"context"
	"fmt"

	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// mockDB implements a test double over in-memory rows. ReplaceVotes applies
// real replace semantics so submission tests observe the same delete-then-
// insert behaviour the postgres store has.
type mockDB struct {
	appointments map[string]*model.Appointment
	voters       []db.Voter
	dateVotes    map[string][]model.DateVote // voterID -> rows
	timeVotes    map[string][]model.TimeVote
	weekdayVotes map[string][]model.WeekdayVote

	statusUpdates []model.Status

	votersErr    error
	dateVotesErr error
	replaceErr   error
	statusErr    error
}

func newMockDB(appointments ...*model.Appointment) *mockDB {
	m := &mockDB{
		appointments: make(map[string]*model.Appointment),
		dateVotes:    make(map[string][]model.DateVote),
		timeVotes:    make(map[string][]model.TimeVote),
		weekdayVotes: make(map[string][]model.WeekdayVote),
	}
	for _, a := range appointments {
		m.appointments[a.ID] = a
	}
	return m
}

func (m *mockDB) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrAppointmentNotFound, id)
	}
	copied := *a
	return &copied, nil
}

func (m *mockDB) SetAppointmentStatus(ctx context.Context, id string, status model.Status) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	a, ok := m.appointments[id]
	if !ok {
		return fmt.Errorf("%w: %s", db.ErrAppointmentNotFound, id)
	}
	a.Status = status
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockDB) GetVoters(ctx context.Context, appointmentID string) ([]db.Voter, error) {
	if m.votersErr != nil {
		return nil, m.votersErr
	}
	var voters []db.Voter
	for _, v := range m.voters {
		if v.AppointmentID == appointmentID {
			voters = append(voters, v)
		}
	}
	return voters, nil
}

func (m *mockDB) FindVoterByName(ctx context.Context, appointmentID, name string) (*db.Voter, error) {
	for _, v := range m.voters {
		if v.AppointmentID == appointmentID && v.Name == name {
			copied := v
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", db.ErrVoterNotFound, name)
}

func (m *mockDB) InsertVoter(ctx context.Context, voter *db.Voter) error {
	m.voters = append(m.voters, *voter)
	return nil
}

func (m *mockDB) GetDateVotes(ctx context.Context, appointmentID string) ([]model.DateVote, error) {
	if m.dateVotesErr != nil {
		return nil, m.dateVotesErr
	}
	var votes []model.DateVote
	for _, v := range m.voters {
		if v.AppointmentID == appointmentID {
			votes = append(votes, m.dateVotes[v.ID]...)
		}
	}
	return votes, nil
}

func (m *mockDB) GetTimeVotes(ctx context.Context, appointmentID string) ([]model.TimeVote, error) {
	var votes []model.TimeVote
	for _, v := range m.voters {
		if v.AppointmentID == appointmentID {
			votes = append(votes, m.timeVotes[v.ID]...)
		}
	}
	return votes, nil
}

func (m *mockDB) GetWeekdayVotes(ctx context.Context, appointmentID string) ([]model.WeekdayVote, error) {
	var votes []model.WeekdayVote
	for _, v := range m.voters {
		if v.AppointmentID == appointmentID {
			votes = append(votes, m.weekdayVotes[v.ID]...)
		}
	}
	return votes, nil
}

func (m *mockDB) ReplaceVotes(ctx context.Context, appointmentID, voterID string, votes db.VoteSet) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}

	name := ""
	for _, v := range m.voters {
		if v.ID == voterID {
			name = v.Name
		}
	}

	delete(m.dateVotes, voterID)
	delete(m.timeVotes, voterID)
	delete(m.weekdayVotes, voterID)

	for _, date := range votes.Dates {
		m.dateVotes[voterID] = append(m.dateVotes[voterID], model.DateVote{VoterName: name, Date: date})
	}
	for _, slot := range votes.Slots {
		m.timeVotes[voterID] = append(m.timeVotes[voterID], model.TimeVote{VoterName: name, Date: slot.Date, Time: slot.Time})
	}
	for _, weekday := range votes.Weekdays {
		m.weekdayVotes[voterID] = append(m.weekdayVotes[voterID], model.WeekdayVote{VoterName: name, Weekday: weekday})
	}
	return nil
}
