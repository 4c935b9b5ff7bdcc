package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/db"
)

func TestEvaluateCompletion_MarksCompleted(t *testing.T) {
	mock := newMockDB(activeAppointment(model.MethodAllAvailable, 2))
	mock.voters = []db.Voter{
		{ID: "v-1", AppointmentID: "appt-1", Name: "Alice"},
		{ID: "v-2", AppointmentID: "appt-1", Name: "Bob"},
	}
	logger := zap.NewNop()

	result, err := EvaluateCompletion(context.Background(), mock, logger, "appt-1")
	require.NoError(t, err)

	assert.True(t, result.IsComplete)
	assert.Equal(t, 2, result.ParticipantCount)
	assert.Equal(t, []model.Status{model.StatusCompleted}, mock.statusUpdates)
}

func TestEvaluateCompletion_IdempotentOnCompleted(t *testing.T) {
	appointment := activeAppointment(model.MethodAllAvailable, 1)
	appointment.Status = model.StatusCompleted
	mock := newMockDB(appointment)
	mock.voters = []db.Voter{{ID: "v-1", AppointmentID: "appt-1", Name: "Alice"}}
	logger := zap.NewNop()

	result, err := EvaluateCompletion(context.Background(), mock, logger, "appt-1")
	require.NoError(t, err)

	// Still reported complete, but no second status write.
	assert.True(t, result.IsComplete)
	assert.Empty(t, mock.statusUpdates)
}

func TestEvaluateCompletion_StatusWriteFailureSwallowed(t *testing.T) {
	mock := newMockDB(activeAppointment(model.MethodAllAvailable, 1))
	mock.voters = []db.Voter{{ID: "v-1", AppointmentID: "appt-1", Name: "Alice"}}
	mock.statusErr = errors.New("write timeout")
	logger := zap.NewNop()

	result, err := EvaluateCompletion(context.Background(), mock, logger, "appt-1")
	require.NoError(t, err)
	assert.True(t, result.IsComplete)
}

func TestEvaluateCompletion_NotFound(t *testing.T) {
	mock := newMockDB()
	logger := zap.NewNop()

	_, err := EvaluateCompletion(context.Background(), mock, logger, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrAppointmentNotFound)
}

func TestEvaluateCompletion_DateVoteFetchFailurePropagates(t *testing.T) {
	mock := newMockDB(activeAppointment(model.MethodMinimumRequired, 2))
	mock.voters = []db.Voter{{ID: "v-1", AppointmentID: "appt-1", Name: "Alice"}}
	mock.dateVotesErr = errors.New("connection reset")
	logger := zap.NewNop()

	// A failed fetch must surface, never silently read as "not complete".
	_, err := EvaluateCompletion(context.Background(), mock, logger, "appt-1")
	assert.Error(t, err)
}

func TestEvaluateCompletion_VoterFetchFailurePropagates(t *testing.T) {
	mock := newMockDB(activeAppointment(model.MethodAllAvailable, 2))
	mock.votersErr = errors.New("connection reset")
	logger := zap.NewNop()

	_, err := EvaluateCompletion(context.Background(), mock, logger, "appt-1")
	assert.Error(t, err)
}

func TestEvaluateCompletion_UnsupportedMethod(t *testing.T) {
	mock := newMockDB(&model.Appointment{
		ID:     "appt-1",
		Method: model.Method("round-robin"),
		Status: model.StatusActive,
	})
	logger := zap.NewNop()

	_, err := EvaluateCompletion(context.Background(), mock, logger, "appt-1")
	assert.Error(t, err)
}
