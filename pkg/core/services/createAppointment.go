package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

// CreateAppointmentParams carries the poll definition supplied at creation.
// Method, RequiredParticipants and WeeklyMeetings are immutable afterwards.
type CreateAppointmentParams struct {
	Title                string       `validate:"required"`
	Method               model.Method `validate:"required"`
	RequiredParticipants int          `validate:"min=1"`
	WeeklyMeetings       int          `validate:"omitempty,min=1"`
	StartDate            string       `validate:"omitempty,datetime=2006-01-02"`
	EndDate              string       `validate:"omitempty,datetime=2006-01-02"`
}

// AppointmentCreator defines the database operations needed to create appointments
type AppointmentCreator interface {
	InsertAppointment(ctx context.Context, appointment *model.Appointment) error
}

var paramsValidate = validator.New()

// CreateAppointment validates the poll definition and persists a new active
// appointment
func CreateAppointment(ctx context.Context, database AppointmentCreator, logger *zap.Logger, params CreateAppointmentParams) (*model.Appointment, error) {
	if err := paramsValidate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid appointment definition: %w", err)
	}
	if !params.Method.IsValid() {
		return nil, fmt.Errorf("invalid appointment definition: unknown method %q", params.Method)
	}

	if params.Method == model.MethodRecurring {
		// Recurring polls vote on weekdays, not a date window.
		if params.StartDate != "" || params.EndDate != "" {
			return nil, fmt.Errorf("invalid appointment definition: recurring polls take no date bounds")
		}
	} else if params.StartDate != "" && params.EndDate != "" && params.EndDate < params.StartDate {
		return nil, fmt.Errorf("invalid appointment definition: end date %s before start date %s", params.EndDate, params.StartDate)
	}

	weeklyMeetings := params.WeeklyMeetings
	if weeklyMeetings == 0 {
		weeklyMeetings = 1
	}

	appointment := &model.Appointment{
		ID:                   uuid.New().String(),
		Title:                params.Title,
		Method:               params.Method,
		RequiredParticipants: params.RequiredParticipants,
		WeeklyMeetings:       weeklyMeetings,
		StartDate:            params.StartDate,
		EndDate:              params.EndDate,
		Status:               model.StatusActive,
	}

	logger.Debug("Creating appointment",
		zap.String("id", appointment.ID),
		zap.String("title", appointment.Title),
		zap.String("method", string(appointment.Method)))

	if err := database.InsertAppointment(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	logger.Info("Appointment created",
		zap.String("id", appointment.ID),
		zap.String("method", string(appointment.Method)))

	return appointment, nil
}
