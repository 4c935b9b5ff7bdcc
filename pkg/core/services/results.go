package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/moyeo-app/moyeo/pkg/core/aggregator"
	"github.com/moyeo-app/moyeo/pkg/core/model"
	"github.com/moyeo-app/moyeo/pkg/core/timeslot"
	"github.com/moyeo-app/moyeo/pkg/db"
)

// ResultsStore defines the database operations needed to compute results
type ResultsStore interface {
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	GetVoters(ctx context.Context, appointmentID string) ([]db.Voter, error)
	GetDateVotes(ctx context.Context, appointmentID string) ([]model.DateVote, error)
	GetTimeVotes(ctx context.Context, appointmentID string) ([]model.TimeVote, error)
	GetWeekdayVotes(ctx context.Context, appointmentID string) ([]model.WeekdayVote, error)
}

// ResultsOptions tunes the results computation.
type ResultsOptions struct {
	// TopRangeLimit caps the strict contiguous-range list for
	// time-scheduling polls.
	TopRangeLimit int

	// UpcomingWeeks bounds the recurring-poll projection of recommended
	// weekdays onto concrete dates.
	UpcomingWeeks int

	// Now anchors the recurring projection. Zero means time.Now().
	Now time.Time
}

// UpcomingMeeting is the next concrete date a recommended weekday falls on.
type UpcomingMeeting struct {
	Weekday int
	Date    string
}

// AppointmentResults bundles everything the results view needs.
// UpcomingMeetings is populated only for recurring polls.
type AppointmentResults struct {
	Appointment      *model.Appointment
	TotalVoters      int
	Results          model.CalculatedResults
	UpcomingMeetings []UpcomingMeeting
}

// GetResults recomputes the full aggregation for an appointment from the raw
// vote rows. Nothing is cached; every call derives results from scratch.
func GetResults(ctx context.Context, database ResultsStore, logger *zap.Logger, appointmentID string, opts ResultsOptions) (*AppointmentResults, error) {
	appointment, err := database.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}

	voters, err := database.GetVoters(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch voters: %w", err)
	}
	totalVoters := len(voters)

	logger.Debug("Computing results",
		zap.String("appointment_id", appointmentID),
		zap.String("method", string(appointment.Method)),
		zap.Int("total_voters", totalVoters))

	out := &AppointmentResults{Appointment: appointment, TotalVoters: totalVoters}

	switch appointment.Method {
	case model.MethodAllAvailable, model.MethodMaxAvailable, model.MethodMinimumRequired:
		votes, err := database.GetDateVotes(ctx, appointmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch date votes: %w", err)
		}
		out.Results = aggregator.CalculateDateResults(votes, aggregator.Params{
			TotalVoters:          totalVoters,
			RequiredParticipants: appointment.RequiredParticipants,
			MaxResults:           1,
		})

	case model.MethodTimeScheduling:
		votes, err := database.GetTimeVotes(ctx, appointmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch time votes: %w", err)
		}
		out.Results = aggregator.CalculateTimeResults(votes, aggregator.Params{
			TotalVoters:          totalVoters,
			RequiredParticipants: appointment.RequiredParticipants,
			MaxResults:           1,
		})

		buckets := aggregator.GroupTimeVotes(votes)
		limit := opts.TopRangeLimit
		if limit == 0 {
			limit = timeslot.DefaultTopRanges
		}
		out.Results.OptimalSlots = timeslot.TopRanges(timeslot.MergeStrict(buckets), limit)
		out.Results.OptimalRange = timeslot.OptimalRange(buckets)

	case model.MethodRecurring:
		votes, err := database.GetWeekdayVotes(ctx, appointmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch weekday votes: %w", err)
		}
		maxResults := appointment.WeeklyMeetings
		if maxResults < 1 {
			maxResults = 1
		}
		out.Results = aggregator.CalculateWeekdayResults(votes, aggregator.Params{
			TotalVoters:          totalVoters,
			RequiredParticipants: appointment.RequiredParticipants,
			MaxResults:           maxResults,
		})

		upcoming, err := projectUpcomingMeetings(out.Results.MaxAvailable, opts)
		if err != nil {
			// The projection is a convenience on top of the rankings;
			// its failure does not invalidate them.
			logger.Warn("Failed to project upcoming meeting dates", zap.Error(err))
		} else {
			out.UpcomingMeetings = upcoming
		}

	default:
		return nil, fmt.Errorf("unknown method %q for appointment %s", appointment.Method, appointmentID)
	}

	return out, nil
}

// rruleWeekdays maps a 0=Sunday weekday index onto rrule weekday constants.
var rruleWeekdays = []rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// projectUpcomingMeetings finds the next concrete date each recommended
// weekday falls on, scanning at most opts.UpcomingWeeks ahead.
func projectUpcomingMeetings(recommended []model.VoteResult, opts ResultsOptions) ([]UpcomingMeeting, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	weeks := opts.UpcomingWeeks
	if weeks < 1 {
		weeks = 4
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var meetings []UpcomingMeeting
	for _, bucket := range recommended {
		if bucket.Weekday < 0 || bucket.Weekday > 6 {
			continue
		}
		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rruleWeekdays[bucket.Weekday]},
			Dtstart:   start,
			Until:     start.AddDate(0, 0, 7*weeks),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build recurrence rule for weekday %d: %w", bucket.Weekday, err)
		}
		next := rule.After(start, true)
		if next.IsZero() {
			continue
		}
		meetings = append(meetings, UpcomingMeeting{
			Weekday: bucket.Weekday,
			Date:    next.Format("2006-01-02"),
		})
	}
	return meetings, nil
}
