// Package completion decides whether a poll has collected enough votes to be
// considered finished. The verdict is a pure function of the appointment
// configuration and the current votes; the status side effect lives in the
// services layer.
package completion

import (
	"errors"
	"fmt"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

// ErrUnsupportedMethod is returned for a method the evaluator has no
// predicate for. The evaluator never falls back to another method's rule.
var ErrUnsupportedMethod = errors.New("unsupported scheduling method")

// Evaluate runs the per-method completion predicate.
//
// Headcount methods (all-available, max-available, time-scheduling,
// recurring) complete once the distinct voter count reaches the required
// participant target. Minimum-required completes as soon as any single date
// has gathered the required number of votes; dateVotes is only consulted for
// that method.
func Evaluate(method model.Method, requiredParticipants, totalVoters int, dateVotes []model.DateVote) (model.CompletionResult, error) {
	switch method {
	case model.MethodAllAvailable, model.MethodMaxAvailable,
		model.MethodTimeScheduling, model.MethodRecurring:
		return evaluateHeadcount(requiredParticipants, totalVoters), nil
	case model.MethodMinimumRequired:
		return evaluateMinimumRequired(requiredParticipants, dateVotes), nil
	default:
		return model.CompletionResult{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}

// evaluateHeadcount completes when enough distinct voters have submitted.
// An unset target defaults to the current voter count, which by itself can
// never flip an empty poll to complete.
func evaluateHeadcount(requiredParticipants, totalVoters int) model.CompletionResult {
	target := requiredParticipants
	if target <= 0 {
		target = totalVoters
	}
	if totalVoters == 0 || totalVoters < target {
		return model.CompletionResult{}
	}
	return model.CompletionResult{
		IsComplete:       true,
		Reason:           fmt.Sprintf("required participant count reached (%d of %d)", totalVoters, target),
		ParticipantCount: totalVoters,
	}
}

// evaluateMinimumRequired completes when any single date has at least the
// required number of votes. When several dates qualify, the first one seen
// in the vote rows wins, matching the aggregator's discovery-order
// tie-break.
func evaluateMinimumRequired(requiredParticipants int, dateVotes []model.DateVote) model.CompletionResult {
	if requiredParticipants <= 0 {
		requiredParticipants = 1
	}

	counts := make(map[string]int)
	for _, v := range dateVotes {
		counts[v.Date]++
		if counts[v.Date] >= requiredParticipants {
			return model.CompletionResult{
				IsComplete:       true,
				Reason:           fmt.Sprintf("date %s reached %d participants", v.Date, counts[v.Date]),
				CompletedDate:    v.Date,
				ParticipantCount: counts[v.Date],
			}
		}
	}
	return model.CompletionResult{}
}

// GatesNewVoters reports whether a completed poll under this method rejects
// first-time voters. Minimum-required never gates: extra votes can only
// surface additional qualifying dates.
func GatesNewVoters(method model.Method) bool {
	return method != model.MethodMinimumRequired
}
