package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

func TestEvaluate_HeadcountMethods(t *testing.T) {
	tests := []struct {
		name         string
		method       model.Method
		required     int
		totalVoters  int
		wantComplete bool
	}{
		{"all-available below target", model.MethodAllAvailable, 3, 2, false},
		{"all-available at target", model.MethodAllAvailable, 3, 3, true},
		{"all-available above target", model.MethodAllAvailable, 3, 5, true},
		{"max-available at target", model.MethodMaxAvailable, 2, 2, true},
		{"time-scheduling below target", model.MethodTimeScheduling, 4, 1, false},
		{"recurring at target", model.MethodRecurring, 2, 2, true},
		{"unset target never completes empty poll", model.MethodAllAvailable, 0, 0, false},
		{"zero voters never complete", model.MethodAllAvailable, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Evaluate(tt.method, tt.required, tt.totalVoters, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantComplete, result.IsComplete)
			if tt.wantComplete {
				assert.Equal(t, tt.totalVoters, result.ParticipantCount)
				assert.NotEmpty(t, result.Reason)
			}
		})
	}
}

func TestEvaluate_MinimumRequired(t *testing.T) {
	votes := []model.DateVote{
		{VoterName: "Alice", Date: "2024-07-01"},
		{VoterName: "Alice", Date: "2024-07-02"},
		{VoterName: "Bob", Date: "2024-07-01"},
	}

	result, err := Evaluate(model.MethodMinimumRequired, 2, 2, votes)
	require.NoError(t, err)

	assert.True(t, result.IsComplete)
	assert.Equal(t, "2024-07-01", result.CompletedDate)
	assert.Equal(t, 2, result.ParticipantCount)
}

func TestEvaluate_MinimumRequired_NoQualifyingDate(t *testing.T) {
	votes := []model.DateVote{
		{VoterName: "Alice", Date: "2024-07-01"},
		{VoterName: "Bob", Date: "2024-07-02"},
	}

	result, err := Evaluate(model.MethodMinimumRequired, 2, 2, votes)
	require.NoError(t, err)

	assert.False(t, result.IsComplete)
	assert.Empty(t, result.CompletedDate)
}

func TestEvaluate_MinimumRequired_IgnoresVoterTotal(t *testing.T) {
	// Two voters on one date completes even with many voters overall.
	votes := []model.DateVote{
		{VoterName: "Alice", Date: "2024-07-03"},
		{VoterName: "Bob", Date: "2024-07-03"},
	}

	result, err := Evaluate(model.MethodMinimumRequired, 2, 10, votes)
	require.NoError(t, err)
	assert.True(t, result.IsComplete)
	assert.Equal(t, "2024-07-03", result.CompletedDate)
}

func TestEvaluate_Monotonic(t *testing.T) {
	// Once complete, adding more votes never reverts the verdict.
	votes := []model.DateVote{
		{VoterName: "Alice", Date: "2024-07-01"},
		{VoterName: "Bob", Date: "2024-07-01"},
	}

	first, err := Evaluate(model.MethodMinimumRequired, 2, 2, votes)
	require.NoError(t, err)
	require.True(t, first.IsComplete)

	votes = append(votes, model.DateVote{VoterName: "Carol", Date: "2024-07-02"})
	second, err := Evaluate(model.MethodMinimumRequired, 2, 3, votes)
	require.NoError(t, err)
	assert.True(t, second.IsComplete)
}

func TestEvaluate_UnsupportedMethod(t *testing.T) {
	_, err := Evaluate(model.Method("round-robin"), 2, 5, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestGatesNewVoters(t *testing.T) {
	assert.True(t, GatesNewVoters(model.MethodAllAvailable))
	assert.True(t, GatesNewVoters(model.MethodMaxAvailable))
	assert.True(t, GatesNewVoters(model.MethodTimeScheduling))
	assert.True(t, GatesNewVoters(model.MethodRecurring))
	assert.False(t, GatesNewVoters(model.MethodMinimumRequired))
}
