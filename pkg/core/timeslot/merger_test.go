package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

func slot(date, time string, voters ...string) model.VoteResult {
	return model.VoteResult{Date: date, Time: time, Count: len(voters), Voters: voters}
}

func TestMergeStrict_IdenticalVoterSetsMerge(t *testing.T) {
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice", "Bob"),
		slot("2024-07-01", "09:30", "Alice", "Bob"),
		slot("2024-07-01", "10:00", "Alice", "Bob"),
	}

	ranges := MergeStrict(buckets)

	require.Len(t, ranges, 1)
	assert.Equal(t, "2024-07-01", ranges[0].Date)
	assert.Equal(t, "09:00", ranges[0].StartTime)
	assert.Equal(t, "10:00", ranges[0].EndTime)
	assert.Equal(t, 2, ranges[0].Count)
	assert.Equal(t, 90, Duration(ranges[0]))
}

func TestMergeStrict_VoterSetChangeSplits(t *testing.T) {
	// Bob deselects 09:30: the run must split even though 09:30 is still
	// adjacent to both neighbours.
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice", "Bob"),
		slot("2024-07-01", "09:30", "Alice"),
		slot("2024-07-01", "10:00", "Alice", "Bob"),
	}

	ranges := MergeStrict(buckets)

	require.Len(t, ranges, 3)
	assert.Equal(t, "09:00", ranges[0].StartTime)
	assert.Equal(t, "09:00", ranges[0].EndTime)
	assert.Equal(t, 2, ranges[0].Count)
	assert.Equal(t, "09:30", ranges[1].StartTime)
	assert.Equal(t, 1, ranges[1].Count)
	assert.Equal(t, "10:00", ranges[2].StartTime)
	assert.Equal(t, 2, ranges[2].Count)
}

func TestMergeStrict_SameCountDifferentVotersSplits(t *testing.T) {
	// Equal headcount is not enough: the sets differ by one member.
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice", "Bob"),
		slot("2024-07-01", "09:30", "Alice", "Carol"),
	}

	ranges := MergeStrict(buckets)

	require.Len(t, ranges, 2)
}

func TestMergeStrict_VoterOrderIrrelevant(t *testing.T) {
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice", "Bob"),
		slot("2024-07-01", "09:30", "Bob", "Alice"),
	}

	ranges := MergeStrict(buckets)

	require.Len(t, ranges, 1)
	assert.Equal(t, "09:30", ranges[0].EndTime)
}

func TestMergeStrict_GapBreaksRange(t *testing.T) {
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice"),
		slot("2024-07-01", "10:00", "Alice"),
	}

	ranges := MergeStrict(buckets)

	require.Len(t, ranges, 2)
}

func TestMergeStrict_SeparateDates(t *testing.T) {
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice"),
		slot("2024-07-02", "09:30", "Alice"),
	}

	ranges := MergeStrict(buckets)

	require.Len(t, ranges, 2)
}

func TestTopRanges_Ordering(t *testing.T) {
	ranges := []model.SlotRange{
		{Date: "2024-07-02", StartTime: "09:00", EndTime: "09:00", Count: 2, Voters: []string{"A", "B"}},
		{Date: "2024-07-01", StartTime: "14:00", EndTime: "15:00", Count: 2, Voters: []string{"A", "B"}},
		{Date: "2024-07-01", StartTime: "09:00", EndTime: "09:30", Count: 3, Voters: []string{"A", "B", "C"}},
		{Date: "2024-07-01", StartTime: "11:00", EndTime: "11:00", Count: 1, Voters: []string{"A"}},
	}

	ranked := TopRanges(ranges, 3)

	require.Len(t, ranked, 3)
	// Highest headcount first
	assert.Equal(t, 3, ranked[0].Count)
	// Then longer duration wins among count=2
	assert.Equal(t, "14:00", ranked[1].StartTime)
	assert.Equal(t, "2024-07-02", ranked[2].Date)
}

func TestTopRanges_Truncates(t *testing.T) {
	var ranges []model.SlotRange
	for _, start := range []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00"} {
		ranges = append(ranges, model.SlotRange{Date: "2024-07-01", StartTime: start, EndTime: start, Count: 1})
	}

	ranked := TopRanges(ranges, DefaultTopRanges)

	assert.Len(t, ranked, 5)
}

func TestOptimalRange_SustainedMinimum(t *testing.T) {
	// 09:00-10:00 sustains 2 people even though the middle slot's set
	// shrank; the strict variant would split here but the sustained
	// variant keeps the block.
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice", "Bob", "Carol"),
		slot("2024-07-01", "09:30", "Alice", "Bob"),
		slot("2024-07-01", "10:00", "Alice", "Bob", "Carol"),
	}

	best := OptimalRange(buckets)

	require.NotNil(t, best)
	assert.Equal(t, "09:00", best.StartTime)
	assert.Equal(t, "10:00", best.EndTime)
	assert.Equal(t, 2, best.Count)
	assert.Equal(t, 90, Duration(*best))
}

func TestOptimalRange_PrefersHigherMinimum(t *testing.T) {
	// A short block with 3 people beats a long block that dips to 1.
	buckets := []model.VoteResult{
		slot("2024-07-01", "09:00", "Alice", "Bob", "Carol"),
		slot("2024-07-01", "09:30", "Alice", "Bob", "Carol"),
		slot("2024-07-01", "13:00", "Alice"),
		slot("2024-07-01", "13:30", "Alice"),
		slot("2024-07-01", "14:00", "Alice"),
		slot("2024-07-01", "14:30", "Alice"),
	}

	best := OptimalRange(buckets)

	require.NotNil(t, best)
	assert.Equal(t, 3, best.Count)
	assert.Equal(t, "09:00", best.StartTime)
	assert.Equal(t, "09:30", best.EndTime)
}

func TestOptimalRange_Empty(t *testing.T) {
	assert.Nil(t, OptimalRange(nil))
}

func TestDuration_SingleSlot(t *testing.T) {
	r := model.SlotRange{StartTime: "09:00", EndTime: "09:00"}
	assert.Equal(t, 30, Duration(r))
}
