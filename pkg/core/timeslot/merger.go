// Package timeslot merges adjacent half-hour vote buckets into contiguous
// ranges for the time-scheduling method.
//
// Two variants exist on purpose. The strict variant only joins slots whose
// voter sets are identical, so a displayed range never claims availability
// some sub-interval lacks. The sustained variant tolerates shrinking voter
// sets and finds the single best block by minimum headcount over the block.
package timeslot

import (
	"sort"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

// DefaultTopRanges is how many strict ranges the ranked list keeps.
const DefaultTopRanges = 5

// MergeStrict merges time-slot buckets into contiguous ranges per date.
// A range extends to the next slot only when the slot is exactly 30 minutes
// later and carries the identical voter set (compared as a set).
func MergeStrict(buckets []model.VoteResult) []model.SlotRange {
	var ranges []model.SlotRange
	for _, day := range groupByDate(buckets) {
		var current *model.SlotRange
		var lastMinutes int
		var lastVoters []string

		for _, slot := range day.slots {
			minutes, err := model.ParseTimeLabel(slot.Time)
			if err != nil {
				// Malformed labels cannot join any range.
				if current != nil {
					ranges = append(ranges, *current)
					current = nil
				}
				continue
			}

			if current != nil && minutes == lastMinutes+model.SlotStepMinutes && sameVoterSet(lastVoters, slot.Voters) {
				current.EndTime = slot.Time
				lastMinutes = minutes
				continue
			}

			if current != nil {
				ranges = append(ranges, *current)
			}
			current = &model.SlotRange{
				Date:      day.date,
				StartTime: slot.Time,
				EndTime:   slot.Time,
				Count:     slot.Count,
				Voters:    slot.Voters,
			}
			lastMinutes = minutes
			lastVoters = slot.Voters
		}

		if current != nil {
			ranges = append(ranges, *current)
		}
	}
	return ranges
}

// TopRanges ranks strict ranges for display and truncates to limit.
// Order: headcount desc, duration desc, date asc, start time asc.
func TopRanges(ranges []model.SlotRange, limit int) []model.SlotRange {
	ranked := make([]model.SlotRange, len(ranges))
	copy(ranked, ranges)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		di, dj := Duration(ranked[i]), Duration(ranked[j])
		if di != dj {
			return di > dj
		}
		if ranked[i].Date != ranked[j].Date {
			return ranked[i].Date < ranked[j].Date
		}
		return ranked[i].StartTime < ranked[j].StartTime
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// OptimalRange finds the single best contiguous block across all dates,
// ranked by the minimum headcount sustained over the block, then duration,
// then date and start time ascending. The returned range carries the
// sustained minimum as Count and the voters of the thinnest slot in the
// block. Returns nil when no slots exist.
func OptimalRange(buckets []model.VoteResult) *model.SlotRange {
	var best *model.SlotRange
	for _, day := range groupByDate(buckets) {
		minutes := make([]int, len(day.slots))
		for i, slot := range day.slots {
			m, err := model.ParseTimeLabel(slot.Time)
			if err != nil {
				m = -1
			}
			minutes[i] = m
		}

		for start := range day.slots {
			if minutes[start] < 0 {
				continue
			}
			minCount := day.slots[start].Count
			minVoters := day.slots[start].Voters
			for end := start; end < len(day.slots); end++ {
				if end > start {
					if minutes[end] != minutes[end-1]+model.SlotStepMinutes {
						break
					}
					if day.slots[end].Count < minCount {
						minCount = day.slots[end].Count
						minVoters = day.slots[end].Voters
					}
				}
				candidate := model.SlotRange{
					Date:      day.date,
					StartTime: day.slots[start].Time,
					EndTime:   day.slots[end].Time,
					Count:     minCount,
					Voters:    minVoters,
				}
				if best == nil || betterSustained(candidate, *best) {
					c := candidate
					best = &c
				}
			}
		}
	}
	return best
}

// Duration is the inclusive length of a range in minutes: a single slot
// counts as 30.
func Duration(r model.SlotRange) int {
	start, err := model.ParseTimeLabel(r.StartTime)
	if err != nil {
		return 0
	}
	end, err := model.ParseTimeLabel(r.EndTime)
	if err != nil {
		return 0
	}
	return end - start + model.SlotStepMinutes
}

type dateSlots struct {
	date  string
	slots []model.VoteResult
}

// groupByDate splits slot buckets per date, each date's slots sorted by
// time ascending. Dates come out in ascending order for determinism.
func groupByDate(buckets []model.VoteResult) []dateSlots {
	byDate := make(map[string][]model.VoteResult)
	var dates []string
	for _, b := range buckets {
		if _, ok := byDate[b.Date]; !ok {
			dates = append(dates, b.Date)
		}
		byDate[b.Date] = append(byDate[b.Date], b)
	}
	sort.Strings(dates)

	out := make([]dateSlots, 0, len(dates))
	for _, d := range dates {
		slots := byDate[d]
		sort.SliceStable(slots, func(i, j int) bool {
			return slots[i].Time < slots[j].Time
		})
		out = append(out, dateSlots{date: d, slots: slots})
	}
	return out
}

// betterSustained orders sustained-minimum candidates: headcount desc,
// duration desc, date asc, start asc.
func betterSustained(a, b model.SlotRange) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	da, db := Duration(a), Duration(b)
	if da != db {
		return da > db
	}
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.StartTime < b.StartTime
}

// sameVoterSet compares voter lists as sets, ignoring order and duplicates.
func sameVoterSet(a, b []string) bool {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if _, ok := setB[v]; !ok {
			return false
		}
	}
	return true
}
