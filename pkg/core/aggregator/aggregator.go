// Package aggregator turns raw vote rows into ranked availability results.
// Results are derived on every call and never cached; cost is linear in the
// number of vote rows.
package aggregator

import (
	"math"
	"sort"

	"github.com/moyeo-app/moyeo/pkg/core/model"
)

// Params carries the appointment configuration an aggregation run needs.
type Params struct {
	// TotalVoters is the number of distinct voters for the appointment,
	// supplied by the caller. Zero is a valid degenerate input.
	TotalVoters int

	// RequiredParticipants is the headcount threshold for the
	// "required available" subset.
	RequiredParticipants int

	// MaxResults is the size of the MaxAvailable slice: 1 for date
	// methods, the appointment's weekly meeting count for recurring.
	MaxResults int
}

// CalculateDateResults aggregates date votes into ranked results.
// Ties on count keep discovery order (first date seen in the vote rows wins).
func CalculateDateResults(votes []model.DateVote, p Params) model.CalculatedResults {
	buckets := groupDateVotes(votes)
	ranked := rankStable(buckets)
	return assemble(ranked, p)
}

// CalculateWeekdayResults aggregates weekday votes into ranked results.
// Ties keep discovery order, same as dates.
func CalculateWeekdayResults(votes []model.WeekdayVote, p Params) model.CalculatedResults {
	buckets := groupWeekdayVotes(votes)
	ranked := rankStable(buckets)
	return assemble(ranked, p)
}

// CalculateTimeResults aggregates time votes into ranked per-slot results.
// Ties on count break by date ascending, then time-of-day ascending.
// Contiguous-range merging is layered on top by the timeslot package.
func CalculateTimeResults(votes []model.TimeVote, p Params) model.CalculatedResults {
	buckets := GroupTimeVotes(votes)
	ranked := make([]model.VoteResult, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].Date != ranked[j].Date {
			return ranked[i].Date < ranked[j].Date
		}
		// Zero-padded "HH:MM" labels sort chronologically.
		return ranked[i].Time < ranked[j].Time
	})
	return assemble(ranked, p)
}

// groupDateVotes buckets votes by date in a single pass, preserving the
// order dates are first seen.
func groupDateVotes(votes []model.DateVote) []model.VoteResult {
	index := make(map[string]int)
	var buckets []model.VoteResult
	for _, v := range votes {
		i, ok := index[v.Date]
		if !ok {
			i = len(buckets)
			index[v.Date] = i
			buckets = append(buckets, model.VoteResult{Date: v.Date, Weekday: -1})
		}
		buckets[i].Count++
		buckets[i].Voters = append(buckets[i].Voters, v.VoterName)
	}
	return buckets
}

// groupWeekdayVotes buckets votes by weekday, preserving discovery order.
func groupWeekdayVotes(votes []model.WeekdayVote) []model.VoteResult {
	index := make(map[int]int)
	var buckets []model.VoteResult
	for _, v := range votes {
		i, ok := index[v.Weekday]
		if !ok {
			i = len(buckets)
			index[v.Weekday] = i
			buckets = append(buckets, model.VoteResult{Weekday: v.Weekday})
		}
		buckets[i].Count++
		buckets[i].Voters = append(buckets[i].Voters, v.VoterName)
	}
	return buckets
}

// GroupTimeVotes buckets votes by (date, time) slot, preserving discovery
// order. Exported because the timeslot merger consumes the same buckets.
func GroupTimeVotes(votes []model.TimeVote) []model.VoteResult {
	type slotKey struct {
		date string
		time string
	}
	index := make(map[slotKey]int)
	var buckets []model.VoteResult
	for _, v := range votes {
		k := slotKey{date: v.Date, time: v.Time}
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, model.VoteResult{Date: v.Date, Time: v.Time, Weekday: -1})
		}
		buckets[i].Count++
		buckets[i].Voters = append(buckets[i].Voters, v.VoterName)
	}
	return buckets
}

// rankStable returns a copy of the buckets sorted by count descending.
// The sort is stable so equal counts keep discovery order.
func rankStable(buckets []model.VoteResult) []model.VoteResult {
	ranked := make([]model.VoteResult, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// assemble fills percentages, slices the ranked buckets into the result
// subsets and computes summary statistics.
func assemble(ranked []model.VoteResult, p Params) model.CalculatedResults {
	totalVotes := 0
	for i := range ranked {
		ranked[i].Percentage = percentage(ranked[i].Count, p.TotalVoters)
		totalVotes += ranked[i].Count
	}

	var all, required []model.VoteResult
	for _, b := range ranked {
		// Zero voters never means "unanimously available".
		if p.TotalVoters > 0 && b.Count == p.TotalVoters {
			all = append(all, b)
		}
		if b.Count >= p.RequiredParticipants {
			required = append(required, b)
		}
	}

	maxN := p.MaxResults
	if maxN > len(ranked) {
		maxN = len(ranked)
	}
	if maxN < 0 {
		maxN = 0
	}
	top := make([]model.VoteResult, maxN)
	copy(top, ranked[:maxN])

	stats := model.Statistics{
		TotalVotes:        totalVotes,
		MostPopularOption: model.NoPopularOption,
	}
	if p.TotalVoters > 0 {
		stats.AvgVotesPerVoter = math.Round(float64(totalVotes)/float64(p.TotalVoters)*100) / 100
	}
	if len(ranked) > 0 {
		stats.CompletionRate = 100
		stats.MostPopularOption = optionLabel(ranked[0])
	}

	return model.CalculatedResults{
		AllAvailable:      all,
		RequiredAvailable: required,
		MaxAvailable:      top,
		Statistics:        stats,
	}
}

// percentage is the share of voters in a bucket, rounded to the nearest
// whole percent. Zero voters yields zero, not a division error.
func percentage(count, totalVoters int) int {
	if totalVoters == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(totalVoters) * 100))
}

// optionLabel is the display label for a bucket: the date, the date plus
// slot time, or the weekday name.
func optionLabel(b model.VoteResult) string {
	if b.Time != "" {
		return b.Date + " " + b.Time
	}
	if b.Date != "" {
		return b.Date
	}
	return model.WeekdayName(b.Weekday)
}
