package db

import "time"

// Voter is one named participant of one appointment. Identity is
// (AppointmentID, Name); re-voting under the same name replaces prior votes.
type Voter struct {
	ID            string
	AppointmentID string
	Name          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TimeSelection is one half-hour slot choice inside a vote submission.
type TimeSelection struct {
	Date string // "2006-01-02"
	Time string // "HH:MM"
}

// VoteSet is the full selection of one vote submission. Exactly one of the
// three slices is populated, matching the appointment's method.
type VoteSet struct {
	Dates    []string
	Slots    []TimeSelection
	Weekdays []int
}
