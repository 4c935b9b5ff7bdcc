package model

// Method is the scheduling strategy chosen at poll creation. It determines
// both the shape of the votes collected and the completion rule.
type Method string

const (
	MethodAllAvailable    Method = "all-available"
	MethodMaxAvailable    Method = "max-available"
	MethodMinimumRequired Method = "minimum-required"
	MethodTimeScheduling  Method = "time-scheduling"
	MethodRecurring       Method = "recurring"
)

func (m Method) IsValid() bool {
	switch m {
	case MethodAllAvailable, MethodMaxAvailable, MethodMinimumRequired,
		MethodTimeScheduling, MethodRecurring:
		return true
	}
	return false
}

// UsesWeekdays reports whether the method collects weekday votes instead of
// concrete dates.
func (m Method) UsesWeekdays() bool {
	return m == MethodRecurring
}

// Status is the appointment lifecycle state. Transitions are monotonic:
// active -> completed (set by the completion evaluator) or active -> cancelled
// (set elsewhere, never by this engine).
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment is the poll definition. Method, RequiredParticipants and
// WeeklyMeetings are fixed at creation and read-only to the engine.
type Appointment struct {
	ID                   string
	Title                string
	Method               Method
	RequiredParticipants int
	WeeklyMeetings       int    // only meaningful for recurring
	StartDate            string // "2006-01-02", empty for recurring
	EndDate              string // "2006-01-02", empty for recurring
	Status               Status
}

// DateVote is one voter marking one candidate date as available.
type DateVote struct {
	VoterName string
	Date      string // "2006-01-02"
}

// TimeVote is one voter marking one half-hour slot on one date as available.
type TimeVote struct {
	VoterName string
	Date      string // "2006-01-02"
	Time      string // "HH:MM", half-hour aligned, 07:00..23:30
}

// WeekdayVote is one voter marking one weekday as available (0=Sunday).
type WeekdayVote struct {
	VoterName string
	Weekday   int
}

// VoteResult is one aggregated option with its supporters.
// Exactly one of Date/Weekday is meaningful depending on the method;
// Time is set only for time-scheduling results.
type VoteResult struct {
	Date       string
	Weekday    int
	Time       string
	Count      int
	Voters     []string
	Percentage int
}

// SlotRange is a contiguous run of half-hour slots on a single date.
// EndTime is the label of the last slot in the run, not the wall-clock end.
type SlotRange struct {
	Date      string
	StartTime string
	EndTime   string
	Count     int
	Voters    []string
}

// NoPopularOption is the sentinel returned as MostPopularOption when no
// votes exist yet.
const NoPopularOption = "none"

// Statistics summarises an aggregation run. CompletionRate is a display
// heuristic (100 when any result exists, else 0) and is unrelated to the
// completion evaluator's verdict.
type Statistics struct {
	TotalVotes        int
	AvgVotesPerVoter  float64
	CompletionRate    int
	MostPopularOption string
}

// CalculatedResults is the full aggregation output for one appointment.
// OptimalSlots and OptimalRange are populated only for time-scheduling.
type CalculatedResults struct {
	AllAvailable      []VoteResult
	RequiredAvailable []VoteResult
	MaxAvailable      []VoteResult
	OptimalSlots      []SlotRange
	OptimalRange      *SlotRange
	Statistics        Statistics
}

// CompletionResult is the completion evaluator's verdict for one appointment.
type CompletionResult struct {
	IsComplete       bool
	Reason           string
	CompletedDate    string
	ParticipantCount int
}
