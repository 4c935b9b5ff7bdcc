package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Half-hour slot grid bounds: first slot 07:00, last slot 23:30.
const (
	SlotFirstHour   = 7
	SlotLastHour    = 23
	SlotStepMinutes = 30
)

// ParseTimeLabel converts an "HH:MM" slot label into minutes since midnight.
// Labels must be half-hour aligned and inside the slot grid.
func ParseTimeLabel(label string) (int, error) {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time label %q", label)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in time label %q", label)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in time label %q", label)
	}

	if hour < SlotFirstHour || hour > SlotLastHour {
		return 0, fmt.Errorf("time label %q outside slot window %02d:00-%02d:30", label, SlotFirstHour, SlotLastHour)
	}
	if minute != 0 && minute != SlotStepMinutes {
		return 0, fmt.Errorf("time label %q is not half-hour aligned", label)
	}

	return hour*60 + minute, nil
}

// FormatTimeLabel converts minutes since midnight back into an "HH:MM" label.
func FormatTimeLabel(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WeekdayName returns the English weekday name for a 0=Sunday index,
// or an empty string for an out-of-range value.
func WeekdayName(weekday int) string {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if weekday < 0 || weekday >= len(names) {
		return ""
	}
	return names[weekday]
}
