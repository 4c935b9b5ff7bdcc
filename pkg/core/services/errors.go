package services

import "errors"

// ErrPollClosed is returned when a first-time voter tries to join a poll
// that has already completed under a gating method. Existing voters may
// still edit their votes.
var ErrPollClosed = errors.New("poll is closed to new voters")
