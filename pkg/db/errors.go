package db

import "errors"

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrVoterNotFound = errors.New("voter not found")
