package payperiod

import "errors"

// Pay period domain errors
var (
	// ErrInvalidPayDate is returned when a date is used as a pay date but its
	// day of month is not the 1st or the 15th.
	ErrInvalidPayDate = errors.New("pay date must fall on the 1st or the 15th of a month")
)
