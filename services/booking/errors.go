package booking

import (
	"errors"
	"fmt"
)

// ValidationError reports a rejected input or business rule, keyed by the
// request field it concerns.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("you are not allowed to cancel this appointment")
	ErrAlreadyCanceled = errors.New("appointment already canceled")
	ErrStaffCannotBook = errors.New("staff members cannot book appointments")
)

const (
	FieldStartTime = "start_time"
	FieldBranchID  = "branch_id"
	FieldDate      = "date"

	MsgPastStart    = "cannot book an appointment in the past"
	MsgNoBranch     = "branch does not exist"
	MsgOutsideHours = "appointment must be within the branch working hours"
	MsgSeconds      = "time must be on an exact minute (no seconds)"
	MsgSlotTaken    = "slot already taken"
)
