package booking

import (
	"fmt"
	"time"

	"branchbook/models"
)

const dateLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date into local midnight of loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}

// atMinute returns the instant minute minutes after local midnight of day.
// time.Date normalizes, so DST gaps resolve the same way on every call.
func atMinute(day time.Time, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minute/60, minute%60, 0, 0, day.Location())
}

// DayWindow returns the [open, close) instants of branch on day.
func DayWindow(branch models.Branch, day time.Time) (time.Time, time.Time) {
	return atMinute(day, branch.OpenMinute), atMinute(day, branch.CloseMinute)
}

// SlotBoundaries enumerates open, open+slot, ... strictly before close on
// the calendar day of day. A last slot starting before close is included
// even when it would run past closing time.
func SlotBoundaries(branch models.Branch, day time.Time) []time.Time {
	if branch.SlotMinutes <= 0 || branch.OpenMinute >= branch.CloseMinute {
		return nil
	}
	var out []time.Time
	for m := branch.OpenMinute; m < branch.CloseMinute; m += branch.SlotMinutes {
		out = append(out, atMinute(day, m))
	}
	return out
}

// ValidateStart checks that start is a canonical slot boundary of branch on
// its local calendar day in loc.
func ValidateStart(branch models.Branch, start time.Time, loc *time.Location) *ValidationError {
	local := start.In(loc)
	minute := local.Hour()*60 + local.Minute()

	if minute < branch.OpenMinute || minute >= branch.CloseMinute {
		return newValidationError(FieldStartTime, MsgOutsideHours)
	}
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return newValidationError(FieldStartTime, MsgSeconds)
	}
	if branch.SlotMinutes <= 0 || (minute-branch.OpenMinute)%branch.SlotMinutes != 0 {
		return newValidationError(FieldStartTime,
			fmt.Sprintf("appointment must be aligned to a %d minute slot", branch.SlotMinutes))
	}
	return nil
}
