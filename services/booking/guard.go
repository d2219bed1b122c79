package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "branchbook/database/repository/appointment"
	branchRepo "branchbook/database/repository/branch"
	"branchbook/models"

	"go.uber.org/zap"
)

// ParseStartTime parses an ISO-8601 timestamp that must carry an offset.
func ParseStartTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, newValidationError(FieldStartTime,
			"start_time must be an ISO-8601 timestamp with a timezone offset")
	}
	return t, nil
}

// CreateBooking runs the booking checks in order, stopping at the first
// failure, and inserts a booked appointment. Losing an insert race against an
// identical request is reported as the same "slot already taken" error.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, who models.Identity, branchID int64, start time.Time) (*models.Appointment, error) {
	if who.IsStaff() {
		return nil, ErrStaffCannotBook
	}

	now := s.now()
	if start.Before(now) {
		return nil, newValidationError(FieldStartTime, MsgPastStart)
	}

	branch, err := s.Branches.GetByID(ctx, branchID)
	if errors.Is(err, branchRepo.ErrNotFound) {
		return nil, newValidationError(FieldBranchID, MsgNoBranch)
	}
	if err != nil {
		return nil, fmt.Errorf("load branch: %w", err)
	}

	if verr := ValidateStart(*branch, start, s.loc()); verr != nil {
		return nil, verr
	}

	taken, err := s.Appointments.ExistsBooked(ctx, branch.ID, start)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, newValidationError(FieldStartTime, MsgSlotTaken)
	}

	appt := &models.Appointment{
		UserID:    who.UserID,
		BranchID:  branch.ID,
		StartTime: start,
		Status:    models.StatusBooked,
		CreatedAt: now,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			s.logger().Info("booking race lost",
				zap.Int64("branchID", branch.ID), zap.Time("start", start), zap.Int64("userID", who.UserID))
			return nil, newValidationError(FieldStartTime, MsgSlotTaken)
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger().Info("appointment booked",
		zap.Int64("appointmentID", appt.ID), zap.Int64("branchID", branch.ID), zap.Time("start", start))
	return appt, nil
}

// CancelBooking moves an appointment from booked to canceled. Only the
// owning user may cancel it, and a second cancel fails.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, who models.Identity, appointmentID int64) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if appt.UserID != who.UserID {
		return nil, ErrForbidden
	}
	if appt.Status == models.StatusCanceled {
		return nil, ErrAlreadyCanceled
	}

	if err := s.Appointments.MarkCanceled(ctx, appt.ID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotBooked) {
			return nil, ErrAlreadyCanceled
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	appt.Status = models.StatusCanceled

	s.logger().Info("appointment canceled", zap.Int64("appointmentID", appt.ID), zap.Int64("userID", who.UserID))
	return appt, nil
}
