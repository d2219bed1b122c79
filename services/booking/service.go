package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	branchRepo "branchbook/database/repository/branch"
	"branchbook/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return s.Branches.List(ctx, 0)
}

// BranchSlots lists the open slots of a branch for one local calendar day.
// The result may already be stale when a concurrent booking commits.
func (s *DefaultBookingService) BranchSlots(ctx context.Context, branchID int64, date string) (*models.SlotsResponse, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, newValidationError(FieldDate, "query param 'date' is required (YYYY-MM-DD)")
	}

	branch, err := s.Branches.GetByID(ctx, branchID)
	if errors.Is(err, branchRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load branch: %w", err)
	}

	day, err := ParseDay(date, s.loc())
	if err != nil {
		return nil, newValidationError(FieldDate, "invalid date format, use YYYY-MM-DD")
	}

	openAt, closeAt := DayWindow(*branch, day)
	booked, err := s.Appointments.BookedStartTimes(ctx, branch.ID, openAt, closeAt)
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}

	slots := AvailableSlots(*branch, day, s.now(), booked)
	out := make([]string, 0, len(slots))
	for _, t := range slots {
		out = append(out, t.Format(time.RFC3339))
	}

	s.logger().Debug("slots computed",
		zap.Int64("branchID", branch.ID), zap.String("date", date),
		zap.Int("booked", len(booked)), zap.Int("available", len(out)))

	return &models.SlotsResponse{
		BranchID:       branch.ID,
		Date:           date,
		SlotMinutes:    branch.SlotMinutes,
		OpenTime:       branch.OpenTime(),
		CloseTime:      branch.CloseTime(),
		AvailableSlots: out,
	}, nil
}

func (s *DefaultBookingService) MyAppointments(ctx context.Context, who models.Identity) ([]models.AppointmentDTO, error) {
	appts, err := s.Appointments.ListByUser(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(ctx, appts), nil
}

// BranchAppointments lists the booked appointments of the employee's branch.
func (s *DefaultBookingService) BranchAppointments(ctx context.Context, who models.Identity) ([]models.AppointmentDTO, error) {
	if who.BranchID == 0 {
		return nil, newValidationError(FieldBranchID, "employee has no assigned branch")
	}
	appts, err := s.Appointments.ListBookedByBranch(ctx, who.BranchID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(ctx, appts), nil
}

func (s *DefaultBookingService) AllAppointments(ctx context.Context) ([]models.AppointmentDTO, error) {
	appts, err := s.Appointments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(ctx, appts), nil
}

func (s *DefaultBookingService) AppointmentDTO(ctx context.Context, appt models.Appointment) models.AppointmentDTO {
	return s.toDTOs(ctx, []models.Appointment{appt})[0]
}

func (s *DefaultBookingService) toDTOs(ctx context.Context, appts []models.Appointment) []models.AppointmentDTO {
	branches := map[int64]*models.BranchDTO{}
	out := make([]models.AppointmentDTO, 0, len(appts))
	for _, a := range appts {
		dto, ok := branches[a.BranchID]
		if !ok {
			if b, err := s.Branches.GetByID(ctx, a.BranchID); err == nil {
				d := b.DTO()
				dto = &d
			} else {
				s.logger().Warn("appointment branch lookup failed", zap.Int64("branchID", a.BranchID), zap.Error(err))
			}
			branches[a.BranchID] = dto
		}
		out = append(out, models.AppointmentDTO{
			ID:        a.ID,
			UserID:    a.UserID,
			Branch:    dto,
			BranchID:  a.BranchID,
			StartTime: a.StartTime.In(s.loc()).Format(time.RFC3339),
			Status:    a.Status,
			CreatedAt: a.CreatedAt.In(s.loc()).Format(time.RFC3339),
		})
	}
	return out
}
