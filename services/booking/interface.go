package booking

import (
	"context"
	"time"

	appointmentRepo "branchbook/database/repository/appointment"
	branchRepo "branchbook/database/repository/branch"
	"branchbook/models"

	"go.uber.org/zap"
)

// BookingService covers branch discovery, slot listing and the appointment lifecycle.
type BookingService interface {
	ListBranches(ctx context.Context) ([]models.Branch, error)
	BranchSlots(ctx context.Context, branchID int64, date string) (*models.SlotsResponse, error)
	CreateBooking(ctx context.Context, who models.Identity, branchID int64, start time.Time) (*models.Appointment, error)
	CancelBooking(ctx context.Context, who models.Identity, appointmentID int64) (*models.Appointment, error)
	MyAppointments(ctx context.Context, who models.Identity) ([]models.AppointmentDTO, error)
	BranchAppointments(ctx context.Context, who models.Identity) ([]models.AppointmentDTO, error)
	AllAppointments(ctx context.Context) ([]models.AppointmentDTO, error)
	AppointmentDTO(ctx context.Context, appt models.Appointment) models.AppointmentDTO
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Branches     branchRepo.BranchRepository
	Appointments appointmentRepo.AppointmentRepository
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
