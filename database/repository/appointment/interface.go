// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"branchbook/database"
	"branchbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no appointment matches the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrDuplicateSlot is returned when a booked appointment already holds (branch, start).
	ErrDuplicateSlot = errors.New("slot already booked")
	// ErrNotBooked is returned when a cancel finds the appointment no longer booked.
	ErrNotBooked = errors.New("appointment is not booked")
)

type AppointmentRepository interface {
	// Create inserts a booked appointment, assigning ID. A concurrent insert
	// for the same (branch, start) yields ErrDuplicateSlot.
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	ExistsBooked(ctx context.Context, branchID int64, start time.Time) (bool, error)
	// BookedStartTimes lists start times of booked appointments in [from, to).
	BookedStartTimes(ctx context.Context, branchID int64, from, to time.Time) ([]time.Time, error)
	// MarkCanceled flips booked → canceled; ErrNotBooked when it was not booked.
	MarkCanceled(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error)
	ListBookedByBranch(ctx context.Context, branchID int64) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
	seq  *database.Sequence
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.Database()
	repo := &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
		seq:  database.NewSequence(db),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(err)
	}
	return repo
}
