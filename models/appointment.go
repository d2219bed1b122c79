package models

import "time"

const (
	StatusBooked   = "booked"
	StatusCanceled = "canceled"
)

// Appointment is a user's reservation of one branch slot.
type Appointment struct {
	ID        int64     `bson:"id" json:"id"`
	UserID    int64     `bson:"userId" json:"user_id"`
	BranchID  int64     `bson:"branchId" json:"branch_id"`
	StartTime time.Time `bson:"startTime" json:"start_time"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// AppointmentDTO is returned by the appointment endpoints.
type AppointmentDTO struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Branch    *BranchDTO `json:"branch,omitempty"`
	BranchID  int64      `json:"branch_id"`
	StartTime string     `json:"start_time"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"created_at"`
}

// CreateAppointmentInput is the booking request body.
type CreateAppointmentInput struct {
	BranchID  int64  `json:"branch_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// SlotsResponse is returned by the slot listing endpoint.
type SlotsResponse struct {
	BranchID       int64    `json:"branch_id"`
	Date           string   `json:"date"`
	SlotMinutes    int      `json:"slot_minutes"`
	OpenTime       string   `json:"open_time"`
	CloseTime      string   `json:"close_time"`
	AvailableSlots []string `json:"available_slots"`
}
