package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"branchbook/middleware"
	"branchbook/models"
	"branchbook/services/booking"
	"branchbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves branch, slot and appointment endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// ListBranches handles GET /api/branches.
func (h *BookingHandler) ListBranches(c *gin.Context) {
	branches, err := h.Service.ListBranches(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]models.BranchDTO, 0, len(branches))
	for _, b := range branches {
		out = append(out, b.DTO())
	}
	c.JSON(http.StatusOK, out)
}

// BranchSlots handles GET /api/branches/:id/slots?date=YYYY-MM-DD.
func (h *BookingHandler) BranchSlots(c *gin.Context) {
	branchID, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.Service.BranchSlots(c.Request.Context(), branchID, c.Query("date"))
	if err != nil {
		// Slot listing reports bad dates as {"detail": ...}.
		var verr *booking.ValidationError
		if errors.As(err, &verr) {
			utils.JSONDetail(c, http.StatusBadRequest, verr.Message)
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAppointment handles POST /api/appointments.
func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	who, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.JSONDetail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	if who.IsStaff() {
		writeServiceError(c, booking.ErrStaffCannotBook)
		return
	}

	var input models.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	start, err := booking.ParseStartTime(input.StartTime)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	appt, err := h.Service.CreateBooking(c.Request.Context(), who, input.BranchID, start)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.Service.AppointmentDTO(c.Request.Context(), *appt))
}

// MyAppointments handles GET /api/appointments/my.
func (h *BookingHandler) MyAppointments(c *gin.Context) {
	who, _ := middleware.CurrentIdentity(c)
	appts, err := h.Service.MyAppointments(c.Request.Context(), who)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointment handles POST /api/appointments/:id/cancel.
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	who, _ := middleware.CurrentIdentity(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.Service.CancelBooking(c.Request.Context(), who, id); err != nil {
		writeServiceError(c, err)
		return
	}
	getLogger(c).Info("appointment canceled via API", zap.Int64("appointmentID", id))
	c.JSON(http.StatusOK, gin.H{"message": "Appointment canceled."})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.JSONDetail(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}
