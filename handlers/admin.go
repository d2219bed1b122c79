// File: branchbook/handlers/admin.go
package handlers

import (
	"net/http"

	"branchbook/middleware"

	"github.com/gin-gonic/gin"
)

// EmployeeAppointments handles GET /api/employee/appointments: booked
// appointments of the caller's branch, ascending by start.
func (h *BookingHandler) EmployeeAppointments(c *gin.Context) {
	who, _ := middleware.CurrentIdentity(c)
	appts, err := h.Service.BranchAppointments(c.Request.Context(), who)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// AdminAppointments handles GET /api/admin/appointments.
func (h *BookingHandler) AdminAppointments(c *gin.Context) {
	appts, err := h.Service.AllAppointments(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}
