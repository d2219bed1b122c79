// File: branchbook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Health
	HealthHandler gin.HandlerFunc

	// Branch endpoints
	ListBranchesHandler gin.HandlerFunc
	BranchSlotsHandler  gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler gin.HandlerFunc
	MyAppointmentsHandler    gin.HandlerFunc
	CancelAppointmentHandler gin.HandlerFunc

	// Staff endpoints
	EmployeeAppointmentsHandler gin.HandlerFunc
	AdminAppointmentsHandler    gin.HandlerFunc

	// Chat endpoints
	ChatHandler        gin.HandlerFunc
	ChatHistoryHandler gin.HandlerFunc

	// Weather
	WeatherHandler gin.HandlerFunc
}
