package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/model"
)

type appointmentRequest struct {
	DoctorID        string    `json:"doctor_id"`
	ServiceID       string    `json:"service_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate time.Time `json:"appointment_date"`
}

func (r *appointmentRequest) validate() string {
	if r.DoctorID == "" || r.ServiceID == "" || r.PatientName == "" {
		return "Missing required fields"
	}
	if r.AppointmentDate.IsZero() {
		return "appointment_date is required"
	}
	return ""
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return
	}

	// Dangling doctor/service references are caught by the foreign keys,
	// not pre-checked here.
	apt := &model.Appointment{
		ID:              uuid.New().String(),
		DoctorID:        req.DoctorID,
		ServiceID:       req.ServiceID,
		UserID:          id.ID,
		PatientName:     req.PatientName,
		AppointmentDate: req.AppointmentDate,
	}
	if err := h.store.CreateAppointment(c.Request.Context(), apt); err != nil {
		fail(c, err, "Doctor or service not found")
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	views, err := h.store.ListAppointmentsJoined(c.Request.Context())
	if err != nil {
		fail(c, err, "")
		return
	}
	if views == nil {
		views = []model.AppointmentView{}
	}
	c.JSON(http.StatusOK, views)
}

// canMutate admits the appointment's owner and admins.
func canMutate(id middleware.Identity, a *model.Appointment) bool {
	return id.Role == model.RoleAdmin || id.ID == a.UserID
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return
	}

	ctx := c.Request.Context()
	apt, err := h.store.GetAppointment(ctx, c.Param("id"))
	if err != nil {
		fail(c, err, "Appointment not found")
		return
	}
	if !canMutate(ident, apt) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to modify this appointment"})
		return
	}

	apt.DoctorID = req.DoctorID
	apt.ServiceID = req.ServiceID
	apt.PatientName = req.PatientName
	apt.AppointmentDate = req.AppointmentDate
	if err := h.store.UpdateAppointment(ctx, apt); err != nil {
		fail(c, err, "Appointment not found")
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	ident, _ := middleware.IdentityFrom(c)

	ctx := c.Request.Context()
	apt, err := h.store.GetAppointment(ctx, c.Param("id"))
	if err != nil {
		fail(c, err, "Appointment not found")
		return
	}
	if !canMutate(ident, apt) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to modify this appointment"})
		return
	}

	if err := h.store.DeleteAppointment(ctx, apt.ID); err != nil {
		fail(c, err, "Appointment not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
