package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-management-api/internal/model"
)

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.store.ListDoctors(c.Request.Context())
	if err != nil {
		fail(c, err, "")
		return
	}
	if doctors == nil {
		doctors = []model.Doctor{}
	}
	c.JSON(http.StatusOK, doctors)
}

type doctorRequest struct {
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	YearsExperience *int   `json:"years_experience"`
	ServiceID       string `json:"service_id"`
}

// years_experience binds through a pointer so a missing field is
// distinguishable from zero years.
func (r *doctorRequest) validate(needService bool) string {
	if r.Name == "" || r.Specialty == "" || r.YearsExperience == nil {
		return "Missing required fields"
	}
	if *r.YearsExperience < 0 {
		return "years_experience must not be negative"
	}
	if needService && r.ServiceID == "" {
		return "Missing required fields"
	}
	return ""
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if msg := req.validate(true); msg != "" {
		badRequest(c, msg)
		return
	}

	d := &model.Doctor{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Specialty:       req.Specialty,
		YearsExperience: *req.YearsExperience,
	}
	if err := h.store.CreateDoctorWithService(c.Request.Context(), d, req.ServiceID); err != nil {
		fail(c, err, "Service not found")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if msg := req.validate(false); msg != "" {
		badRequest(c, msg)
		return
	}

	d := &model.Doctor{
		ID:              c.Param("id"),
		Name:            req.Name,
		Specialty:       req.Specialty,
		YearsExperience: *req.YearsExperience,
	}
	if err := h.store.UpdateDoctor(c.Request.Context(), d); err != nil {
		fail(c, err, "Doctor not found")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.store.DeleteDoctor(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Doctor not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}
