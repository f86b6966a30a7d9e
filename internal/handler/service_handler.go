package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-management-api/internal/model"
)

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.store.ListServices(c.Request.Context())
	if err != nil {
		fail(c, err, "")
		return
	}
	if services == nil {
		services = []model.Service{}
	}
	c.JSON(http.StatusOK, services)
}
