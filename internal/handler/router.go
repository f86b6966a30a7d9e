package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/model"
)

// Router wires all routes with their middleware chains.
func Router(h *Handler, secret string, origins []string, rl *middleware.RateLimiter, m *middleware.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	limited := rl.Middleware()
	r.POST("/auth/register", limited, h.Register)
	r.POST("/auth/login", limited, h.Login)
	r.POST("/auth/refresh", limited, h.Refresh)

	authed := middleware.Authenticate(secret)
	r.POST("/auth/logout", authed, h.Logout)

	r.GET("/doctors", h.ListDoctors)
	r.GET("/services", h.ListServices)

	r.POST("/appointments", authed, h.CreateAppointment)
	r.GET("/appointments", authed, h.ListAppointments)
	r.PUT("/appointments/:id", authed, h.UpdateAppointment)
	r.DELETE("/appointments/:id", authed, h.DeleteAppointment)

	admin := r.Group("/admin", authed, middleware.RequireRole(model.RoleAdmin))
	admin.GET("/appointments", h.ListAppointments)
	admin.GET("/doctors", h.ListDoctors)
	admin.POST("/doctors", h.CreateDoctor)
	admin.PUT("/doctors/:id", h.UpdateDoctor)
	admin.DELETE("/doctors/:id", h.DeleteDoctor)

	return r
}
