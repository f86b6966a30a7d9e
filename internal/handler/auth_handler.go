package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-management-api/internal/auth"
	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/model"
	"hospital-management-api/internal/store"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// Computed once at startup so the unknown-email branch of login pays the
// same bcrypt cost as a wrong password; otherwise response timing would
// reveal which emails exist.
var timingDummyHash, _ = auth.HashPassword("timing-equalizer")

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refresh_token"`
	User         model.PublicUser `json:"user"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		badRequest(c, "Name, email and password are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		badRequest(c, "Invalid email address")
		return
	}
	if len(req.Password) < 6 {
		badRequest(c, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, err, "")
		return
	}

	// Self-registration always yields a regular user; admins are
	// provisioned out of band.
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		fail(c, err, "")
		return
	}

	h.issueTokens(c, u)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(c, "Email and password are required")
		return
	}

	// Unknown email and wrong password give the same answer, so the
	// endpoint cannot be used to enumerate accounts.
	u, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.CheckPassword(timingDummyHash, req.Password)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		fail(c, err, "")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	h.issueTokens(c, u)
}

func (h *Handler) issueTokens(c *gin.Context, u *model.User) {
	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		fail(c, err, "")
		return
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		fail(c, err, "")
		return
	}
	if _, err := h.store.CreateRefreshToken(c.Request.Context(), u.ID, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: tok, RefreshToken: raw, User: u.Public()})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		badRequest(c, "Refresh token required")
		return
	}

	ctx := c.Request.Context()
	rt, err := h.store.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
			return
		}
		fail(c, err, "")
		return
	}
	if rt.Revoked {
		// A rotated token coming back means it leaked; kill the family.
		_ = h.store.RevokeAllRefreshTokens(ctx, rt.UserID)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}
	if time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}

	u, err := h.store.UserByID(ctx, rt.UserID)
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		fail(c, err, "")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(ctx, rt.ID, newID, u.ID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		fail(c, err, "")
		return
	}

	tok, err := auth.MakeToken(u.ID, u.Role, h.secret)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: tok, RefreshToken: newRaw, User: u.Public()})
}

func (h *Handler) Logout(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication token required"})
		return
	}
	if err := h.store.RevokeAllRefreshTokens(c.Request.Context(), id.ID); err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
