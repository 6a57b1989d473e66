package handlers

import (
	"net/http"

	"southern-spoon-api/middleware"
	"southern-spoon-api/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// StartSession opens a fresh order form and returns the token that addresses it
func (h *Handler) StartSession(c *gin.Context) {
	s := h.Sessions.Create()
	token, err := middleware.GenerateToken(h.JWTSecret, s.ID(), models.RoleCustomer, h.SessionTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.Log.WithField("session_id", s.ID()).Debug("session started")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Session started",
		"token":   token,
		"session": s.View(),
	})
}

// AdminLogin checks the shared admin password and returns an admin JWT
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.AdminPasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(req.Password)); err != nil {
		h.Log.WithField("client_ip", c.ClientIP()).Warn("admin login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	token, err := middleware.GenerateToken(h.JWTSecret, "", models.RoleAdmin, h.AdminTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"role":    models.RoleAdmin,
	})
}
