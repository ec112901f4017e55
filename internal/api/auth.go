package api

import (
	"errors"
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"yoga_studio/internal/auth"
)

// RegisterRequest is the typed registration body.
type RegisterRequest struct {
	UserName string `json:"userName" binding:"required"` // Identity must be provided
	Email    string `json:"email"`                       // Optional email
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest is the typed login body; email doubles as the identity field.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Identity or email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user and returns its credentials.
func RegisterHandler(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		creds, err := authSvc.Register(c.Request.Context(), auth.RegisterInput{
			UserName: req.UserName,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, creds) // Public view, never the hash
	}
}

// LoginHandler verifies credentials and returns a freshly rotated token.
func LoginHandler(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		creds, err := authSvc.Login(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Same answer for unknown identity and wrong password
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, creds)
	}
}
