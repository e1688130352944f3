package mockapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// RegisterUserHandler creates a plain user account
// POST /registerUser
func (s *Server) RegisterUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}

		if err := s.store.registerUser(req.Email, req.Password, models.RoleUser); err != nil {
			if errors.Is(err, errAccountExists) {
				abort(c, http.StatusConflict, "User already exists")
				return
			}
			slog.Error("register user", "error", err)
			abort(c, http.StatusInternalServerError, "Registration failed")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// RegisterOrganizationHandler creates an NGO account awaiting approval
// POST /registerNgo
func (s *Server) RegisterOrganizationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterOrganizationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}

		org, err := s.store.registerOrganization(req.registration())
		if err != nil {
			if errors.Is(err, errAccountExists) {
				abort(c, http.StatusConflict, "NGO already registered")
				return
			}
			slog.Error("register organization", "error", err)
			abort(c, http.StatusInternalServerError, "NGO registration failed")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "NGO registered successfully. Awaiting admin approval.",
			"id":      org.ID,
		})
	}
}

// LoginHandler exchanges credentials for the account's identity
// POST /loginUser
func (s *Server) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}

		actor, err := s.store.login(req.Email, req.Password)
		switch {
		case errors.Is(err, errNotApproved):
			abort(c, http.StatusForbidden, "NGO not approved yet")
			return
		case err != nil:
			abort(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    actor,
		})
	}
}
