// Package mockapi is an in-memory implementation of the NGO Connect service for local
// development and end-to-end tests. It speaks the same JSON contract as the real service,
// enforces the pending → approved | rejected state machine server-side, and only exposes
// approved entities through search.
package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/middleware"
	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Options configures a Server
type Options struct {
	// AdminEmail and AdminPassword seed the admin account; both must be set
	AdminEmail    string
	AdminPassword string
	// Now overrides the clock used for createdAt values
	Now func() time.Time
	// BcryptCost overrides bcrypt.DefaultCost (tests use bcrypt.MinCost)
	BcryptCost int
}

// Server is the mock service
type Server struct {
	store *memoryStore
}

// New creates a Server, seeding the admin account when configured
func New(opts Options) (*Server, error) {
	s := &Server{store: newMemoryStore(opts.Now, opts.BcryptCost)}
	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		if err := s.store.registerUser(opts.AdminEmail, opts.AdminPassword, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("seed admin account: %w", err)
		}
		slog.Info("seeded admin account", "email", opts.AdminEmail)
	}
	return s, nil
}

// Router builds the gin engine serving the service contract
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ActorMiddleware())
	router.Use(middleware.LoggerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Accounts
	router.POST("/registerUser", s.RegisterUserHandler())
	router.POST("/registerNgo", s.RegisterOrganizationHandler())
	router.POST("/loginUser", s.LoginHandler())

	// Public search (approved entities only)
	router.GET("/searchNgos", s.SearchOrganizationsHandler())
	router.GET("/searchRequirements", s.SearchRequirementsHandler())

	// Messages
	messages := router.Group("/messages")
	messages.Use(middleware.RequireRole(models.RoleUser, models.RoleNGO, models.RoleAdmin))
	{
		messages.POST("", s.SendMessageHandler())
		messages.GET("/:withUser", s.ConversationHandler())
	}

	// Organization
	ngo := router.Group("/ngo")
	ngo.Use(middleware.RequireRole(models.RoleNGO, models.RoleAdmin))
	{
		ngo.POST("/postRequirement", s.PostRequirementHandler())
		ngo.GET("/pendingRequirements/:email", s.OrganizationRequirementsHandler(models.StatusPending))
		ngo.GET("/approvedRequirements/:email", s.OrganizationRequirementsHandler(models.StatusApproved))
		ngo.GET("/rejectedRequirements/:email", s.OrganizationRequirementsHandler(models.StatusRejected))
		ngo.PUT("/updateRequirement/:id", s.UpdateRequirementHandler())
	}

	// Admin
	admin := router.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/pendingNgos", s.PendingOrganizationsHandler())
		admin.POST("/approveNgo", s.ApproveOrganizationHandler())
		admin.GET("/pendingRequirements", s.PendingRequirementsHandler())
		admin.POST("/approveRequirement", s.DecideRequirementHandler(models.StatusApproved))
		admin.POST("/rejectRequirement", s.DecideRequirementHandler(models.StatusRejected))
	}

	return router
}

// abort writes the uniform {error} envelope
func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
