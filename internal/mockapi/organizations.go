package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// SearchOrganizationsHandler lists approved organizations. city matches exactly
// (case-insensitive); name matches as a substring.
// GET /searchNgos?city=&name=
func (s *Server) SearchOrganizationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		city := strings.TrimSpace(c.Query("city"))
		name := strings.ToLower(strings.TrimSpace(c.Query("name")))

		orgs := s.store.listOrganizations(func(o *models.Organization) bool {
			if o.Status != models.StatusApproved {
				return false
			}
			if city != "" && !strings.EqualFold(o.City, city) {
				return false
			}
			return name == "" || strings.Contains(strings.ToLower(o.Name), name)
		})
		c.JSON(http.StatusOK, orgs)
	}
}

// PendingOrganizationsHandler lists organizations awaiting approval
// GET /admin/pendingNgos
func (s *Server) PendingOrganizationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgs := s.store.listOrganizations(func(o *models.Organization) bool {
			return o.Status == models.StatusPending
		})
		c.JSON(http.StatusOK, orgs)
	}
}

// ApproveOrganizationHandler approves a pending organization
// POST /admin/approveNgo {ngoId}
func (s *Server) ApproveOrganizationHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApproveOrganizationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}

		err := s.store.approveOrganization(req.NgoID)
		switch {
		case errors.Is(err, errOrgNotFound):
			abort(c, http.StatusNotFound, "NGO not found")
			return
		case errors.Is(err, errInvalidTransition):
			abort(c, http.StatusConflict, "NGO is not pending approval")
			return
		case err != nil:
			abort(c, http.StatusInternalServerError, "Approval failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "NGO approved successfully"})
	}
}
