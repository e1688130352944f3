package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ngoconnect/ngoconnect/internal/middleware"
	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/workflow"
)

// ownsEmail reports whether the request's actor may act for the organization email.
// Admins act for every organization.
func ownsEmail(c *gin.Context, email string) bool {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return false
	}
	return actor.IsAdmin() || normalizeEmail(actor.Email) == normalizeEmail(email)
}

// PostRequirementHandler records a new pending requirement
// POST /ngo/postRequirement
func (s *Server) PostRequirementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PostRequirementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}
		if !ownsEmail(c, req.NGOEmail) {
			abort(c, http.StatusForbidden, "Cannot post for another NGO")
			return
		}

		created, err := s.store.postRequirement(req.requirement())
		if errors.Is(err, errOrgNotFound) {
			abort(c, http.StatusNotFound, "NGO not found")
			return
		}
		if err != nil {
			abort(c, http.StatusInternalServerError, "Failed to post requirement")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Requirement posted successfully",
			"id":      created.ID,
		})
	}
}

// SearchRequirementsHandler lists approved requirements whose item contains the query
// GET /searchRequirements?item=
func (s *Server) SearchRequirementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		item := strings.ToLower(strings.TrimSpace(c.Query("item")))
		recs := s.store.listRequirements(func(r *requirementRecord) bool {
			return r.Status == models.StatusApproved &&
				(item == "" || strings.Contains(strings.ToLower(r.Item), item))
		})
		c.JSON(http.StatusOK, toRequirementJSON(recs))
	}
}

// OrganizationRequirementsHandler lists one organization's requirements in status
// GET /ngo/{pending,approved,rejected}Requirements/:email
func (s *Server) OrganizationRequirementsHandler(status models.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		if !ownsEmail(c, email) {
			abort(c, http.StatusForbidden, "Cannot read another NGO's requirements")
			return
		}
		key := normalizeEmail(email)
		recs := s.store.listRequirements(func(r *requirementRecord) bool {
			return r.Status == status && normalizeEmail(r.NGOEmail) == key
		})
		c.JSON(http.StatusOK, toRequirementJSON(recs))
	}
}

// PendingRequirementsHandler lists every pending requirement
// GET /admin/pendingRequirements
func (s *Server) PendingRequirementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		recs := s.store.listRequirements(func(r *requirementRecord) bool {
			return r.Status == models.StatusPending
		})
		c.JSON(http.StatusOK, toRequirementJSON(recs))
	}
}

// DecideRequirementHandler approves or rejects a pending requirement
// POST /admin/approveRequirement {requirementId}
// POST /admin/rejectRequirement {requirementId, reason}
func (s *Server) DecideRequirementHandler(status models.Status) gin.HandlerFunc {
	failed := "Approval failed"
	if status == models.StatusRejected {
		failed = "Rejection failed"
	}
	return func(c *gin.Context) {
		var req DecideRequirementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abort(c, http.StatusBadRequest, bindErrorMessage(err))
			return
		}

		decision := workflow.Approve(req.RequirementID)
		if status == models.StatusRejected {
			decision = workflow.Reject(req.RequirementID, req.Reason)
		}

		err := s.store.decideRequirement(decision)
		switch {
		case errors.Is(err, errRequirementGone):
			abort(c, http.StatusNotFound, "Requirement not found")
			return
		case errors.Is(err, errInvalidTransition):
			abort(c, http.StatusConflict, "Requirement is not pending")
			return
		case err != nil:
			abort(c, http.StatusInternalServerError, failed)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Requirement " + string(status)})
	}
}

// UpdateRequirementHandler edits the descriptive fields of a requirement
// PUT /ngo/updateRequirement/:id
func (s *Server) UpdateRequirementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.RequirementUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			abort(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		if update.IsEmpty() {
			abort(c, http.StatusBadRequest, "Nothing to update")
			return
		}

		id := c.Param("id")
		owner := s.store.listRequirements(func(r *requirementRecord) bool { return r.ID == id })
		if len(owner) == 0 {
			abort(c, http.StatusNotFound, "Requirement not found")
			return
		}
		if !ownsEmail(c, owner[0].NGOEmail) {
			abort(c, http.StatusForbidden, "Cannot update another NGO's requirement")
			return
		}

		if err := s.store.updateRequirement(id, update); err != nil {
			if errors.Is(err, errRequirementGone) {
				abort(c, http.StatusNotFound, "Requirement not found")
				return
			}
			abort(c, http.StatusInternalServerError, "Failed to update requirement")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Requirement updated successfully"})
	}
}
