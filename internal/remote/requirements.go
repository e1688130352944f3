package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Fallback messages for requirement operations
const (
	FallbackPostRequirement      = "Failed to post requirement"
	FallbackSearchRequirements   = "Search failed"
	FallbackPendingRequirements  = "Failed to fetch pending requirements"
	FallbackApprovedRequirements = "Failed to fetch approved requirements"
	FallbackRejectedRequirements = "Failed to fetch rejected requirements"
	FallbackApproveRequirement   = "Approval failed"
	FallbackRejectRequirement    = "Rejection failed"
	FallbackUpdateRequirement    = "Failed to update requirement"
)

// PostRequirement submits a new requirement; it starts pending
func (c *Client) PostRequirement(ctx context.Context, req models.NewRequirement) (*Confirmation, error) {
	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/ngo/postRequirement", nil, req, &out, FallbackPostRequirement); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchRequirements lists approved requirements, optionally narrowed by item
func (c *Client) SearchRequirements(ctx context.Context, q RequirementQuery) ([]models.Requirement, error) {
	params := url.Values{}
	if q.Item != "" {
		params.Set("item", q.Item)
	}

	var out []models.Requirement
	if err := c.do(ctx, http.MethodGet, "/searchRequirements", params, nil, &out, FallbackSearchRequirements); err != nil {
		return nil, err
	}
	return out, nil
}

// OrganizationRequirements lists one organization's requirements in the given status
func (c *Client) OrganizationRequirements(ctx context.Context, ngoEmail string, status models.Status) ([]models.Requirement, error) {
	var path, fallback string
	switch status {
	case models.StatusPending:
		path, fallback = "/ngo/pendingRequirements/", FallbackPendingRequirements
	case models.StatusApproved:
		path, fallback = "/ngo/approvedRequirements/", FallbackApprovedRequirements
	case models.StatusRejected:
		path, fallback = "/ngo/rejectedRequirements/", FallbackRejectedRequirements
	default:
		return nil, newAPIError(KindTransport, 0, "", FallbackPendingRequirements, fmt.Errorf("unknown requirement status %q", status))
	}

	var out []models.Requirement
	if err := c.do(ctx, http.MethodGet, path+segment(ngoEmail), nil, nil, &out, fallback); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingRequirements lists every pending requirement (admin scope)
func (c *Client) PendingRequirements(ctx context.Context) ([]models.Requirement, error) {
	var out []models.Requirement
	if err := c.do(ctx, http.MethodGet, "/admin/pendingRequirements", nil, nil, &out, FallbackPendingRequirements); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveRequirement approves a pending requirement (admin scope)
func (c *Client) ApproveRequirement(ctx context.Context, id string) (*Confirmation, error) {
	body := map[string]string{"requirementId": id}

	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/admin/approveRequirement", nil, body, &out, FallbackApproveRequirement); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectRequirement rejects a pending requirement with a reason (admin scope)
func (c *Client) RejectRequirement(ctx context.Context, id, reason string) (*Confirmation, error) {
	body := map[string]string{"requirementId": id, "reason": reason}

	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/admin/rejectRequirement", nil, body, &out, FallbackRejectRequirement); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequirement edits a requirement's descriptive fields
func (c *Client) UpdateRequirement(ctx context.Context, id string, update models.RequirementUpdate) (*Confirmation, error) {
	var out Confirmation
	if err := c.do(ctx, http.MethodPut, "/ngo/updateRequirement/"+segment(id), nil, update, &out, FallbackUpdateRequirement); err != nil {
		return nil, err
	}
	return &out, nil
}
