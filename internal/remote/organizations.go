package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Fallback messages for organization operations
const (
	FallbackSearchOrganizations  = "Search failed"
	FallbackPendingOrganizations = "Failed to fetch pending NGOs"
	FallbackApproveOrganization  = "Approval failed"
)

// SearchOrganizations lists approved organizations, optionally narrowed by city and name
func (c *Client) SearchOrganizations(ctx context.Context, q OrganizationQuery) ([]models.Organization, error) {
	params := url.Values{}
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.Name != "" {
		params.Set("name", q.Name)
	}

	var out []models.Organization
	if err := c.do(ctx, http.MethodGet, "/searchNgos", params, nil, &out, FallbackSearchOrganizations); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingOrganizations lists organizations awaiting approval (admin scope)
func (c *Client) PendingOrganizations(ctx context.Context) ([]models.Organization, error) {
	var out []models.Organization
	if err := c.do(ctx, http.MethodGet, "/admin/pendingNgos", nil, nil, &out, FallbackPendingOrganizations); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveOrganization approves a pending organization (admin scope)
func (c *Client) ApproveOrganization(ctx context.Context, id string) (*Confirmation, error) {
	body := map[string]string{"ngoId": id}

	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/admin/approveNgo", nil, body, &out, FallbackApproveOrganization); err != nil {
		return nil, err
	}
	return &out, nil
}
