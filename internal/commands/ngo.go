package commands

import (
	"context"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/store"
)

// SearchOrganizations replaces the NGO search results with approved organizations
// matching q, and records q as the current search filters.
func (d *Dispatcher) SearchOrganizations(ctx context.Context, q remote.OrganizationQuery) ([]models.Organization, error) {
	ngos := d.state.Ngos
	ngos.SetSearchFilters(store.OrganizationSearch{City: q.City, Name: q.Name})
	return run(ctx, d, KindSearchOrganizations, ngos, remote.FallbackSearchOrganizations,
		func(ctx context.Context) ([]models.Organization, error) {
			return d.remote.SearchOrganizations(ctx, q)
		},
		ngos.SettleSearch)
}

// ListPendingOrganizations replaces the pending list (admin)
func (d *Dispatcher) ListPendingOrganizations(ctx context.Context) ([]models.Organization, error) {
	ngos := d.state.Ngos
	return run(ctx, d, KindPendingOrganizations, ngos, remote.FallbackPendingOrganizations,
		d.remote.PendingOrganizations,
		ngos.SettlePending)
}

// ApproveOrganization approves a pending organization and removes it from the pending list
func (d *Dispatcher) ApproveOrganization(ctx context.Context, id string) (*remote.Confirmation, error) {
	ngos := d.state.Ngos
	if id == "" {
		return refuse[*remote.Confirmation](d, KindApproveOrganization, ngos, ErrMissingID)
	}
	return run(ctx, d, KindApproveOrganization, ngos, remote.FallbackApproveOrganization,
		func(ctx context.Context) (*remote.Confirmation, error) {
			return d.remote.ApproveOrganization(ctx, id)
		},
		func(*remote.Confirmation) { ngos.SettleApprove(id) })
}
