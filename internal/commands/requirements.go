package commands

import (
	"context"
	"fmt"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/remote"
	"github.com/ngoconnect/ngoconnect/internal/store"
	"github.com/ngoconnect/ngoconnect/internal/workflow"
)

// ownerEmail resolves the organization a requirement command is scoped to: the given
// email, else the logged-in actor's.
func (d *Dispatcher) ownerEmail(ngoEmail string) (string, error) {
	if ngoEmail != "" {
		return ngoEmail, nil
	}
	actor := d.actor()
	if actor == nil {
		return "", ErrNoActor
	}
	return actor.Email, nil
}

// PostRequirement submits a requirement. It starts pending, so no collection changes;
// callers refetch the organization's pending list to see it. An empty NGOEmail defaults
// to the current actor.
func (d *Dispatcher) PostRequirement(ctx context.Context, req models.NewRequirement) (*remote.Confirmation, error) {
	reqs := d.state.Requirements
	email, err := d.ownerEmail(req.NGOEmail)
	if err != nil {
		return refuse[*remote.Confirmation](d, KindPostRequirement, reqs, err)
	}
	req.NGOEmail = email

	return run(ctx, d, KindPostRequirement, reqs, remote.FallbackPostRequirement,
		func(ctx context.Context) (*remote.Confirmation, error) {
			return d.remote.PostRequirement(ctx, req)
		},
		func(*remote.Confirmation) { reqs.Settle() })
}

// SearchRequirements replaces the requirement search results (approved only) and
// records q as the current search filters.
func (d *Dispatcher) SearchRequirements(ctx context.Context, q remote.RequirementQuery) ([]models.Requirement, error) {
	reqs := d.state.Requirements
	reqs.SetSearchFilters(store.RequirementSearch{Item: q.Item})
	return run(ctx, d, KindSearchRequirements, reqs, remote.FallbackSearchRequirements,
		func(ctx context.Context) ([]models.Requirement, error) {
			return d.remote.SearchRequirements(ctx, q)
		},
		func(result []models.Requirement) { reqs.SettleList(store.SearchResults, result) })
}

// ListPendingRequirements replaces the admin pending list
func (d *Dispatcher) ListPendingRequirements(ctx context.Context) ([]models.Requirement, error) {
	reqs := d.state.Requirements
	return run(ctx, d, KindPendingRequirementsAdmin, reqs, remote.FallbackPendingRequirements,
		d.remote.PendingRequirements,
		func(result []models.Requirement) { reqs.SettleList(store.PendingForAdmin, result) })
}

// ListOrganizationRequirements replaces one of the organization-scoped collections:
// pending, approved, or rejected. An empty ngoEmail defaults to the current actor.
func (d *Dispatcher) ListOrganizationRequirements(ctx context.Context, ngoEmail string, status models.Status) ([]models.Requirement, error) {
	var (
		kind       Kind
		collection store.Collection
		fallback   string
	)
	reqs := d.state.Requirements
	switch status {
	case models.StatusPending:
		kind, collection, fallback = KindPendingRequirementsNgo, store.PendingForNgo, remote.FallbackPendingRequirements
	case models.StatusApproved:
		kind, collection, fallback = KindApprovedRequirementsNgo, store.ApprovedForNgo, remote.FallbackApprovedRequirements
	case models.StatusRejected:
		kind, collection, fallback = KindRejectedRequirementsNgo, store.RejectedForNgo, remote.FallbackRejectedRequirements
	default:
		return refuse[[]models.Requirement](d, KindPendingRequirementsNgo, reqs,
			fmt.Errorf("%w: %q", ErrUnknownStatus, status))
	}

	email, err := d.ownerEmail(ngoEmail)
	if err != nil {
		return refuse[[]models.Requirement](d, kind, reqs, err)
	}

	return run(ctx, d, kind, reqs, fallback,
		func(ctx context.Context) ([]models.Requirement, error) {
			return d.remote.OrganizationRequirements(ctx, email, status)
		},
		func(result []models.Requirement) { reqs.SettleList(collection, result) })
}

// ApproveRequirement approves a pending requirement and removes it from every pending
// collection. The approved collections change only on refetch.
func (d *Dispatcher) ApproveRequirement(ctx context.Context, id string) (*remote.Confirmation, error) {
	return d.decide(ctx, KindApproveRequirement, workflow.Approve(id), remote.FallbackApproveRequirement,
		func(ctx context.Context) (*remote.Confirmation, error) {
			return d.remote.ApproveRequirement(ctx, id)
		})
}

// RejectRequirement rejects a pending requirement with reason and removes it from every
// pending collection. The reason is only sent to the service.
func (d *Dispatcher) RejectRequirement(ctx context.Context, id, reason string) (*remote.Confirmation, error) {
	return d.decide(ctx, KindRejectRequirement, workflow.Reject(id, reason), remote.FallbackRejectRequirement,
		func(ctx context.Context) (*remote.Confirmation, error) {
			return d.remote.RejectRequirement(ctx, id, reason)
		})
}

func (d *Dispatcher) decide(ctx context.Context, kind Kind, decision workflow.Decision, fallback string,
	call func(context.Context) (*remote.Confirmation, error)) (*remote.Confirmation, error) {

	reqs := d.state.Requirements
	if decision.ID == "" {
		return refuse[*remote.Confirmation](d, kind, reqs, ErrMissingID)
	}
	if err := decision.Validate(); err != nil {
		return refuse[*remote.Confirmation](d, kind, reqs, err)
	}
	return run(ctx, d, kind, reqs, fallback, call,
		func(*remote.Confirmation) { reqs.SettleDecision(decision.ID) })
}

// UpdateRequirement edits a requirement's descriptive fields. No collection changes;
// callers refetch the collection that should reflect the edit.
func (d *Dispatcher) UpdateRequirement(ctx context.Context, id string, update models.RequirementUpdate) (*remote.Confirmation, error) {
	reqs := d.state.Requirements
	if id == "" {
		return refuse[*remote.Confirmation](d, KindUpdateRequirement, reqs, ErrMissingID)
	}
	return run(ctx, d, KindUpdateRequirement, reqs, remote.FallbackUpdateRequirement,
		func(ctx context.Context) (*remote.Confirmation, error) {
			return d.remote.UpdateRequirement(ctx, id, update)
		},
		func(*remote.Confirmation) { reqs.Settle() })
}
