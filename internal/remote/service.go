package remote

import (
	"context"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Service is the remote contract consumed by the session store and the command layer.
// *Client implements it over HTTP; tests substitute in-memory fakes.
type Service interface {
	RegisterUser(ctx context.Context, reg models.UserRegistration) (*Confirmation, error)
	RegisterOrganization(ctx context.Context, reg models.OrganizationRegistration) (*Confirmation, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Actor, error)

	SearchOrganizations(ctx context.Context, q OrganizationQuery) ([]models.Organization, error)
	PendingOrganizations(ctx context.Context) ([]models.Organization, error)
	ApproveOrganization(ctx context.Context, id string) (*Confirmation, error)

	PostRequirement(ctx context.Context, req models.NewRequirement) (*Confirmation, error)
	SearchRequirements(ctx context.Context, q RequirementQuery) ([]models.Requirement, error)
	OrganizationRequirements(ctx context.Context, ngoEmail string, status models.Status) ([]models.Requirement, error)
	PendingRequirements(ctx context.Context) ([]models.Requirement, error)
	ApproveRequirement(ctx context.Context, id string) (*Confirmation, error)
	RejectRequirement(ctx context.Context, id, reason string) (*Confirmation, error)
	UpdateRequirement(ctx context.Context, id string, update models.RequirementUpdate) (*Confirmation, error)

	SendMessage(ctx context.Context, msg models.OutgoingMessage) (*Confirmation, error)
	Conversation(ctx context.Context, participant, peer string) ([]models.Message, error)
}

// Confirmation is the acknowledgement returned by mutating operations
type Confirmation struct {
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// OrganizationQuery holds the optional server-side organization search filters
type OrganizationQuery struct {
	City string
	Name string
}

// RequirementQuery holds the optional server-side requirement search filter
type RequirementQuery struct {
	Item string
}

var _ Service = (*Client)(nil)
