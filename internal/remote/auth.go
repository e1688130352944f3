package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Fallback messages for account operations
const (
	FallbackRegisterUser         = "Registration failed"
	FallbackRegisterOrganization = "NGO registration failed"
	FallbackLogin                = "Login failed"
)

type loginResponse struct {
	Message string        `json:"message"`
	User    *models.Actor `json:"user"`
}

// RegisterUser creates a plain user account
func (c *Client) RegisterUser(ctx context.Context, reg models.UserRegistration) (*Confirmation, error) {
	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/registerUser", nil, reg, &out, FallbackRegisterUser); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterOrganization creates an NGO account awaiting admin approval
func (c *Client) RegisterOrganization(ctx context.Context, reg models.OrganizationRegistration) (*Confirmation, error) {
	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/registerNgo", nil, reg, &out, FallbackRegisterOrganization); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for the authenticated actor
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Actor, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/loginUser", nil, creds, &out, FallbackLogin); err != nil {
		return nil, err
	}
	if out.User == nil || out.User.Email == "" {
		return nil, newAPIError(KindMalformed, http.StatusOK, "", FallbackLogin, fmt.Errorf("login response has no user"))
	}
	if !out.User.Role.Valid() {
		return nil, newAPIError(KindMalformed, http.StatusOK, "", FallbackLogin, fmt.Errorf("login response has unknown role %q", out.User.Role))
	}
	return out.User, nil
}
