package mockapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

func init() {
	// report fields by their JSON names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// RegisterUserRequest is the body of POST /registerUser
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterOrganizationRequest is the body of POST /registerNgo
type RegisterOrganizationRequest struct {
	Name           string `json:"name" binding:"required"`
	City           string `json:"city"`
	FullAddress    string `json:"fullAddress"`
	Category       string `json:"category"`
	RegistrationID string `json:"registrationId"`
	Contact        string `json:"contact"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
}

func (r RegisterOrganizationRequest) registration() models.OrganizationRegistration {
	return models.OrganizationRegistration{
		Name:           r.Name,
		City:           r.City,
		FullAddress:    r.FullAddress,
		Category:       r.Category,
		RegistrationID: r.RegistrationID,
		Contact:        r.Contact,
		Email:          r.Email,
		Password:       r.Password,
	}
}

// LoginRequest is the body of POST /loginUser
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ApproveOrganizationRequest is the body of POST /admin/approveNgo
type ApproveOrganizationRequest struct {
	NgoID string `json:"ngoId" binding:"required"`
}

// PostRequirementRequest is the body of POST /ngo/postRequirement
type PostRequirementRequest struct {
	NGOEmail    string `json:"ngoEmail" binding:"required,email"`
	Item        string `json:"item" binding:"required"`
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
}

func (r PostRequirementRequest) requirement() models.NewRequirement {
	return models.NewRequirement{
		NGOEmail:    r.NGOEmail,
		Item:        r.Item,
		Quantity:    r.Quantity,
		Description: r.Description,
	}
}

// DecideRequirementRequest is the body of POST /admin/{approve,reject}Requirement
type DecideRequirementRequest struct {
	RequirementID string `json:"requirementId" binding:"required"`
	Reason        string `json:"reason"`
}

// SendMessageRequest is the body of POST /messages
type SendMessageRequest struct {
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// bindErrorMessage turns a ShouldBindJSON error into the 400 message
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields = append(fields, fe.Field()+" is required")
		case "email":
			fields = append(fields, fe.Field()+" must be a valid email address")
		default:
			fields = append(fields, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(fields, "; ")
}
