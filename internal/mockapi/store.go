package mockapi

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/workflow"
)

var (
	errAccountExists     = errors.New("account already exists")
	errInvalidLogin      = errors.New("invalid credentials")
	errNotApproved       = errors.New("organization not approved")
	errOrgNotFound       = errors.New("organization not found")
	errRequirementGone   = errors.New("requirement not found")
	errInvalidTransition = errors.New("invalid status transition")
)

type account struct {
	email string
	role  models.Role
	hash  []byte
	orgID string
}

type requirementRecord struct {
	models.Requirement
	createdAt time.Time
}

type messageRecord struct {
	models.Message
	createdAt time.Time
}

// memoryStore holds every entity of the mock service. Slices keep insertion order.
type memoryStore struct {
	mu           sync.RWMutex
	now          func() time.Time
	bcryptCost   int
	accounts     map[string]*account
	orgs         []*models.Organization
	requirements []*requirementRecord
	messages     []*messageRecord
}

func newMemoryStore(now func() time.Time, cost int) *memoryStore {
	if now == nil {
		now = time.Now
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &memoryStore{
		now:        now,
		bcryptCost: cost,
		accounts:   make(map[string]*account),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *memoryStore) addAccount(email, password string, role models.Role, orgID string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	key := normalizeEmail(email)
	if _, ok := s.accounts[key]; ok {
		return errAccountExists
	}
	s.accounts[key] = &account{email: strings.TrimSpace(email), role: role, hash: hash, orgID: orgID}
	return nil
}

func (s *memoryStore) registerUser(email, password string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccount(email, password, role, "")
}

func (s *memoryStore) registerOrganization(reg models.OrganizationRegistration) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org := &models.Organization{
		ID:             uuid.New().String(),
		Name:           reg.Name,
		City:           reg.City,
		FullAddress:    reg.FullAddress,
		Category:       reg.Category,
		RegistrationID: reg.RegistrationID,
		Contact:        reg.Contact,
		Email:          strings.TrimSpace(reg.Email),
		Status:         models.StatusPending,
	}
	if err := s.addAccount(reg.Email, reg.Password, models.RoleNGO, org.ID); err != nil {
		return nil, err
	}
	s.orgs = append(s.orgs, org)
	return org, nil
}

func (s *memoryStore) login(email, password string) (*models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return nil, errInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return nil, errInvalidLogin
	}
	if acct.role == models.RoleNGO {
		if org := s.findOrg(acct.orgID); org == nil || org.Status != models.StatusApproved {
			return nil, errNotApproved
		}
	}
	return &models.Actor{Email: acct.email, Role: acct.role}, nil
}

func (s *memoryStore) findOrg(id string) *models.Organization {
	for _, o := range s.orgs {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (s *memoryStore) orgByEmail(email string) *models.Organization {
	key := normalizeEmail(email)
	for _, o := range s.orgs {
		if normalizeEmail(o.Email) == key {
			return o
		}
	}
	return nil
}

func (s *memoryStore) listOrganizations(keep func(*models.Organization) bool) []models.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Organization{}
	for _, o := range s.orgs {
		if keep(o) {
			out = append(out, *o)
		}
	}
	return out
}

func (s *memoryStore) approveOrganization(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org := s.findOrg(id)
	if org == nil {
		return errOrgNotFound
	}
	next, err := workflow.Approve(id).Apply(org.Status)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidTransition, err)
	}
	org.Status = next
	return nil
}

func (s *memoryStore) postRequirement(req models.NewRequirement) (*models.Requirement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.orgByEmail(req.NGOEmail) == nil {
		return nil, errOrgNotFound
	}
	rec := &requirementRecord{
		Requirement: models.Requirement{
			ID:          uuid.New().String(),
			NGOEmail:    strings.TrimSpace(req.NGOEmail),
			Item:        req.Item,
			Quantity:    req.Quantity,
			Description: req.Description,
			Status:      models.StatusPending,
		},
		createdAt: s.now(),
	}
	s.requirements = append(s.requirements, rec)
	r := rec.Requirement
	return &r, nil
}

func (s *memoryStore) findRequirement(id string) *requirementRecord {
	for _, r := range s.requirements {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *memoryStore) listRequirements(keep func(*requirementRecord) bool) []*requirementRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*requirementRecord{}
	for _, r := range s.requirements {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func (s *memoryStore) decideRequirement(decision workflow.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.findRequirement(decision.ID)
	if rec == nil {
		return errRequirementGone
	}
	next, err := decision.Apply(rec.Status)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidTransition, err)
	}
	rec.Status = next
	if next == models.StatusRejected {
		rec.RejectionReason = decision.Reason
	}
	return nil
}

func (s *memoryStore) updateRequirement(id string, u models.RequirementUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.findRequirement(id)
	if rec == nil {
		return errRequirementGone
	}
	if u.Item != "" {
		rec.Item = u.Item
	}
	if u.Quantity != "" {
		rec.Quantity = u.Quantity
	}
	if u.Description != "" {
		rec.Description = u.Description
	}
	return nil
}

func (s *memoryStore) addMessage(msg models.OutgoingMessage) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &messageRecord{
		Message: models.Message{
			ID:   uuid.New().String(),
			From: strings.TrimSpace(msg.From),
			To:   strings.TrimSpace(msg.To),
			Body: msg.Body,
		},
		createdAt: s.now(),
	}
	s.messages = append(s.messages, rec)
	return rec.ID
}

// conversation returns the messages between a and b, oldest first
func (s *memoryStore) conversation(a, b string) []*messageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, b = normalizeEmail(a), normalizeEmail(b)
	out := []*messageRecord{}
	for _, m := range s.messages {
		if (normalizeEmail(m.From) == a && normalizeEmail(m.To) == b) ||
			(normalizeEmail(m.From) == b && normalizeEmail(m.To) == a) {
			cp := *m
			out = append(out, &cp)
		}
	}
	slices.SortStableFunc(out, func(x, y *messageRecord) int {
		return x.createdAt.Compare(y.createdAt)
	})
	return out
}
