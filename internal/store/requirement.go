package store

import (
	"fmt"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/workflow"
)

// Collection names one requirement collection
type Collection int

const (
	SearchResults Collection = iota
	PendingForAdmin
	PendingForNgo
	ApprovedForNgo
	RejectedForNgo
)

func (c Collection) String() string {
	switch c {
	case SearchResults:
		return "searchResults"
	case PendingForAdmin:
		return "pendingForAdmin"
	case PendingForNgo:
		return "pendingForNgo"
	case ApprovedForNgo:
		return "approvedForNgo"
	case RejectedForNgo:
		return "rejectedForNgo"
	default:
		return fmt.Sprintf("collection(%d)", int(c))
	}
}

// pendingCollections are cleaned when an admin decides a requirement
var pendingCollections = []Collection{PendingForAdmin, PendingForNgo}

// RequirementSearch holds the last search filters used for requirements
type RequirementSearch struct {
	Item string `json:"item"`
}

// RequirementSnapshot is a deep copy of the requirement slice
type RequirementSnapshot struct {
	SearchResults   []models.Requirement `json:"searchResults"`
	PendingForAdmin []models.Requirement `json:"pendingForAdmin"`
	PendingForNgo   []models.Requirement `json:"pendingForNgo"`
	ApprovedForNgo  []models.Requirement `json:"approvedForNgo"`
	RejectedForNgo  []models.Requirement `json:"rejectedForNgo"`
	Filters         RequirementSearch    `json:"searchFilters"`
	Status          RequestStatus        `json:"status"`
}

// Collection returns the named collection from the snapshot
func (s RequirementSnapshot) Collection(c Collection) []models.Requirement {
	switch c {
	case SearchResults:
		return s.SearchResults
	case PendingForAdmin:
		return s.PendingForAdmin
	case PendingForNgo:
		return s.PendingForNgo
	case ApprovedForNgo:
		return s.ApprovedForNgo
	case RejectedForNgo:
		return s.RejectedForNgo
	default:
		return nil
	}
}

// RequirementSlice owns every requirement collection
type RequirementSlice struct {
	base

	collections map[Collection][]models.Requirement
	filters     RequirementSearch
}

// NewRequirementSlice creates an empty requirement slice
func NewRequirementSlice() *RequirementSlice {
	s := &RequirementSlice{
		base:        newBase(SliceRequirement),
		collections: make(map[Collection][]models.Requirement, 5),
	}
	for c := SearchResults; c <= RejectedForNgo; c++ {
		s.collections[c] = []models.Requirement{}
	}
	return s
}

// SettleList replaces collection c with result
func (s *RequirementSlice) SettleList(c Collection, result []models.Requirement) {
	s.update(OpSettle, func() {
		s.collections[c] = workflow.Replace(result)
		s.status = settledStatus()
	})
}

// SettleDecision removes a decided requirement from every pending collection.
// Approved and rejected collections only change on refetch.
func (s *RequirementSlice) SettleDecision(id string) {
	s.update(OpSettle, func() {
		for _, c := range pendingCollections {
			s.collections[c] = workflow.RemoveByID(s.collections[c], id)
		}
		s.status = settledStatus()
	})
}

// AddRequirement prepends a locally known requirement to the search results
func (s *RequirementSlice) AddRequirement(r models.Requirement) {
	s.update(OpSettle, func() {
		s.collections[SearchResults] = workflow.Prepend(s.collections[SearchResults], r)
	})
}

// ClearPendingRequirements empties the admin pending list
func (s *RequirementSlice) ClearPendingRequirements() {
	s.update(OpClear, func() { s.collections[PendingForAdmin] = []models.Requirement{} })
}

// ClearSearchResults empties the search results
func (s *RequirementSlice) ClearSearchResults() {
	s.update(OpClear, func() { s.collections[SearchResults] = []models.Requirement{} })
}

// SetSearchFilters records the filters of the current search
func (s *RequirementSlice) SetSearchFilters(f RequirementSearch) {
	s.update(OpFilters, func() { s.filters = f })
}

// SearchFilters returns the recorded search filters
func (s *RequirementSlice) SearchFilters() RequirementSearch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// Snapshot returns a deep copy of the slice
func (s *RequirementSlice) Snapshot() RequirementSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RequirementSnapshot{
		SearchResults:   workflow.Replace(s.collections[SearchResults]),
		PendingForAdmin: workflow.Replace(s.collections[PendingForAdmin]),
		PendingForNgo:   workflow.Replace(s.collections[PendingForNgo]),
		ApprovedForNgo:  workflow.Replace(s.collections[ApprovedForNgo]),
		RejectedForNgo:  workflow.Replace(s.collections[RejectedForNgo]),
		Filters:         s.filters,
		Status:          s.status,
	}
}
