package store

import (
	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/workflow"
)

// OrganizationSearch holds the last search filters used for organizations
type OrganizationSearch struct {
	City string `json:"city"`
	Name string `json:"name"`
}

// NgoSnapshot is a deep copy of the NGO slice
type NgoSnapshot struct {
	SearchResults []models.Organization `json:"searchResults"`
	Pending       []models.Organization `json:"pending"`
	Filters       OrganizationSearch    `json:"searchFilters"`
	Status        RequestStatus         `json:"status"`
}

// NgoSlice owns organization search results and the admin pending list
type NgoSlice struct {
	base

	searchResults []models.Organization
	pending       []models.Organization
	filters       OrganizationSearch
}

// NewNgoSlice creates an empty NGO slice
func NewNgoSlice() *NgoSlice {
	return &NgoSlice{
		base:          newBase(SliceNgo),
		searchResults: []models.Organization{},
		pending:       []models.Organization{},
	}
}

// SettleSearch replaces the search results with result
func (s *NgoSlice) SettleSearch(result []models.Organization) {
	s.update(OpSettle, func() {
		s.searchResults = workflow.Replace(result)
		s.status = settledStatus()
	})
}

// SettlePending replaces the pending list with result
func (s *NgoSlice) SettlePending(result []models.Organization) {
	s.update(OpSettle, func() {
		s.pending = workflow.Replace(result)
		s.status = settledStatus()
	})
}

// SettleApprove removes the approved organization from the pending list
func (s *NgoSlice) SettleApprove(id string) {
	s.update(OpSettle, func() {
		s.pending = workflow.RemoveByID(s.pending, id)
		s.status = settledStatus()
	})
}

// SetSearchFilters records the filters of the current search
func (s *NgoSlice) SetSearchFilters(f OrganizationSearch) {
	s.update(OpFilters, func() { s.filters = f })
}

// SearchFilters returns the recorded search filters
func (s *NgoSlice) SearchFilters() OrganizationSearch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// ClearSearchResults empties the search results
func (s *NgoSlice) ClearSearchResults() {
	s.update(OpClear, func() { s.searchResults = []models.Organization{} })
}

// Snapshot returns a deep copy of the slice
func (s *NgoSlice) Snapshot() NgoSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NgoSnapshot{
		SearchResults: workflow.Replace(s.searchResults),
		Pending:       workflow.Replace(s.pending),
		Filters:       s.filters,
		Status:        s.status,
	}
}
