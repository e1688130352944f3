package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

func requirement(id string, status models.Status) models.Requirement {
	return models.Requirement{ID: id, NGOEmail: "help@ngo.org", Item: "rice", Status: status}
}

func requirementIDs(items []models.Requirement) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// RequestStatus transitions
// ---------------------------------------------------------------------------

func TestBeginSettleFail(t *testing.T) {
	s := NewNgoSlice()
	assert.Equal(t, RequestStatus{}, s.Status())

	s.Begin()
	assert.Equal(t, RequestStatus{Loading: true}, s.Status())

	s.Fail("Search failed")
	assert.Equal(t, RequestStatus{Error: "Search failed"}, s.Status())
	assert.True(t, s.Status().Failed())

	// next command of the family clears the error
	s.Begin()
	assert.Equal(t, RequestStatus{Loading: true}, s.Status())

	s.SettleSearch([]models.Organization{{ID: "n1"}})
	assert.Equal(t, RequestStatus{}, s.Status())
}

func TestFail_LeavesCollectionsUntouched(t *testing.T) {
	s := NewRequirementSlice()
	s.SettleList(PendingForAdmin, []models.Requirement{requirement("r1", models.StatusPending)})

	s.Begin()
	s.Fail("Approval failed")

	snap := s.Snapshot()
	assert.Equal(t, []string{"r1"}, requirementIDs(snap.PendingForAdmin))
	assert.Equal(t, "Approval failed", snap.Status.Error)
}

func TestClearError(t *testing.T) {
	s := NewConversationSlice()
	s.Fail("Failed to send message")
	s.ClearError()
	assert.Equal(t, RequestStatus{}, s.Status())
}

// ---------------------------------------------------------------------------
// NGO slice
// ---------------------------------------------------------------------------

func TestNgoSlice_ApproveRemovesFromPending(t *testing.T) {
	s := NewNgoSlice()
	s.SettlePending([]models.Organization{{ID: "n1"}, {ID: "n2"}, {ID: "n3"}})
	s.SettleSearch([]models.Organization{{ID: "n9"}})

	s.SettleApprove("n2")

	snap := s.Snapshot()
	require.Len(t, snap.Pending, 2)
	assert.Equal(t, "n1", snap.Pending[0].ID)
	assert.Equal(t, "n3", snap.Pending[1].ID)
	assert.Len(t, snap.SearchResults, 1, "search results are not touched by approval")
}

func TestNgoSlice_FiltersAndClear(t *testing.T) {
	s := NewNgoSlice()
	s.SetSearchFilters(OrganizationSearch{City: "Pune"})
	assert.Equal(t, OrganizationSearch{City: "Pune"}, s.SearchFilters())

	s.SettleSearch([]models.Organization{{ID: "n1"}})
	s.ClearSearchResults()
	snap := s.Snapshot()
	assert.NotNil(t, snap.SearchResults)
	assert.Empty(t, snap.SearchResults)
	assert.Equal(t, "Pune", snap.Filters.City)
}

func TestNgoSlice_SnapshotIsCopy(t *testing.T) {
	s := NewNgoSlice()
	s.SettleSearch([]models.Organization{{ID: "n1", Name: "Food Bank"}})

	snap := s.Snapshot()
	snap.SearchResults[0].Name = "mutated"

	assert.Equal(t, "Food Bank", s.Snapshot().SearchResults[0].Name)
}

// ---------------------------------------------------------------------------
// Requirement slice
// ---------------------------------------------------------------------------

func TestRequirementSlice_DecisionCleansEveryPendingCollection(t *testing.T) {
	s := NewRequirementSlice()
	s.SettleList(PendingForAdmin, []models.Requirement{
		requirement("r1", models.StatusPending),
		requirement("r2", models.StatusPending),
		requirement("r3", models.StatusPending),
	})
	s.SettleList(PendingForNgo, []models.Requirement{
		requirement("r2", models.StatusPending),
		requirement("r4", models.StatusPending),
	})
	s.SettleList(ApprovedForNgo, []models.Requirement{requirement("r0", models.StatusApproved)})

	s.SettleDecision("r2")

	snap := s.Snapshot()
	assert.Equal(t, []string{"r1", "r3"}, requirementIDs(snap.PendingForAdmin))
	assert.Equal(t, []string{"r4"}, requirementIDs(snap.PendingForNgo))
	assert.Equal(t, []string{"r0"}, requirementIDs(snap.ApprovedForNgo), "nothing synthesized locally")
	assert.Empty(t, snap.RejectedForNgo)
}

func TestRequirementSlice_MutualExclusionAfterRefetch(t *testing.T) {
	s := NewRequirementSlice()
	s.SettleList(PendingForNgo, []models.Requirement{requirement("r1", models.StatusPending)})
	s.SettleDecision("r1")
	s.SettleList(ApprovedForNgo, []models.Requirement{requirement("r1", models.StatusApproved)})

	snap := s.Snapshot()
	count := 0
	for _, c := range []Collection{PendingForNgo, ApprovedForNgo, RejectedForNgo} {
		for _, r := range snap.Collection(c) {
			if r.ID == "r1" {
				count++
			}
		}
	}
	assert.Equal(t, 1, count)
}

func TestRequirementSlice_ReplacePreservesServerOrder(t *testing.T) {
	s := NewRequirementSlice()
	s.SettleList(SearchResults, []models.Requirement{
		requirement("b", models.StatusApproved),
		requirement("a", models.StatusApproved),
	})
	assert.Equal(t, []string{"b", "a"}, requirementIDs(s.Snapshot().SearchResults))

	s.SettleList(SearchResults, nil)
	got := s.Snapshot().SearchResults
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRequirementSlice_AddAndClear(t *testing.T) {
	s := NewRequirementSlice()
	s.SettleList(SearchResults, []models.Requirement{requirement("a", models.StatusApproved)})
	s.AddRequirement(requirement("z", models.StatusApproved))
	assert.Equal(t, []string{"z", "a"}, requirementIDs(s.Snapshot().SearchResults))

	s.SettleList(PendingForAdmin, []models.Requirement{requirement("p", models.StatusPending)})
	s.ClearPendingRequirements()
	assert.Empty(t, s.Snapshot().PendingForAdmin)

	s.SetSearchFilters(RequirementSearch{Item: "rice"})
	s.ClearSearchResults()
	assert.Empty(t, s.Snapshot().SearchResults)
	assert.Equal(t, "rice", s.SearchFilters().Item)
}

func TestCollection_String(t *testing.T) {
	assert.Equal(t, "pendingForAdmin", PendingForAdmin.String())
	assert.Equal(t, "collection(42)", Collection(42).String())
}

// ---------------------------------------------------------------------------
// Conversation slice
// ---------------------------------------------------------------------------

func TestConversationSlice_SendAppendsForActivePeer(t *testing.T) {
	s := NewConversationSlice()
	s.SettleConversation("help@ngo.org", []models.Message{
		{ID: "m1", From: "help@ngo.org", To: "donor@example.org", Body: "hello"},
	})

	s.SettleSend(models.Message{ID: "m2", From: "donor@example.org", To: "help@ngo.org", Body: "hi"})
	s.SettleSend(models.Message{ID: "m3", From: "donor@example.org", To: "other@ngo.org", Body: "elsewhere"})

	snap := s.Snapshot()
	assert.Equal(t, "help@ngo.org", snap.Peer)
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "m2", snap.Messages[1].ID)
}

func TestConversationSlice_SendWithoutConversation(t *testing.T) {
	s := NewConversationSlice()
	s.Begin()
	s.SettleSend(models.Message{ID: "m1", From: "a", To: "b"})

	snap := s.Snapshot()
	assert.Empty(t, snap.Messages)
	assert.False(t, snap.Status.Loading)

	s.SettleConversation("b", nil)
	s.Reset()
	assert.Empty(t, s.Peer())
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func TestSubscribe_NotifiedAfterTransition(t *testing.T) {
	s := NewNgoSlice()

	var seen []RequestStatus
	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) {
		changes = append(changes, c)
		// reading inside the callback must not deadlock and must see the applied state
		seen = append(seen, s.Status())
	})

	s.Begin()
	s.Fail("boom")
	unsubscribe()
	unsubscribe()
	s.Begin()

	assert.Equal(t, []Change{{Slice: SliceNgo, Op: OpBegin}, {Slice: SliceNgo, Op: OpFail}}, changes)
	assert.Equal(t, []RequestStatus{{Loading: true}, {Error: "boom"}}, seen)
}

func TestState_SubscribeAllSlices(t *testing.T) {
	st := New()

	var mu sync.Mutex
	counts := map[string]int{}
	unsubscribe := st.Subscribe(func(c Change) {
		mu.Lock()
		counts[c.Slice]++
		mu.Unlock()
	})
	defer unsubscribe()

	st.Ngos.Begin()
	st.Requirements.Begin()
	st.Messages.Begin()

	assert.Equal(t, map[string]int{SliceNgo: 1, SliceRequirement: 1, SliceConversation: 1}, counts)
}

func TestState_Reset(t *testing.T) {
	st := New()
	st.Ngos.SettlePending([]models.Organization{{ID: "n1"}})
	st.Requirements.SettleList(ApprovedForNgo, []models.Requirement{requirement("r1", models.StatusApproved)})
	st.Messages.SettleConversation("peer", []models.Message{{ID: "m1"}})

	st.Reset()

	snap := st.Snapshot()
	assert.Empty(t, snap.Ngos.Pending)
	assert.Empty(t, snap.Requirements.ApprovedForNgo)
	assert.Empty(t, snap.Messages.Messages)
	assert.Empty(t, snap.Messages.Peer)
}

func TestConcurrentTransitions(t *testing.T) {
	s := NewRequirementSlice()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Begin()
			s.SettleList(SearchResults, []models.Requirement{requirement("r", models.StatusApproved)})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.SearchResults, 1)
	assert.False(t, snap.Status.Loading)
}
