package store

// State groups the slices driven by one dispatcher
type State struct {
	Ngos         *NgoSlice
	Requirements *RequirementSlice
	Messages     *ConversationSlice
}

// Snapshot is a point-in-time copy of every slice. Each slice is copied under its own
// lock, so two slices may reflect different instants.
type Snapshot struct {
	Ngos         NgoSnapshot          `json:"ngo"`
	Requirements RequirementSnapshot  `json:"requirement"`
	Messages     ConversationSnapshot `json:"conversation"`
}

// New creates a State with empty slices
func New() *State {
	return &State{
		Ngos:         NewNgoSlice(),
		Requirements: NewRequirementSlice(),
		Messages:     NewConversationSlice(),
	}
}

// Snapshot copies every slice
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Ngos:         s.Ngos.Snapshot(),
		Requirements: s.Requirements.Snapshot(),
		Messages:     s.Messages.Snapshot(),
	}
}

// Subscribe registers fn on every slice
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	unsubs := []func(){
		s.Ngos.Subscribe(fn),
		s.Requirements.Subscribe(fn),
		s.Messages.Subscribe(fn),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Reset empties every slice, used on logout
func (s *State) Reset() {
	s.Ngos.ClearSearchResults()
	s.Ngos.SettlePending(nil)
	s.Requirements.ClearSearchResults()
	for _, c := range []Collection{PendingForAdmin, PendingForNgo, ApprovedForNgo, RejectedForNgo} {
		s.Requirements.SettleList(c, nil)
	}
	s.Messages.Reset()
}
