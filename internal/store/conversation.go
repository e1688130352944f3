package store

import (
	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/workflow"
)

// ConversationSnapshot is a deep copy of the conversation slice
type ConversationSnapshot struct {
	Peer     string           `json:"peer"`
	Messages []models.Message `json:"messages"`
	Status   RequestStatus    `json:"status"`
}

// ConversationSlice owns the messages exchanged with the active peer
type ConversationSlice struct {
	base

	peer     string
	messages []models.Message
}

// NewConversationSlice creates an empty conversation slice
func NewConversationSlice() *ConversationSlice {
	return &ConversationSlice{
		base:     newBase(SliceConversation),
		messages: []models.Message{},
	}
}

// SettleConversation makes peer the active peer and replaces its messages
func (s *ConversationSlice) SettleConversation(peer string, result []models.Message) {
	s.update(OpSettle, func() {
		s.peer = peer
		s.messages = workflow.Replace(result)
		s.status = settledStatus()
	})
}

// SettleSend appends a sent message when it belongs to the active conversation
func (s *ConversationSlice) SettleSend(msg models.Message) {
	s.update(OpSettle, func() {
		if s.peer != "" && (msg.To == s.peer || msg.From == s.peer) {
			s.messages = append(workflow.Replace(s.messages), msg)
		}
		s.status = settledStatus()
	})
}

// Peer returns the active peer, empty when no conversation is loaded
func (s *ConversationSlice) Peer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.peer
}

// Reset forgets the active conversation
func (s *ConversationSlice) Reset() {
	s.update(OpClear, func() {
		s.peer = ""
		s.messages = []models.Message{}
	})
}

// Snapshot returns a deep copy of the slice
func (s *ConversationSlice) Snapshot() ConversationSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ConversationSnapshot{
		Peer:     s.peer,
		Messages: workflow.Replace(s.messages),
		Status:   s.status,
	}
}
