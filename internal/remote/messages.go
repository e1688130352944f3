package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

// Fallback messages for messaging operations
const (
	FallbackSendMessage  = "Failed to send message"
	FallbackConversation = "Failed to fetch messages"
)

// SendMessage delivers a direct message
func (c *Client) SendMessage(ctx context.Context, msg models.OutgoingMessage) (*Confirmation, error) {
	var out Confirmation
	if err := c.do(ctx, http.MethodPost, "/messages", nil, msg, &out, FallbackSendMessage); err != nil {
		return nil, err
	}
	return &out, nil
}

// Conversation returns the messages exchanged between participant and peer, oldest first
func (c *Client) Conversation(ctx context.Context, participant, peer string) ([]models.Message, error) {
	params := url.Values{}
	params.Set("user", participant)
	params.Set("withUser", peer)

	var out []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/"+segment(peer), params, nil, &out, FallbackConversation); err != nil {
		return nil, err
	}
	return out, nil
}
