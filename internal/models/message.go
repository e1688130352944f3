// Package models - message.go defines a direct Message between two actors.
package models

// Message is one entry in a conversation between two actors, keyed by email
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Body      string    `json:"message"`
	CreatedAt Timestamp `json:"createdAt"`
}

// OutgoingMessage is the payload for sending a message
type OutgoingMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"message"`
}

// Involves reports whether the message was exchanged between a and b in either direction
func (m Message) Involves(a, b string) bool {
	return (m.From == a && m.To == b) || (m.From == b && m.To == a)
}
