package commands

import (
	"context"
	"time"

	"github.com/ngoconnect/ngoconnect/internal/models"
	"github.com/ngoconnect/ngoconnect/internal/remote"
)

// SendMessage sends body to the given recipient from the current actor. When the
// recipient is the active conversation peer the sent message is appended locally.
func (d *Dispatcher) SendMessage(ctx context.Context, to, body string) (*remote.Confirmation, error) {
	msgs := d.state.Messages
	actor := d.actor()
	if actor == nil {
		return refuse[*remote.Confirmation](d, KindSendMessage, msgs, ErrNoActor)
	}
	out := models.OutgoingMessage{From: actor.Email, To: to, Body: body}

	return run(ctx, d, KindSendMessage, msgs, remote.FallbackSendMessage,
		func(ctx context.Context) (*remote.Confirmation, error) {
			return d.remote.SendMessage(ctx, out)
		},
		func(conf *remote.Confirmation) {
			sent := models.Message{
				From:      out.From,
				To:        out.To,
				Body:      out.Body,
				CreatedAt: models.NewTimestamp(time.Now()),
			}
			if conf != nil {
				sent.ID = conf.ID
			}
			msgs.SettleSend(sent)
		})
}

// LoadConversation makes peer the active conversation and replaces its messages
func (d *Dispatcher) LoadConversation(ctx context.Context, peer string) ([]models.Message, error) {
	msgs := d.state.Messages
	actor := d.actor()
	if actor == nil {
		return refuse[[]models.Message](d, KindLoadConversation, msgs, ErrNoActor)
	}

	return run(ctx, d, KindLoadConversation, msgs, remote.FallbackConversation,
		func(ctx context.Context) ([]models.Message, error) {
			return d.remote.Conversation(ctx, actor.Email, peer)
		},
		func(result []models.Message) { msgs.SettleConversation(peer, result) })
}
