package remote

import (
	"context"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

const (
	// RequestIDHeader carries a fresh UUID on every outgoing request
	RequestIDHeader = "X-Request-ID"
	// ActorEmailHeader identifies the authenticated actor issuing the request
	ActorEmailHeader = "X-Actor-Email"
	// ActorRoleHeader carries the role of the authenticated actor
	ActorRoleHeader = "X-Actor-Role"
)

type actorKey struct{}

// WithActor returns a context that makes the client attach actor identity headers.
// A nil actor leaves ctx unchanged.
func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	if actor == nil {
		return ctx
	}
	a := *actor
	return context.WithValue(ctx, actorKey{}, &a)
}

// ActorFrom returns the actor attached to ctx, if any
func ActorFrom(ctx context.Context) (*models.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(*models.Actor)
	return a, ok && a != nil
}
