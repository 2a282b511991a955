package middleware

import (
	"context"

	"github.com/bazaarly/bazaarly-backend/pkg/authz"
)

type contextKey string

const (
	ctxActor    contextKey = "actor"
	ctxAccessID contextKey = "access_id"
)

// ActorFromContext returns the authenticated actor seeded by the Auth middleware.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	if ctx == nil {
		return authz.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(authz.Actor)
	return actor, ok
}

// AccessIDFromContext returns the session identifier (JWT jti) for the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the actor into the context.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

// WithAccessID injects the session identifier into the context.
func WithAccessID(ctx context.Context, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessID, accessID)
}
