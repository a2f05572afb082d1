package api

import (
	"context"

	"venuebooking/internal/actor"
)

type ctxKey string

const ctxKeyActor ctxKey = "actor"

func WithActor(ctx context.Context, a actor.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, a)
}

func ActorFromContext(ctx context.Context) (actor.Actor, bool) {
	a, ok := ctx.Value(ctxKeyActor).(actor.Actor)
	return a, ok
}
