package context

import (
	stdctx "context"
	"strings"
)

type requestIDKey struct{}
type actorKey struct{}

type actor struct {
	id    string
	email string
}

func WithRequestID(ctx stdctx.Context, requestID string) stdctx.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return stdctx.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx stdctx.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// WithActor records the authenticated admin on the request context.
func WithActor(ctx stdctx.Context, id, email string) stdctx.Context {
	return stdctx.WithValue(ctx, actorKey{}, actor{
		id:    strings.TrimSpace(id),
		email: strings.TrimSpace(email),
	})
}

func ActorFromContext(ctx stdctx.Context) (string, string) {
	if ctx == nil {
		return "", ""
	}
	value, ok := ctx.Value(actorKey{}).(actor)
	if !ok {
		return "", ""
	}
	return value.id, value.email
}
