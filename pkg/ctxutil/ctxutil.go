// Package ctxutil carries per-request values through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// key is distinct per name and value type, so values set by other
// packages can never collide with these.
type key[T any] struct{ name string }

var (
	userIDKey    = key[uuid.UUID]{"user_id"}
	requestIDKey = key[string]{"request_id"}
	clientIPKey  = key[string]{"client_ip"}
)

func with[T any](ctx context.Context, k key[T], v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func from[T any](ctx context.Context, k key[T]) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

// WithUserID stores the authenticated user ID.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return with(ctx, userIDKey, id)
}

// UserIDFromCtx reports false when no user is stored or the stored ID is uuid.Nil.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := from(ctx, userIDKey)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return with(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns "" when absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := from(ctx, requestIDKey)
	return id
}

// WithClientIP stores the resolved client address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return with(ctx, clientIPKey, ip)
}

// ClientIPFromCtx returns "" when absent.
func ClientIPFromCtx(ctx context.Context) string {
	ip, _ := from(ctx, clientIPKey)
	return ip
}
