// Package utils provides small helpers shared by the console, the API
// client and the mock backend: typed context keys, JSON envelope writing,
// the resty client constructor, JWT issue and parsing, token hashing and
// UUID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey stores the authenticated user ID (int64).
	UserIDCtxKey = contextKey("userID")
	// RolesCtxKey stores the authenticated user's roles ([]string).
	RolesCtxKey = contextKey("roles")
	// TraceIDCtxKey stores the request trace ID (string).
	TraceIDCtxKey = contextKey("traceID")
)

// GetUserIDFromContext returns the user ID stored under UserIDCtxKey.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetRolesFromContext returns the roles stored under RolesCtxKey.
func GetRolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(RolesCtxKey).([]string)
	return roles
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace ID stored in ctx, or "".
func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}
