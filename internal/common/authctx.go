package common

import "context"

type userIDKey struct{}

// WithUserID attaches the authenticated account id to the context. Handlers
// read it back with UserID instead of re-parsing the token.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID reports the authenticated account id, or false for anonymous
// requests.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
