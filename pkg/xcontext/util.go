package xcontext

import "context"

type userIDKey struct{}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// RequestUserID returns the id of the user this request acts on behalf of, or
// an empty string when the request is unauthenticated (e.g. a timer firing).
func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}
