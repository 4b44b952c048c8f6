package graphql

import "context"

type authTokenKey struct{}

// WithAuthToken returns ctx carrying the rider's bearer token
func WithAuthToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, authTokenKey{}, token)
}

// AuthTokenFromContext returns the token stored by WithAuthToken
func AuthTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey{}).(string)
	return token, ok && token != ""
}
