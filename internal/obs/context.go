package obs

import "context"

type routePatternKey struct{}

// WithRoutePattern stores the matched chi pattern on the context so metrics
// and logs label by template ("/api/v1/invoices/{id}") instead of raw path.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	return context.WithValue(ctx, routePatternKey{}, pattern)
}

// RoutePatternFromContext returns the stored pattern, or "" when the request
// never matched a route.
func RoutePatternFromContext(ctx context.Context) string {
	v, _ := ctx.Value(routePatternKey{}).(string)
	return v
}
