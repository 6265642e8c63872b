// Package requestctx carries the per-request correlation id through the
// context so log lines emitted below the transport layer can be tied back to
// one HTTP request.
package requestctx

import "context"

type idKey struct{}

// Set returns a child context carrying id.
func Set(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey{}, id)
}

// From returns the correlation id carried by ctx, or "" when none was set.
func From(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}
