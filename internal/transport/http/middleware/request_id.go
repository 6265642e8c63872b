package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"staffsync/internal/platform/requestctx"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with a correlation id, honouring one the
// client already supplied, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestctx.Set(r.Context(), id)))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.From(ctx)
}
