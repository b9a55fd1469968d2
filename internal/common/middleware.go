package common

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const (
	CtxUserID ctxKey = "user_id"
	CtxHandle ctxKey = "handle"
)

// AuthMiddleware enforces a Bearer token on every route it wraps and injects
// the authenticated identity into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeAuthError(w, "authorization required")
			return
		}

		// header = Bearer <token>
		parts := strings.Fields(header)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeAuthError(w, "invalid auth header")
			return
		}

		claims, err := Authenticate(parts[1])
		if err != nil {
			writeAuthError(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxHandle, claims.Handle)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the identity injected by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(CtxUserID).(uint64)
	return id, ok
}

// RequestLogger tags each request with a short id and logs method, path and
// duration once the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()[:8]
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s (%v)", reqID, r.Method, r.URL.Path, time.Since(start))
	})
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
