package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"venuebooking/internal/actor"
	"venuebooking/internal/auth"
	"venuebooking/internal/logger"
	"venuebooking/internal/user"
	"venuebooking/pkg/config"
)

type UserLookup interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Authenticate verifies the bearer token, loads the user and attaches the
// resolved actor to the request context.
//
// Expected header:
// - Authorization: Bearer <JWT>
func Authenticate(cfg config.Config, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			vt, err := auth.Verify(strings.TrimSpace(authz[7:]), cfg.Auth.Secret, cfg.Auth.Issuer, time.Now())
			if err != nil {
				logger.WithContext(r.Context()).Debug("token rejected", zap.Error(err))
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}

			u, err := users.FindByID(r.Context(), vt.UserID)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
				return
			}
			a, err := u.Actor()
			if err != nil {
				logger.WithContext(r.Context()).Warn("user has unusable role", zap.String("user_id", u.ID), zap.Error(err))
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "account is not permitted")
				return
			}

			ctx := logger.ContextWithUserID(r.Context(), a.ID)
			next.ServeHTTP(w, r.WithContext(WithActor(ctx, a)))
		})
	}
}

// RequestLogger assigns a request id (honouring X-Request-ID) and writes one
// access log line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if reqID == "" {
			reqID = logger.NewRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)

		ctx := logger.ContextWithRequestID(r.Context(), reqID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.WithContext(ctx).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// RequireActor writes 401 when no actor is attached and returns ok=false.
func RequireActor(w http.ResponseWriter, r *http.Request) (a actor.Actor, ok bool) {
	a, ok = ActorFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity")
	}
	return a, ok
}
