package middleware

import (
	"net/http"
	"strings"

	"github.com/bazaarly/bazaarly-backend/api/responses"
	pkgAuth "github.com/bazaarly/bazaarly-backend/pkg/auth"
	"github.com/bazaarly/bazaarly-backend/pkg/auth/session"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	"github.com/bazaarly/bazaarly-backend/pkg/config"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the actor.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			actor := authz.Actor{
				UserID:         claims.UserID,
				Role:           claims.Role,
				IsStaff:        claims.IsStaff,
				VendorID:       claims.VendorID,
				VendorApproved: claims.VendorApproved,
			}

			ctx := WithActor(r.Context(), actor)
			ctx = WithAccessID(ctx, claims.ID)

			if logg != nil {
				fields := map[string]any{
					"user_id":    actor.UserID.String(),
					"actor_role": string(actor.Role),
				}
				if actor.VendorID != nil {
					fields["vendor_id"] = actor.VendorID.String()
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
