package controllers

import (
	"net/http"

	"github.com/bazaarly/bazaarly-backend/api/middleware"
	"github.com/bazaarly/bazaarly-backend/api/responses"
	"github.com/bazaarly/bazaarly-backend/api/validators"
	authsvc "github.com/bazaarly/bazaarly-backend/internal/auth"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
	"github.com/bazaarly/bazaarly-backend/pkg/logger"
)

type authResponse struct {
	User        userPayload `json:"user"`
	AccessToken string      `json:"access_token"`
}

// AuthRegister creates a customer account.
func AuthRegister(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.RegisterInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, authResponse{
			User:        newUserPayload(result.User),
			AccessToken: result.AccessToken,
		})
	}
}

// AuthLogin verifies credentials and opens a session.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, authResponse{
			User:        newUserPayload(result.User),
			AccessToken: result.AccessToken,
		})
	}
}

// AuthLogout revokes the session behind the presented access token.
func AuthLogout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
