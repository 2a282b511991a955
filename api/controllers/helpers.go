package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazaarly/bazaarly-backend/api/middleware"
	"github.com/bazaarly/bazaarly-backend/pkg/authz"
	pkgerrors "github.com/bazaarly/bazaarly-backend/pkg/errors"
)

func requestActor(r *http.Request) (authz.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return actor, nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
