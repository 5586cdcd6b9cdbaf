// Package handlers exposes the hiring services over a JSON REST API,
// translating between wire DTOs and domain models and mapping domain
// errors onto HTTP status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireflow/server/internal/hiring/auth"
	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/models"
)

type API struct {
	accounts     *AccountController
	jobs         *JobController
	applications *ApplicationController
	jwtSecret    string
	logger       *zap.Logger
}

func NewAPI(
	accounts *AccountController,
	jobs *JobController,
	applications *ApplicationController,
	jwtSecret string,
	logger *zap.Logger,
) *API {
	return &API{
		accounts:     accounts,
		jobs:         jobs,
		applications: applications,
		jwtSecret:    jwtSecret,
		logger:       logger.Named("http_api"),
	}
}

// Router wires all routes. Registration, login, and job browsing are
// public; everything else requires a bearer token.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.accounts.Register)
		r.Post("/auth/login", a.accounts.Login)
		r.Get("/jobs", a.jobs.List)
		r.Get("/jobs/{jobID}", a.jobs.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(a.jwtSecret))

			r.Post("/jobs", a.jobs.Create)
			r.Post("/jobs/{jobID}/applications", a.applications.Submit)
			r.Get("/jobs/{jobID}/applications", a.applications.ListByJob)
			r.Get("/applications/{applicationID}", a.applications.Get)
			r.Post("/applications/{applicationID}/status", a.applications.Transition)
			r.Get("/candidates/me/applications", a.applications.ListMine)
			r.Get("/companies/{companyID}/recruiters", a.accounts.ListRecruiters)
			r.Delete("/companies/{companyID}/recruiters/{recruiterID}", a.accounts.RemoveRecruiter)
			r.Get("/companies/{companyID}/shortlisted", a.applications.ListShortlisted)
		})
	})

	return r
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps domain errors to status codes. Unrecognized errors
// become opaque 500s so internals never leak to clients.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, e.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, e.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, e.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, e.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, e.ErrInvalidTransition):
		status, msg = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, e.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	default:
		logger.Error("request failed", zap.Error(err))
	}

	respondJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(e.ErrInvalidInput, err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.Join(e.ErrInvalidInput, err)
	}
	return id, nil
}

// identityFromRequest fetches the Identity the auth middleware stored.
func identityFromRequest(r *http.Request) (auth.Identity, error) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		return auth.Identity{}, e.ErrUnauthenticated
	}
	return identity, nil
}

// userResponse omits the password hash and normalizes the company id.
type userResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CompanyID string      `json:"companyId,omitempty"`
}

func toUserResponse(user *models.User) userResponse {
	resp := userResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}
	if user.CompanyID != nil {
		resp.CompanyID = user.CompanyID.String()
	}
	return resp
}
