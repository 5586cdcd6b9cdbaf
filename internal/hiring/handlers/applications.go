package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hireflow/server/internal/hiring/controller"
	"github.com/hireflow/server/internal/hiring/models"
)

// ApplicationController serves submissions, reads, and status transitions.
type ApplicationController struct {
	applications *controller.ApplicationService
	lifecycle    *controller.LifecycleService
	queries      *controller.QueryService
	logger       *zap.Logger
}

func NewApplicationController(
	applications *controller.ApplicationService,
	lifecycle *controller.LifecycleService,
	queries *controller.QueryService,
	logger *zap.Logger,
) *ApplicationController {
	return &ApplicationController{
		applications: applications,
		lifecycle:    lifecycle,
		queries:      queries,
		logger:       logger.Named("application_handler"),
	}
}

type submitRequest struct {
	ResumeFileName string `json:"resumeFileName,omitempty"`
}

func (c *ApplicationController) Submit(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	jobID, err := pathUUID(r, "jobID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, c.logger, err)
		return
	}

	app, err := c.applications.Submit(r.Context(), identity, jobID, req.ResumeFileName)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, app)
}

func (c *ApplicationController) Get(w http.ResponseWriter, r *http.Request) {
	applicationID, err := pathUUID(r, "applicationID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	app, err := c.applications.Get(r.Context(), applicationID)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (c *ApplicationController) Transition(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	applicationID, err := pathUUID(r, "applicationID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, c.logger, err)
		return
	}

	app, err := c.lifecycle.Transition(r.Context(), identity, applicationID, models.Status(req.Status))
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func (c *ApplicationController) ListByJob(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	jobID, err := pathUUID(r, "jobID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	apps, err := c.queries.ApplicationsForJob(r.Context(), identity, jobID)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, apps)
}

// ListMine returns the acting candidate's own applications.
func (c *ApplicationController) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	apps, err := c.queries.ApplicationsForCandidate(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, apps)
}

func (c *ApplicationController) ListShortlisted(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	companyID, err := pathUUID(r, "companyID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	apps, err := c.queries.ShortlistedForCompany(r.Context(), identity, companyID)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, apps)
}
