package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireflow/server/internal/hiring/controller"
	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/models"
)

// JobController serves job posting and browsing.
type JobController struct {
	service *controller.JobService
	logger  *zap.Logger
}

func NewJobController(service *controller.JobService, logger *zap.Logger) *JobController {
	return &JobController{
		service: service,
		logger:  logger.Named("job_handler"),
	}
}

type jobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
}

func (c *JobController) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	var req jobRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, c.logger, err)
		return
	}

	job, err := c.service.CreateJob(r.Context(), identity, controller.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		Tags:        req.Tags,
	})
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, job)
}

func (c *JobController) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "jobID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	job, err := c.service.GetJob(r.Context(), jobID)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// List returns all jobs, or a recruiter's or company's jobs when the
// matching query parameter is present.
func (c *JobController) List(w http.ResponseWriter, r *http.Request) {
	var (
		jobs []*models.Job
		err  error
	)

	switch {
	case r.URL.Query().Get("recruiterId") != "":
		var recruiterID uuid.UUID
		recruiterID, err = uuid.Parse(r.URL.Query().Get("recruiterId"))
		if err != nil {
			respondError(w, c.logger, errors.Join(e.ErrInvalidInput, err))
			return
		}
		jobs, err = c.service.ListJobsByRecruiter(r.Context(), recruiterID)
	case r.URL.Query().Get("companyId") != "":
		var companyID uuid.UUID
		companyID, err = uuid.Parse(r.URL.Query().Get("companyId"))
		if err != nil {
			respondError(w, c.logger, errors.Join(e.ErrInvalidInput, err))
			return
		}
		jobs, err = c.service.ListJobsByCompany(r.Context(), companyID)
	default:
		jobs, err = c.service.ListJobs(r.Context())
	}
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}
