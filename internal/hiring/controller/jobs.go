package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireflow/server/internal/hiring/auth"
	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/events"
	"github.com/hireflow/server/internal/hiring/models"
)

// JobService manages job postings. Ownership is assigned from the posting
// recruiter's identity and never changes afterwards.
type JobService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewJobService(repo Repository, producer EventProducer, logger *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("job_service"),
	}
}

// JobInput carries the client-supplied fields of a posting. The company id
// is deliberately absent: it is always derived from the recruiter.
type JobInput struct {
	Title       string
	Description string
	Location    string
	Salary      string
	Type        string
	Tags        []string
}

func (s *JobService) CreateJob(ctx context.Context, identity auth.Identity, input JobInput) (*models.Job, error) {
	if identity.Role != models.RoleRecruiter {
		return nil, fmt.Errorf("%w: only recruiters may post jobs", e.ErrForbidden)
	}
	if identity.CompanyID == nil {
		return nil, fmt.Errorf("%w: recruiter has no company", e.ErrInvalidInput)
	}
	if input.Title == "" || len(input.Title) > 200 {
		return nil, fmt.Errorf("%w: invalid title", e.ErrInvalidInput)
	}
	if len(input.Description) > 5000 {
		return nil, fmt.Errorf("%w: description too long", e.ErrInvalidInput)
	}

	job := &models.Job{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
		Type:        input.Type,
		Tags:        input.Tags,
		RecruiterID: identity.UserID,
		CompanyID:   *identity.CompanyID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	s.producer.Produce(events.JobCreated, job.ID, job)
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.repo.GetJob(ctx, id)
}

func (s *JobService) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return s.repo.ListJobs(ctx)
}

func (s *JobService) ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*models.Job, error) {
	return s.repo.ListJobsByRecruiter(ctx, recruiterID)
}

func (s *JobService) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Job, error) {
	return s.repo.ListJobsByCompany(ctx, companyID)
}
