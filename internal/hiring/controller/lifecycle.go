package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireflow/server/internal/hiring/auth"
	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/events"
	"github.com/hireflow/server/internal/hiring/models"
)

// LifecycleService is the only place an application's status changes.
// It enforces both who may move an application and which moves the
// hiring funnel permits: each transition must go to a direct successor,
// so review stages cannot be skipped.
type LifecycleService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewLifecycleService(repo Repository, producer EventProducer, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("lifecycle_service"),
	}
}

// Transition moves an application to the target status on behalf of the
// actor. Only the recruiter who owns the job or a company-role user of the
// job's company may transition; candidates can read but never mutate their
// own applications. The status write is a compare-and-swap against the
// status read here, so of two racing transitions exactly one succeeds and
// the other observes a conflict.
func (s *LifecycleService) Transition(ctx context.Context, identity auth.Identity, applicationID uuid.UUID, target models.Status) (*models.Application, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", e.ErrInvalidInput, target)
	}

	app, err := s.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.repo.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owning job: %w", err)
	}

	if !authorizedReviewer(identity, job) {
		return nil, fmt.Errorf("%w: not a reviewer of this job", e.ErrForbidden)
	}

	if !models.CanTransition(app.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", e.ErrInvalidTransition, app.Status, target)
	}

	if err := s.repo.UpdateApplicationStatus(ctx, app.ID, app.Status, target); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("application transitioned",
		zap.String("application_id", app.ID.String()),
		zap.String("from", string(app.Status)),
		zap.String("to", string(target)),
		zap.String("actor_id", identity.UserID.String()),
	)
	s.producer.Produce(events.ApplicationStatusChanged, updated.ID, updated)
	return updated, nil
}

// authorizedReviewer reports whether the actor owns the job as its
// recruiter or acts for the job's company.
func authorizedReviewer(identity auth.Identity, job *models.Job) bool {
	switch identity.Role {
	case models.RoleRecruiter:
		return job.RecruiterID == identity.UserID
	case models.RoleCompany:
		return identity.CompanyID != nil && *identity.CompanyID == job.CompanyID
	default:
		return false
	}
}
