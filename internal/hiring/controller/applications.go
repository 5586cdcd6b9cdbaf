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

// ApplicationService handles candidate submissions and application reads.
// Status mutations go through LifecycleService only.
type ApplicationService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewApplicationService(repo Repository, producer EventProducer, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("application_service"),
	}
}

// Submit creates a pending application for the acting candidate. A second
// submission for the same job is rejected with a conflict, leaving the
// original untouched; the unique (job, candidate) index backstops the
// pre-check against races.
func (s *ApplicationService) Submit(ctx context.Context, identity auth.Identity, jobID uuid.UUID, resumeFileName string) (*models.Application, error) {
	if identity.Role != models.RoleCandidate {
		return nil, fmt.Errorf("%w: only candidates may apply", e.ErrForbidden)
	}

	if _, err := s.repo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ApplicationExists(ctx, jobID, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied for this job", e.ErrConflict)
	}

	// Display-only snapshot of the candidate's name; authorization never
	// reads it.
	candidateName := ""
	if candidate, err := s.repo.GetUser(ctx, identity.UserID); err == nil {
		candidateName = candidate.Username
	}

	now := time.Now().UTC()
	app := &models.Application{
		ID:             uuid.New(),
		JobID:          jobID,
		CandidateID:    identity.UserID,
		CandidateName:  candidateName,
		ResumeFileName: resumeFileName,
		Status:         models.StatusPending,
		AppliedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	s.logger.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", jobID.String()),
	)
	s.producer.Produce(events.ApplicationSubmitted, app.ID, app)
	return app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return s.repo.GetApplication(ctx, id)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	return s.repo.ListApplicationsByJob(ctx, jobID)
}

func (s *ApplicationService) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*models.Application, error) {
	return s.repo.ListApplicationsByCandidate(ctx, candidateID)
}
