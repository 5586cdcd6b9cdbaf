package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hireflow/server/internal/hiring/auth"
	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/models"
)

// QueryService answers the read projections the review dashboards use.
// Every projection is computed against current storage on each call, so a
// transition is visible to the very next query.
type QueryService struct {
	repo   Repository
	logger *zap.Logger
}

func NewQueryService(repo Repository, logger *zap.Logger) *QueryService {
	return &QueryService{
		repo:   repo,
		logger: logger.Named("query_service"),
	}
}

// ApplicationsForJob lists a job's applications first applicant first.
// Only the job's reviewers see it, same gate as Transition.
func (s *QueryService) ApplicationsForJob(ctx context.Context, identity auth.Identity, jobID uuid.UUID) ([]*models.Application, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !authorizedReviewer(identity, job) {
		return nil, fmt.Errorf("%w: not a reviewer of this job", e.ErrForbidden)
	}
	return s.repo.ListApplicationsByJob(ctx, jobID)
}

// ApplicationsForCandidate lists a candidate's applications most recent
// first.
func (s *QueryService) ApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]*models.Application, error) {
	return s.repo.ListApplicationsByCandidate(ctx, candidateID)
}

// ShortlistedForCompany lists the shortlisted applications across all of
// the company's jobs. Visible only to that company's own users.
func (s *QueryService) ShortlistedForCompany(ctx context.Context, identity auth.Identity, companyID uuid.UUID) ([]*models.Application, error) {
	if !actsForCompany(identity, companyID) {
		return nil, fmt.Errorf("%w: not a member of this company", e.ErrForbidden)
	}
	return s.repo.ListShortlistedByCompany(ctx, companyID)
}

func actsForCompany(identity auth.Identity, companyID uuid.UUID) bool {
	switch identity.Role {
	case models.RoleRecruiter, models.RoleCompany:
		return identity.CompanyID != nil && *identity.CompanyID == companyID
	default:
		return false
	}
}
