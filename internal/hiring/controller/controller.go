// Package controller implements the business logic of the job board:
// account registration and login, job posting, application submission,
// the application review lifecycle, and the read projections the
// dashboards are built on.
package controller

import (
	"context"

	"github.com/google/uuid"

	"github.com/hireflow/server/internal/hiring/events"
	"github.com/hireflow/server/internal/hiring/models"
)

// EventProducer publishes domain events; publication is fire-and-forget.
type EventProducer interface {
	Produce(eventType events.EventType, key uuid.UUID, payload interface{})
}

// Repository defines the storage interface the services depend on.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListRecruitersByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context) ([]*models.Job, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*models.Job, error)
	ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Job, error)

	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*models.Application, error)
	ListShortlistedByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, from, to models.Status) error

	Close() error
}
