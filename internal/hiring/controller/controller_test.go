package controller

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hireflow/server/internal/hiring/events"
	"github.com/hireflow/server/internal/hiring/models"
)

// MockRepository implements the Repository interface for testing.
type MockRepository struct {
	createUser              func(context.Context, *models.User) error
	getUser                 func(context.Context, uuid.UUID) (*models.User, error)
	getUserByUsername       func(context.Context, string) (*models.User, error)
	listRecruitersByCompany func(context.Context, uuid.UUID) ([]*models.User, error)
	deleteUser              func(context.Context, uuid.UUID) error

	createJob           func(context.Context, *models.Job) error
	getJob              func(context.Context, uuid.UUID) (*models.Job, error)
	listJobs            func(context.Context) ([]*models.Job, error)
	listJobsByRecruiter func(context.Context, uuid.UUID) ([]*models.Job, error)
	listJobsByCompany   func(context.Context, uuid.UUID) ([]*models.Job, error)

	createApplication           func(context.Context, *models.Application) error
	getApplication              func(context.Context, uuid.UUID) (*models.Application, error)
	applicationExists           func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	listApplicationsByJob       func(context.Context, uuid.UUID) ([]*models.Application, error)
	listApplicationsByCandidate func(context.Context, uuid.UUID) ([]*models.Application, error)
	listShortlistedByCompany    func(context.Context, uuid.UUID) ([]*models.Application, error)
	updateApplicationStatus     func(context.Context, uuid.UUID, models.Status, models.Status) error
}

func (m *MockRepository) CreateUser(ctx context.Context, u *models.User) error {
	return m.createUser(ctx, u)
}

func (m *MockRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.getUser(ctx, id)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getUserByUsername(ctx, username)
}

func (m *MockRepository) ListRecruitersByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.User, error) {
	return m.listRecruitersByCompany(ctx, companyID)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return m.deleteUser(ctx, id)
}

func (m *MockRepository) CreateJob(ctx context.Context, j *models.Job) error {
	return m.createJob(ctx, j)
}

func (m *MockRepository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return m.getJob(ctx, id)
}

func (m *MockRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return m.listJobs(ctx)
}

func (m *MockRepository) ListJobsByRecruiter(ctx context.Context, id uuid.UUID) ([]*models.Job, error) {
	return m.listJobsByRecruiter(ctx, id)
}

func (m *MockRepository) ListJobsByCompany(ctx context.Context, id uuid.UUID) ([]*models.Job, error) {
	return m.listJobsByCompany(ctx, id)
}

func (m *MockRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	return m.createApplication(ctx, a)
}

func (m *MockRepository) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return m.getApplication(ctx, id)
}

func (m *MockRepository) ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	return m.applicationExists(ctx, jobID, candidateID)
}

func (m *MockRepository) ListApplicationsByJob(ctx context.Context, id uuid.UUID) ([]*models.Application, error) {
	return m.listApplicationsByJob(ctx, id)
}

func (m *MockRepository) ListApplicationsByCandidate(ctx context.Context, id uuid.UUID) ([]*models.Application, error) {
	return m.listApplicationsByCandidate(ctx, id)
}

func (m *MockRepository) ListShortlistedByCompany(ctx context.Context, id uuid.UUID) ([]*models.Application, error) {
	return m.listShortlistedByCompany(ctx, id)
}

func (m *MockRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, from, to models.Status) error {
	return m.updateApplicationStatus(ctx, id, from, to)
}

func (m *MockRepository) Close() error {
	return nil
}

// MockProducer is a thread-safe test double for the Kafka producer.
type MockProducer struct {
	mu       sync.Mutex
	produced []events.EventType
}

func (m *MockProducer) Produce(eventType events.EventType, _ uuid.UUID, _ interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.produced = append(m.produced, eventType)
}

func (m *MockProducer) Produced() []events.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.EventType, len(m.produced))
	copy(out, m.produced)
	return out
}
