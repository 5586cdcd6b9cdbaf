package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/models"
	"github.com/hireflow/server/internal/pkg/utils"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	repo, err := Open(sqlite.Open(":memory:"))
	require.NoError(t, err, "failed to open test database")
	return repo
}

func newCandidate(name string) *models.User {
	return &models.User{
		ID:        uuid.New(),
		Username:  name,
		Role:      models.RoleCandidate,
		CreatedAt: time.Now().UTC(),
	}
}

func newRecruiter(name string, companyID uuid.UUID) *models.User {
	return &models.User{
		ID:        uuid.New(),
		Username:  name,
		Role:      models.RoleRecruiter,
		CompanyID: utils.Ptr(companyID),
		CreatedAt: time.Now().UTC(),
	}
}

func newJob(recruiterID, companyID uuid.UUID, createdAt time.Time) *models.Job {
	return &models.Job{
		ID:          uuid.New(),
		Title:       "Backend Engineer",
		RecruiterID: recruiterID,
		CompanyID:   companyID,
		CreatedAt:   createdAt,
	}
}

func newApplication(jobID, candidateID uuid.UUID, appliedAt time.Time) *models.Application {
	return &models.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      models.StatusPending,
		AppliedAt:   appliedAt,
		UpdatedAt:   appliedAt,
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newCandidate("alice")))

	err := repo.CreateUser(ctx, newCandidate("alice"))
	assert.ErrorIs(t, err, e.ErrConflict, "duplicate username should conflict")
}

func TestGetUserByUsername(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newCandidate("bob")
	require.NoError(t, repo.CreateUser(ctx, user))

	found, err := repo.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestListRecruitersByCompany(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyA := uuid.New()
	companyB := uuid.New()

	require.NoError(t, repo.CreateUser(ctx, newRecruiter("zoe", companyA)))
	require.NoError(t, repo.CreateUser(ctx, newRecruiter("adam", companyA)))
	require.NoError(t, repo.CreateUser(ctx, newRecruiter("eve", companyB)))
	require.NoError(t, repo.CreateUser(ctx, newCandidate("carl")))

	recruiters, err := repo.ListRecruitersByCompany(ctx, companyA)
	require.NoError(t, err)
	require.Len(t, recruiters, 2)
	assert.Equal(t, "adam", recruiters[0].Username, "recruiters should be sorted by username")
	assert.Equal(t, "zoe", recruiters[1].Username)
}

func TestDeleteUser(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	user := newCandidate("gone")
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err := repo.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteUser(ctx, user.ID), e.ErrNotFound)
}

func TestJobListOrdering(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	recruiterID := uuid.New()
	companyID := uuid.New()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := newJob(recruiterID, companyID, base.Add(-2*time.Hour))
	middle := newJob(recruiterID, companyID, base.Add(-time.Hour))
	newest := newJob(recruiterID, companyID, base)
	for _, job := range []*models.Job{oldest, newest, middle} {
		require.NoError(t, repo.CreateJob(ctx, job))
	}

	jobs, err := repo.ListJobsByRecruiter(ctx, recruiterID)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, newest.ID, jobs[0].ID, "most recent job first")
	assert.Equal(t, middle.ID, jobs[1].ID)
	assert.Equal(t, oldest.ID, jobs[2].ID)

	byCompany, err := repo.ListJobsByCompany(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, byCompany, 3)

	all, err := repo.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJobTagsRoundTrip(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	job := newJob(uuid.New(), uuid.New(), time.Now().UTC())
	job.Tags = []string{"go", "remote"}
	require.NoError(t, repo.CreateJob(ctx, job))

	got, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "remote"}, got.Tags)
}

func TestGetJobNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.GetJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCreateApplicationDuplicate(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	jobID := uuid.New()
	candidateID := uuid.New()

	first := newApplication(jobID, candidateID, time.Now().UTC())
	require.NoError(t, repo.CreateApplication(ctx, first))

	// Unique (job, candidate) index rejects the second submission even
	// without the service-level pre-check.
	err := repo.CreateApplication(ctx, newApplication(jobID, candidateID, time.Now().UTC()))
	assert.ErrorIs(t, err, e.ErrConflict)

	exists, err := repo.ApplicationExists(ctx, jobID, candidateID)
	require.NoError(t, err)
	assert.True(t, exists)

	// The original application is untouched.
	original, err := repo.GetApplication(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, original.Status)

	// Same candidate may still apply to a different job.
	assert.NoError(t, repo.CreateApplication(ctx, newApplication(uuid.New(), candidateID, time.Now().UTC())))
}

func TestApplicationListOrdering(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	jobID := uuid.New()
	candidateID := uuid.New()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := newApplication(jobID, uuid.New(), base.Add(-2*time.Hour))
	second := newApplication(jobID, candidateID, base.Add(-time.Hour))
	third := newApplication(jobID, uuid.New(), base)
	for _, app := range []*models.Application{third, first, second} {
		require.NoError(t, repo.CreateApplication(ctx, app))
	}
	otherJob := newApplication(uuid.New(), candidateID, base.Add(time.Hour))
	require.NoError(t, repo.CreateApplication(ctx, otherJob))

	byJob, err := repo.ListApplicationsByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, byJob, 3)
	assert.Equal(t, first.ID, byJob[0].ID, "first applicant first")
	assert.Equal(t, second.ID, byJob[1].ID)
	assert.Equal(t, third.ID, byJob[2].ID)

	byCandidate, err := repo.ListApplicationsByCandidate(ctx, candidateID)
	require.NoError(t, err)
	require.Len(t, byCandidate, 2)
	assert.Equal(t, otherJob.ID, byCandidate[0].ID, "most recent application first")
	assert.Equal(t, second.ID, byCandidate[1].ID)
}

func TestListShortlistedByCompany(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyA := uuid.New()
	companyB := uuid.New()

	jobA := newJob(uuid.New(), companyA, time.Now().UTC())
	jobB := newJob(uuid.New(), companyB, time.Now().UTC())
	require.NoError(t, repo.CreateJob(ctx, jobA))
	require.NoError(t, repo.CreateJob(ctx, jobB))

	shortlistedA := newApplication(jobA.ID, uuid.New(), time.Now().UTC())
	shortlistedA.Status = models.StatusShortlisted
	pendingA := newApplication(jobA.ID, uuid.New(), time.Now().UTC())
	shortlistedB := newApplication(jobB.ID, uuid.New(), time.Now().UTC())
	shortlistedB.Status = models.StatusShortlisted
	for _, app := range []*models.Application{shortlistedA, pendingA, shortlistedB} {
		require.NoError(t, repo.CreateApplication(ctx, app))
	}

	apps, err := repo.ListShortlistedByCompany(ctx, companyA)
	require.NoError(t, err)
	require.Len(t, apps, 1, "only shortlisted applications of company A jobs")
	assert.Equal(t, shortlistedA.ID, apps[0].ID)
}

func TestUpdateApplicationStatusCAS(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	app := newApplication(uuid.New(), uuid.New(), time.Now().UTC())
	require.NoError(t, repo.CreateApplication(ctx, app))

	require.NoError(t, repo.UpdateApplicationStatus(ctx, app.ID, models.StatusPending, models.StatusShortlisted))

	updated, err := repo.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, updated.Status)

	// A second writer that read the old status loses the race.
	err = repo.UpdateApplicationStatus(ctx, app.ID, models.StatusPending, models.StatusRejected)
	assert.ErrorIs(t, err, e.ErrConflict)

	// Status is unchanged by the losing writer.
	updated, err = repo.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, updated.Status)
}

func TestUpdateApplicationStatusNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	err := repo.UpdateApplicationStatus(context.Background(), uuid.New(), models.StatusPending, models.StatusShortlisted)
	assert.ErrorIs(t, err, e.ErrNotFound)
}
