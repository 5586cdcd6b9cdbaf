// Package db implements the persistence layer for users, jobs, and
// applications on top of GORM.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/models"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewRepository connects to Postgres, retrying with exponential backoff so
// the service survives the database coming up after it, and runs migrations.
func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	var repo *Repository
	connect := func() error {
		var err error
		repo, err = Open(postgres.Open(dsn))
		return err
	}
	if err := backoff.Retry(connect, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return repo, nil
}

// Open connects through an arbitrary GORM dialector and runs migrations.
// TranslateError makes duplicate-key detection portable across drivers.
func Open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: username already taken", e.ErrConflict)
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *Repository) ListRecruitersByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.User, error) {
	var users []*models.User
	result := r.db.WithContext(ctx).
		Where("role = ? AND company_id = ?", models.RoleRecruiter, companyID).
		Order("username ASC").
		Find(&users)
	return users, result.Error
}

func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	result := r.db.WithContext(ctx).Create(job)
	return result.Error
}

func (r *Repository) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	result := r.db.WithContext(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &job, nil
}

// Job listings are newest first; the id tie-break keeps the order stable
// for equal timestamps.
func (r *Repository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	var jobs []*models.Job
	result := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&jobs)
	return jobs, result.Error
}

func (r *Repository) ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]*models.Job, error) {
	var jobs []*models.Job
	result := r.db.WithContext(ctx).
		Where("recruiter_id = ?", recruiterID).
		Order("created_at DESC, id DESC").
		Find(&jobs)
	return jobs, result.Error
}

func (r *Repository) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Job, error) {
	var jobs []*models.Job
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&jobs)
	return jobs, result.Error
}

func (r *Repository) CreateApplication(ctx context.Context, app *models.Application) error {
	result := r.db.WithContext(ctx).Create(app)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: application already exists for this job", e.ErrConflict)
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	result := r.db.WithContext(ctx).First(&app, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &app, nil
}

func (r *Repository) ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// Review lists are first applicant first so the queue is fair.
func (r *Repository) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	result := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("applied_at ASC, id ASC").
		Find(&apps)
	return apps, result.Error
}

func (r *Repository) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	result := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("applied_at DESC, id DESC").
		Find(&apps)
	return apps, result.Error
}

func (r *Repository) ListShortlistedByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.Application, error) {
	var apps []*models.Application
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.status = ? AND jobs.company_id = ?", models.StatusShortlisted, companyID).
		Order("applications.applied_at ASC, applications.id ASC").
		Find(&apps)
	return apps, result.Error
}

// UpdateApplicationStatus moves an application from one status to another
// as a compare-and-swap: the write only lands if the row still holds the
// expected current status, so two racing transitions cannot both succeed.
// The losing writer observes ErrConflict.
func (r *Repository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, from, to models.Status) error {
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Application{}).
			Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return e.ErrNotFound
		}
		return fmt.Errorf("%w: application status changed concurrently", e.ErrConflict)
	}
	return nil
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
