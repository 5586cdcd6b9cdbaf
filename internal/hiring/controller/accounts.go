package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireflow/server/internal/hiring/auth"
	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/events"
	"github.com/hireflow/server/internal/hiring/models"
)

// AccountService handles registration, login, and the company's recruiter
// roster. A user's role is fixed at registration.
type AccountService struct {
	repo      Repository
	producer  EventProducer
	jwtSecret string
	logger    *zap.Logger
}

func NewAccountService(repo Repository, producer EventProducer, jwtSecret string, logger *zap.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		producer:  producer,
		jwtSecret: jwtSecret,
		logger:    logger.Named("account_service"),
	}
}

// RegisterInput carries the fields of a registration request. CompanyID is
// required for the recruiter and company roles and ignored for candidates.
type RegisterInput struct {
	Username  string
	Password  string
	Role      models.Role
	CompanyID *uuid.UUID
}

func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Username == "" || len(input.Username) > 100 {
		return nil, fmt.Errorf("%w: invalid username", e.ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", e.ErrInvalidInput)
	}
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", e.ErrInvalidInput, input.Role)
	}
	if input.Role.RequiresCompany() && input.CompanyID == nil {
		return nil, fmt.Errorf("%w: company id required for role %q", e.ErrInvalidInput, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if input.Role.RequiresCompany() {
		user.CompanyID = input.CompanyID
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Login verifies the credentials and issues a bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", e.ErrUnauthenticated)
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", e.ErrUnauthenticated)
	}

	token, err := auth.GenerateToken(user, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// ListRecruiters returns the recruiters of the acting company.
func (s *AccountService) ListRecruiters(ctx context.Context, identity auth.Identity, companyID uuid.UUID) ([]*models.User, error) {
	if identity.Role != models.RoleCompany || identity.CompanyID == nil || *identity.CompanyID != companyID {
		return nil, fmt.Errorf("%w: only the company may list its recruiters", e.ErrForbidden)
	}
	return s.repo.ListRecruitersByCompany(ctx, companyID)
}

// RemoveRecruiter deletes a recruiter account from the acting company.
// Jobs the recruiter already posted keep their ownership ids; the company
// role can still review their applications.
func (s *AccountService) RemoveRecruiter(ctx context.Context, identity auth.Identity, companyID, recruiterID uuid.UUID) error {
	if identity.Role != models.RoleCompany || identity.CompanyID == nil || *identity.CompanyID != companyID {
		return fmt.Errorf("%w: only the company may remove its recruiters", e.ErrForbidden)
	}

	recruiter, err := s.repo.GetUser(ctx, recruiterID)
	if err != nil {
		return err
	}
	if recruiter.Role != models.RoleRecruiter || recruiter.CompanyID == nil || *recruiter.CompanyID != companyID {
		return fmt.Errorf("%w: user is not a recruiter of this company", e.ErrForbidden)
	}

	if err := s.repo.DeleteUser(ctx, recruiterID); err != nil {
		return err
	}
	s.logger.Info("recruiter removed",
		zap.String("recruiter_id", recruiterID.String()),
		zap.String("company_id", companyID.String()),
	)
	s.producer.Produce(events.RecruiterRemoved, recruiterID, map[string]string{
		"company_id": companyID.String(),
	})
	return nil
}
