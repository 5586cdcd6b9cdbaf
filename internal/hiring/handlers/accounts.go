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

// AccountController serves registration, login, and recruiter management.
type AccountController struct {
	service *controller.AccountService
	logger  *zap.Logger
}

func NewAccountController(service *controller.AccountService, logger *zap.Logger) *AccountController {
	return &AccountController{
		service: service,
		logger:  logger.Named("account_handler"),
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, c.logger, err)
		return
	}

	input := controller.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     models.Role(req.Role),
	}
	if req.CompanyID != "" {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			respondError(w, c.logger, errors.Join(e.ErrInvalidInput, err))
			return
		}
		input.CompanyID = &companyID
	}

	user, err := c.service.Register(r.Context(), input)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, c.logger, err)
		return
	}

	token, user, err := c.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

func (c *AccountController) ListRecruiters(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	companyID, err := pathUUID(r, "companyID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	recruiters, err := c.service.ListRecruiters(r.Context(), identity, companyID)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	resp := make([]userResponse, 0, len(recruiters))
	for _, recruiter := range recruiters {
		resp = append(resp, toUserResponse(recruiter))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (c *AccountController) RemoveRecruiter(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	companyID, err := pathUUID(r, "companyID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}
	recruiterID, err := pathUUID(r, "recruiterID")
	if err != nil {
		respondError(w, c.logger, err)
		return
	}

	if err := c.service.RemoveRecruiter(r.Context(), identity, companyID, recruiterID); err != nil {
		respondError(w, c.logger, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
