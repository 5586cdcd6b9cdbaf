// Package models defines the core domain models of the job board:
// users with their roles, job postings, and job applications with
// their review status.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which operations an identity may invoke.
type Role string

const (
	// RoleCandidate may browse jobs and submit applications.
	RoleCandidate Role = "candidate"
	// RoleRecruiter may post jobs and review applications to them.
	RoleRecruiter Role = "recruiter"
	// RoleCompany may review any application under its company and
	// manage the company's recruiters.
	RoleCompany Role = "company"
)

// validRoles is the single source of truth for accepted role values.
var validRoles = map[Role]bool{
	RoleCandidate: true,
	RoleRecruiter: true,
	RoleCompany:   true,
}

// IsValid reports whether the role is one of the supported values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// RequiresCompany reports whether the role must carry a company affiliation.
func (r Role) RequiresCompany() bool {
	return r == RoleRecruiter || r == RoleCompany
}

// User represents a registered account. The role is fixed at registration;
// there is no role-change operation.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:100;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"size:100" json:"-"`
	Role         Role       `gorm:"size:20;index" json:"role"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index" json:"companyId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Job represents a posting owned by one recruiter and, transitively, one
// company. Ownership is immutable after creation and the company id is
// always derived from the posting recruiter, never taken from a client.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:200" json:"title"`
	Description string    `gorm:"size:5000" json:"description"`
	Location    string    `gorm:"size:200" json:"location"`
	Salary      string    `gorm:"size:100" json:"salary"`
	Type        string    `gorm:"size:50" json:"type"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	RecruiterID uuid.UUID `gorm:"type:uuid;index" json:"recruiterId"`
	CompanyID   uuid.UUID `gorm:"type:uuid;index" json:"companyId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Status is the review state of an application. Status only ever moves
// forward along the transition graph; accepted and rejected are final.
type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// transitions maps each status to its direct successors. Anything not
// listed here (same-status re-entry, skipped stages, moves out of a
// terminal status) is illegal.
var transitions = map[Status][]Status{
	StatusPending:     {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusInterview, StatusRejected},
	StatusInterview:   {StatusAccepted, StatusRejected},
	StatusAccepted:    nil,
	StatusRejected:    nil,
}

// IsValid reports whether the status is one of the supported values.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransition reports whether to is a direct successor of from.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Application links one candidate to one job. At most one application may
// exist per (JobID, CandidateID) pair, enforced by a unique index.
// CandidateName is a display-only copy of the candidate's name taken at
// submission time; it is never consulted by authorization or transition
// logic.
type Application struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID          uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_job_candidate;index" json:"jobId"`
	CandidateID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_job_candidate;index" json:"candidateId"`
	CandidateName  string    `gorm:"size:100" json:"candidateName,omitempty"`
	ResumeFileName string    `gorm:"size:255" json:"resumeFileName,omitempty"`
	Status         Status    `gorm:"size:20;index" json:"status"`
	AppliedAt      time.Time `json:"appliedAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
