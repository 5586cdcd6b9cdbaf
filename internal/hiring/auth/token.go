// Package auth resolves the acting identity for each request. Identities
// are carried in HS256 JWTs issued at login and validated by the HTTP
// middleware; services receive the resolved Identity as a parameter and
// never re-derive it.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	e "github.com/hireflow/server/internal/hiring/errors"
	"github.com/hireflow/server/internal/hiring/models"
)

const tokenTTL = 24 * time.Hour

// Identity is the resolved acting user: who they are, what they may do,
// and which company they act for (nil for candidates).
type Identity struct {
	UserID    uuid.UUID
	Role      models.Role
	CompanyID *uuid.UUID
}

// GenerateToken issues a signed token for the user.
func GenerateToken(user *models.User, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	if user.CompanyID != nil {
		claims["company_id"] = user.CompanyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ResolveIdentity checks the token signature and expiry and extracts the
// identity claims. All failures surface as ErrUnauthenticated.
func ResolveIdentity(tokenString, secret string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", e.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token claims", e.ErrUnauthenticated)
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: invalid subject claim", e.ErrUnauthenticated)
	}

	roleClaim, _ := claims["role"].(string)
	role := models.Role(roleClaim)
	if !role.IsValid() {
		return Identity{}, fmt.Errorf("%w: invalid role claim", e.ErrUnauthenticated)
	}

	identity := Identity{UserID: userID, Role: role}
	if companyClaim, ok := claims["company_id"].(string); ok {
		companyID, err := uuid.Parse(companyClaim)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: invalid company claim", e.ErrUnauthenticated)
		}
		identity.CompanyID = &companyID
	}
	return identity, nil
}
