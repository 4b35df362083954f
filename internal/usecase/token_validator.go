package usecase

import (
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/pkg/jwt"
	"court-reservation/internal/usecase/shared"
)

//go:generate mockgen -source=token_validator.go -destination=../../tests/mock/usecase/token_validator_mock.go -package=usecasemock

var ErrUnknownRole = errs.New("token carries an unknown role")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	role := shared.Role(claims.Role)
	if !role.IsValid() {
		return shared.Actor{}, errs.Wrapf(ErrUnknownRole, "role %q", claims.Role)
	}

	return shared.Actor{ID: claims.UserID, Role: role}, nil
}
