package jwttoken

import (
	"wanderlist/internal/platform/middleware"
	id "wanderlist/pkg/domain"
	dErrors "wanderlist/pkg/domain-errors"
)

// JWTServiceAdapter bridges JWTService to the middleware.TokenValidator
// interface, converting string claims into typed IDs at the trust boundary.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return &middleware.TokenClaims{UserID: userID}, nil
}
