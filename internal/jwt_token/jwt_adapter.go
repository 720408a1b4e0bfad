package jwttoken

import (
	authmw "supstonad/pkg/platform/middleware/auth"
)

func (s *JWTService) toMiddlewareClaims(claims *Claims) *authmw.JWTClaims {
	return &authmw.JWTClaims{
		NavIdent: claims.NavIdent,
		Roller:   s.Roller(claims),
		JTI:      claims.ID,
	}
}

// JWTServiceAdapter exposes the service as the auth middleware's validator.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return a.service.toMiddlewareClaims(claims), nil
}
