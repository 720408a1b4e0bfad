package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "supstonad/pkg/domain-errors"
)

// Claims are the case worker claims carried by access tokens. Groups holds
// the directory group ids the roles are derived from.
type Claims struct {
	NavIdent string   `json:"NAVident"`
	Groups   []string `json:"groups"`
	jwt.RegisteredClaims
}

// JWTService issues and validates access tokens for case workers.
type JWTService struct {
	signingKey []byte
	issuer     string
	audience   string
	grupper    map[string]string
}

// NewJWTService builds a service. grupper maps a directory group id to the
// rolle it grants.
func NewJWTService(signingKey string, issuer string, audience string, grupper map[string]string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		grupper:    grupper,
	}
}

// GenerateAccessToken is used by local tooling and tests; production tokens
// come from the identity provider.
func (s *JWTService) GenerateAccessToken(
	navIdent string,
	groups []string,
	expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		NavIdent: navIdent,
		Groups:   groups,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.NavIdent == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}

// Roller maps the token's groups to roles. Unknown groups are ignored.
func (s *JWTService) Roller(claims *Claims) []string {
	seen := make(map[string]struct{}, len(claims.Groups))
	var roller []string
	for _, g := range claims.Groups {
		rolle, ok := s.grupper[g]
		if !ok {
			continue
		}
		if _, dup := seen[rolle]; dup {
			continue
		}
		seen[rolle] = struct{}{}
		roller = append(roller, rolle)
	}
	return roller
}
