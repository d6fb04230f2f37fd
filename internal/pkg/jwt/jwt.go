package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies the portal's bearer tokens. Token issuance belongs to the
// portal's auth service; this API only needs to check signatures and claims.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	// GenerateAccessToken mints a short-lived access token. Used by local
	// tooling and tests; production tokens come from the auth service.
	GenerateAccessToken(userID string, role string, employeeID *string, ttl time.Duration) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, role string, employeeID *string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(ttl).Unix(),
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
