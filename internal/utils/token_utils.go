package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is stamped into every bearer token and required when parsing.
const TokenIssuer = "reconciliation-engine"

// Caller roles. Finance operators may move money and edit reports, viewers only read, and
// integrations are machine clients authenticated by API key.
const (
	RoleFinance     = "finance"
	RoleViewer      = "viewer"
	RoleIntegration = "integration"
)

// ErrUnknownRole is returned for a token whose role claim is not one the engine knows.
var ErrUnknownRole = errors.New("unknown role")

// OperatorClaims are the claims of a bearer token.
type OperatorClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsTokenRole reports whether role may be carried by a bearer token.
func IsTokenRole(role string) bool {
	return role == RoleFinance || role == RoleViewer
}

// GenerateJWT signs an HS256 bearer token for subject. Operators mint these with
// cmd/issue_token since the engine has no login flow of its own.
func GenerateJWT(subject, role, secret string, expiryDuration time.Duration) (string, error) {
	if !IsTokenRole(role) {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	now := time.Now()
	claims := OperatorClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAndValidateJWT checks the signature, issuer and expiry of tokenString. Tokens without a
// role claim are read-only.
func ParseAndValidateJWT(tokenString string, secretKey string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenRequiredClaimMissing
	}
	if claims.Role == "" {
		claims.Role = RoleViewer
	}
	if !IsTokenRole(claims.Role) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	return claims, nil
}
