package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorClaims are the claims read from a shop backend access token.
type OperatorClaims struct {
	OperatorID string
	Name       string
	Email      string
	Role       string
	ExpiresAt  time.Time
}

// JWTManager reads operator tokens issued by the shop backend. With a secret
// the HS256 signature is verified; without one the token is only decoded and
// its expiry checked, leaving verification to the backend.
type JWTManager struct {
	secretKey []byte
	parser    *jwt.Parser
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secret),
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})),
	}
}

// Verifies reports whether signatures are checked.
func (m *JWTManager) Verifies() bool {
	return len(m.secretKey) > 0
}

// ValidateAccessToken parses an access token and returns the operator claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*OperatorClaims, error) {
	claims := jwt.MapClaims{}

	if m.Verifies() {
		token, err := m.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return m.secretKey, nil
		})
		if err != nil {
			return nil, err
		}
		if !token.Valid {
			return nil, errors.New("invalid token")
		}
	} else {
		if _, _, err := m.parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return nil, err
		}
		if exp != nil && time.Now().After(exp.Time) {
			return nil, jwt.ErrTokenExpired
		}
	}

	return operatorClaims(claims)
}

// operatorClaims takes the operator ID from sub, user_id or id, in that order.
func operatorClaims(claims jwt.MapClaims) (*OperatorClaims, error) {
	var id string
	for _, key := range []string{"sub", "user_id", "userId", "id"} {
		if id = claimString(claims[key]); id != "" {
			break
		}
	}
	if id == "" {
		return nil, errors.New("token has no operator id")
	}

	oc := &OperatorClaims{
		OperatorID: id,
		Name:       claimString(claims["name"]),
		Email:      claimString(claims["email"]),
		Role:       claimString(claims["role"]),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		oc.ExpiresAt = exp.Time
	}
	return oc, nil
}

func claimString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return ""
	}
}
