package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tripai-backend/internal/config"
)

const resetTokenScope = "password_reset"

// ResetClaims is the short-lived token issued after OTP verification. It
// is only accepted by the reset-password endpoint.
type ResetClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateResetToken creates a token that authorizes a single password reset.
func GenerateResetToken(userID uuid.UUID, email string, cfg config.JWTConfig) (string, error) {
	claims := ResetClaims{
		UserID: userID,
		Email:  email,
		Scope:  resetTokenScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tripai",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.ResetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateResetToken verifies a reset token and enforces its scope.
func ValidateResetToken(tokenString string, cfg config.JWTConfig) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid || claims.Scope != resetTokenScope {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
