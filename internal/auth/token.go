package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sprintingbug/agricheck/internal/config"
)

// ErrInvalidToken covers expired, malformed, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// resetTokenType marks a token as usable only for password resets.
const resetTokenType = "password_reset"

// TokenIssuer mints and verifies HS256 access tokens carrying the user id
// as subject, and short-lived password-reset tokens carrying the email.
type TokenIssuer struct {
	secret   []byte
	ttl      time.Duration
	resetTTL time.Duration
}

// NewTokenIssuer creates an issuer from auth configuration.
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.AccessTokenTTL,
		resetTTL: cfg.ResetTokenTTL,
	}
}

// Issue creates a signed access token for the given user id.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify validates an access token and returns the user id it was issued
// for. Reset tokens are rejected; they cannot stand in for a login.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims, err := i.parse(tokenString)
	if err != nil {
		return "", err
	}
	if typ, _ := claims["type"].(string); typ == resetTokenType {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// ResetTTL returns the configured lifetime of reset tokens.
func (i *TokenIssuer) ResetTTL() time.Duration {
	return i.resetTTL
}

// IssueReset creates a signed password-reset token for the given email.
func (i *TokenIssuer) IssueReset(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"type": resetTokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(i.resetTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return token, nil
}

// VerifyReset validates a password-reset token and returns the email it was
// issued for. Access tokens are rejected.
func (i *TokenIssuer) VerifyReset(tokenString string) (string, error) {
	claims, err := i.parse(tokenString)
	if err != nil {
		return "", err
	}
	if typ, _ := claims["type"].(string); typ != resetTokenType {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

func (i *TokenIssuer) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
