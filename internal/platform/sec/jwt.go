// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer through constructors.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/folio/pkg/uuid"
)

// ErrTokenExpired is returned by [TokenService.VerifyToken] when the exp claim has passed.
var ErrTokenExpired = errors.New("auth: token expired")

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The device fingerprint is bound at issuance for auditing only; it never
// takes part in authorization decisions.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   int64  `json:"uid"`
	Username string `json:"unm"`
	Device   string `json:"dev"`
	Role     string `json:"rol,omitempty"`
}

// Identity is the subject a token is minted for.
type Identity struct {
	UserID   int64
	Username string
	Role     string
	Device   string
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock, used by tests to move time forward.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) { service.now = now }
}

// NewTokenService creates a new TokenService signing with the shared secret.
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth: signing secret is empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Now returns the current time according to the service clock.
func (service *TokenService) Now() time.Time { return service.now() }

// GenerateAccessToken creates a new JWT access token for a user.
//
// Every token carries a unique jti, so two tokens minted in the same second differ.
func (service *TokenService) GenerateAccessToken(identity Identity) (string, time.Time, error) {
	currentTime := service.now()
	expiresAt := currentTime.Add(service.ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   strconv.FormatInt(identity.UserID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   identity.UserID,
		Username: identity.Username,
		Device:   identity.Device,
		Role:     identity.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks the signature and validity of a JWT string.
//
// An expired but otherwise well-formed token yields [ErrTokenExpired].
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	return claims, nil
}
