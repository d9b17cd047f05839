// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth issues and verifies the JWT token pairs used by the mobile
// API. Access tokens are short-lived bearer credentials; refresh tokens
// are long-lived and only accepted by the refresh endpoint.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

// TokenType distinguishes access from refresh tokens so one cannot be
// presented where the other is expected.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the JWT payload carried by both token kinds.
type Claims struct {
	UserID    uuid.UUID   `json:"uid"`
	Role      models.Role `json:"role"`
	TokenType TokenType   `json:"typ"`
	TwoFADone bool        `json:"tfa,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenManager signs and verifies token pairs with a single HMAC secret.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair creates an access+refresh token pair for a user. twoFADone is
// carried in the access token so admin middleware can require a completed
// TOTP challenge without a database read.
func (m *TokenManager) IssuePair(user *models.User, twoFADone bool) (*TokenPair, error) {
	now := time.Now()

	access, err := m.sign(user, TokenTypeAccess, twoFADone, now, m.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(user, TokenTypeRefresh, twoFADone, now, m.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

func (m *TokenManager) sign(user *models.User, typ TokenType, twoFADone bool, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: typ,
		TwoFADone: twoFADone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses a token string and checks its signature, expiry, and
// token type.
func (m *TokenManager) Verify(tokenString string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != expected {
		return nil, fmt.Errorf("wrong token type %q, want %q", claims.TokenType, expected)
	}
	return claims, nil
}
