// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogevgelija/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:   uuid.New(),
		Role: models.RoleMember,
	}
}

func TestIssueAndVerifyPair(t *testing.T) {
	m := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	user := testUser()

	pair, err := m.IssuePair(user, false)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.False(t, claims.TwoFADone)

	claims, err = m.Verify(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	m := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	pair, err := m.IssuePair(testUser(), false)
	require.NoError(t, err)

	// A refresh token must not pass as an access token, and vice versa.
	_, err = m.Verify(pair.RefreshToken, TokenTypeAccess)
	assert.Error(t, err)
	_, err = m.Verify(pair.AccessToken, TokenTypeRefresh)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a", 15*time.Minute, time.Hour)
	pair, err := m.IssuePair(testUser(), false)
	require.NoError(t, err)

	other := NewTokenManager("secret-b", 15*time.Minute, time.Hour)
	_, err = other.Verify(pair.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, time.Hour)
	pair, err := m.IssuePair(testUser(), false)
	require.NoError(t, err)

	_, err = m.Verify(pair.AccessToken, TokenTypeAccess)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", 15*time.Minute, time.Hour)
	_, err := m.Verify("not-a-token", TokenTypeAccess)
	assert.Error(t, err)
}

func TestTwoFAClaimCarried(t *testing.T) {
	m := NewTokenManager("test-secret", 15*time.Minute, time.Hour)
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	pair, err := m.IssuePair(admin, true)
	require.NoError(t, err)

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	assert.True(t, claims.TwoFADone)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}
