package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef")

	raw, err := m.Issue("ops", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Subject)
}

func TestTokenManager_RejectsForeignAndExpired(t *testing.T) {
	m := NewTokenManager("secret-a")

	foreign, err := NewTokenManager("secret-b").Issue("ops", RoleAdmin, time.Hour)
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	expired, err := m.Issue("ops", RoleAdmin, -time.Minute)
	require.NoError(t, err)
	_, err = m.Parse(expired)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
