package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", 0, 0, 0)
	require.Error(t, err)
}

func TestNewTokenManagerDefaultsTTLs(t *testing.T) {
	m, err := NewTokenManager("s", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, m.accessTTL)
	assert.Equal(t, 7*24*time.Hour, m.refreshTTL)
	assert.Equal(t, 7*24*time.Hour, m.confirmTTL)
}

func TestIssueDecodeRoundtrip(t *testing.T) {
	m := newTestManager(t)

	for _, scope := range []TokenScope{ScopeAccess, ScopeRefresh, ScopeEmailConfirm} {
		token, exp, err := m.Issue("user@example.com", scope, 0)
		require.NoError(t, err)
		assert.True(t, exp.After(time.Now()))

		subject, err := m.Decode(token, scope)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", subject)
	}
}

func TestDecodeScopeMismatch(t *testing.T) {
	m := newTestManager(t)

	token, _, err := m.Issue("user@example.com", ScopeRefresh, 0)
	require.NoError(t, err)

	_, err = m.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrScopeMismatch)

	_, err = m.Decode(token, ScopeEmailConfirm)
	assert.ErrorIs(t, err, ErrScopeMismatch)
}

func TestDecodeExpired(t *testing.T) {
	m := newTestManager(t)

	token, _, err := m.Issue("user@example.com", ScopeAccess, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	_, err = m.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestDecodeWrongSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewTokenManager("another-secret", 0, 0, 0)
	require.NoError(t, err)

	token, _, err := m.Issue("user@example.com", ScopeAccess, 0)
	require.NoError(t, err)

	_, err = other.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeGarbage(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Decode("not.a.token", ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Decode("", ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueTTLOverride(t *testing.T) {
	m := newTestManager(t)

	_, exp, err := m.Issue("user@example.com", ScopeAccess, time.Hour)
	require.NoError(t, err)

	remaining := time.Until(exp)
	assert.Greater(t, remaining, 55*time.Minute)
	assert.LessOrEqual(t, remaining, time.Hour)
}
