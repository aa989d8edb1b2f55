package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionRepo(t *testing.T) SessionRepository {
	sr, err := NewSessionRepository(NewMemoryBackend())
	require.NoError(t, err)
	return sr
}

func TestSessionRepo_CreateAndCheck(t *testing.T) {
	sr := setupSessionRepo(t)

	sessionId, err := sr.CreateSession("user@test.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, sessionId)

	ok, err := sr.CheckSession(sessionId)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sr.CheckSession("bogus")
	require.NoError(t, err)
	assert.False(t, ok)

	email, isAdmin, exists, err := sr.GetUserSessionInfo(sessionId)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "user@test.com", email)
	assert.False(t, isAdmin)
}

func TestSessionRepo_LoginOverwritesCurrentSession(t *testing.T) {
	sr := setupSessionRepo(t)

	first, err := sr.CreateSession("first@test.com", false)
	require.NoError(t, err)
	second, err := sr.CreateSession("second@test.com", true)
	require.NoError(t, err)

	ok, err := sr.CheckSession(first)
	require.NoError(t, err)
	assert.False(t, ok, "there is only one current session")

	email, isAdmin, exists, err := sr.GetUserSessionInfo(second)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "second@test.com", email)
	assert.True(t, isAdmin)
}

func TestSessionRepo_Delete(t *testing.T) {
	sr := setupSessionRepo(t)

	sessionId, err := sr.CreateSession("user@test.com", false)
	require.NoError(t, err)

	require.NoError(t, sr.DeleteSession(sessionId))

	ok, err := sr.CheckSession(sessionId)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting again is a no-op
	require.NoError(t, sr.DeleteSession(sessionId))
}
