package services

import (
	"testing"

	"gameZoid/models"
	"gameZoid/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserService(t *testing.T) UserService {
	be := repository.NewMemoryBackend()
	rs, err := repository.NewRecordStore(be)
	require.NoError(t, err)
	ur, err := repository.NewUserRepository(rs)
	require.NoError(t, err)
	sr, err := repository.NewSessionRepository(be)
	require.NoError(t, err)
	return NewUserService(ur, sr)
}

func TestUserService_SignupAndSigninCaseInsensitive(t *testing.T) {
	us := setupUserService(t)

	_, err := us.SignupRequest(models.Credentials{Email: "user@test.com", Name: "Test User", Password: "secret1"})
	require.NoError(t, err)

	uModel, sessionId, err := us.SigninRequest("USER@TEST.COM", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "user@test.com", uModel.Email)
	assert.NotEmpty(t, sessionId)

	ok, err := us.CheckAuth(sessionId)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserService_SignupStoresHashedPassword(t *testing.T) {
	us := setupUserService(t)

	uModel, err := us.SignupRequest(models.Credentials{Email: "user@test.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", uModel.Password)
}

func TestUserService_DuplicateSignup(t *testing.T) {
	us := setupUserService(t)

	_, err := us.SignupRequest(models.Credentials{Email: "user@test.com", Name: "First", Password: "secret1"})
	require.NoError(t, err)

	_, err = us.SignupRequest(models.Credentials{Email: "User@Test.Com", Name: "Second", Password: "other"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)

	// first registration unaffected
	_, _, err = us.SigninRequest("user@test.com", "secret1")
	require.NoError(t, err)
}

func TestUserService_SignupRequiresEmailAndPassword(t *testing.T) {
	us := setupUserService(t)

	_, err := us.SignupRequest(models.Credentials{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = us.SignupRequest(models.Credentials{Email: "user@test.com", Password: ""})
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestUserService_WrongPassword(t *testing.T) {
	us := setupUserService(t)

	_, err := us.SignupRequest(models.Credentials{Email: "user@test.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = us.SigninRequest("user@test.com", "wrong")
	assert.ErrorIs(t, err, models.ErrUnautorized)
}

func TestUserService_UnknownUser(t *testing.T) {
	us := setupUserService(t)

	_, _, err := us.SigninRequest("nobody@test.com", "secret1")
	assert.ErrorIs(t, err, models.ErrNotAllowed)
}

func TestUserService_AdminProvisionedOnFirstLogin(t *testing.T) {
	us := setupUserService(t)

	uModel, sessionId, err := us.SigninRequest(AdminEmail, AdminPassword)
	require.NoError(t, err)
	assert.True(t, uModel.IsAdmin)

	access, err := us.CheckAdmin(sessionId)
	require.NoError(t, err)
	assert.True(t, access)
}

func TestUserService_AdminProvisioningIsIdempotent(t *testing.T) {
	us := setupUserService(t)

	first, _, err := us.SigninRequest(AdminEmail, AdminPassword)
	require.NoError(t, err)
	second, _, err := us.SigninRequest(AdminEmail, AdminPassword)
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt, second.CreatedAt, "repeated logins reuse the provisioned record")
}

func TestUserService_RegularUserIsNotAdmin(t *testing.T) {
	us := setupUserService(t)

	_, err := us.SignupRequest(models.Credentials{Email: "user@test.com", Password: "secret1"})
	require.NoError(t, err)
	_, sessionId, err := us.SigninRequest("user@test.com", "secret1")
	require.NoError(t, err)

	access, err := us.CheckAdmin(sessionId)
	require.NoError(t, err)
	assert.False(t, access)
}

func TestUserService_Logout(t *testing.T) {
	us := setupUserService(t)

	_, err := us.SignupRequest(models.Credentials{Email: "user@test.com", Password: "secret1"})
	require.NoError(t, err)
	_, sessionId, err := us.SigninRequest("user@test.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, us.DeleteSessionRequest(sessionId))

	ok, err := us.CheckAuth(sessionId)
	require.NoError(t, err)
	assert.False(t, ok)
}
